package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/mail"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

const saveTimeout = 5 * time.Second

// Mail form fields in tab order.
const (
	fieldTo = iota
	fieldSubject
	fieldBody
	fieldSend
	fieldCount
)

var mailFieldLabels = [...]string{"To:", "Subject:", "Message:"}

// MailPanel is the composer form.
type MailPanel struct {
	To      textinput.Model
	Subject textinput.Model
	Body    textarea.Model

	Focus   int
	Sending bool
}

// MailSentMsg reports the result of saving a message.
type MailSentMsg struct {
	WindowID string
	Message  mail.Message
	Err      error
}

func newMailPanel(recipient string) *MailPanel {
	to := textinput.New()
	to.Prompt = ""
	to.CharLimit = 128
	to.SetValue(recipient)

	subject := textinput.New()
	subject.Prompt = ""
	subject.Placeholder = "Subject"
	subject.CharLimit = 128

	body := textarea.New()
	body.Prompt = ""
	body.Placeholder = "Write your message..."
	body.ShowLineNumbers = false
	body.CharLimit = 4000

	return &MailPanel{To: to, Subject: subject, Body: body, Focus: fieldSubject}
}

func (p *MailPanel) dirty() bool {
	return strings.TrimSpace(p.Subject.Value()) != "" || strings.TrimSpace(p.Body.Value()) != ""
}

func (p *MailPanel) blurAll() {
	p.To.Blur()
	p.Subject.Blur()
	p.Body.Blur()
}

func (p *MailPanel) focusField() {
	p.blurAll()
	switch p.Focus {
	case fieldTo:
		p.To.Focus()
	case fieldSubject:
		p.Subject.Focus()
	case fieldBody:
		p.Body.Focus()
	}
}

func (p *MailPanel) cycle(delta int) {
	p.Focus = (p.Focus + delta + fieldCount) % fieldCount
	p.focusField()
}

func (p *MailPanel) message(session string) mail.Message {
	return mail.Message{
		To:      p.To.Value(),
		Subject: p.Subject.Value(),
		Body:    p.Body.Value(),
		Session: session,
	}
}

// sendMail saves the draft in the background.
func (m *OS) sendMail(w desktop.Window, p *MailPanel) tea.Cmd {
	if p.Sending {
		return nil
	}
	msg := p.message(m.Session)
	if strings.TrimSpace(msg.Body) == "" {
		m.ShowNotification("Write a message before sending", "warning", config.NotificationDuration)
		return nil
	}
	p.Sending = true
	outbox := m.Outbox
	windowID := w.ID
	return func() tea.Msg {
		if outbox == nil {
			return MailSentMsg{WindowID: windowID, Message: msg}
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		saved, err := outbox.Save(ctx, msg)
		return MailSentMsg{WindowID: windowID, Message: saved, Err: err}
	}
}

func (m *OS) handleMailSent(msg MailSentMsg) {
	p := m.panels[msg.WindowID]
	if p != nil && p.Mail != nil {
		p.Mail.Sending = false
	}
	switch {
	case errors.Is(msg.Err, mail.ErrEmptyMessage):
		m.ShowNotification("Write a message before sending", "warning", config.NotificationDuration)
		return
	case msg.Err != nil:
		m.ShowNotification("Failed to send: "+msg.Err.Error(), "error", config.MailNotificationDuration)
		return
	}
	if p != nil && p.Mail != nil {
		p.Mail.Subject.Reset()
		p.Mail.Body.Reset()
	}
	m.ShowNotification(mail.SentNotice, "success", config.MailNotificationDuration)
}

func (m *OS) mailKey(w desktop.Window, p *MailPanel, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		p.cycle(1)
		return nil
	case "shift+tab":
		p.cycle(-1)
		return nil
	case "ctrl+s":
		return m.sendMail(w, p)
	case "enter":
		switch p.Focus {
		case fieldSend:
			return m.sendMail(w, p)
		case fieldTo, fieldSubject:
			p.cycle(1)
			return nil
		}
	}

	var cmd tea.Cmd
	switch p.Focus {
	case fieldTo:
		p.To, cmd = p.To.Update(msg)
	case fieldSubject:
		p.Subject, cmd = p.Subject.Update(msg)
	case fieldBody:
		p.Body, cmd = p.Body.Update(msg)
	}
	return cmd
}

func (m *OS) mailClick(w desktop.Window, p *MailPanel, action, arg string) tea.Cmd {
	switch action {
	case "field":
		if i := atoi(arg); i >= 0 && i < fieldSend {
			p.Focus = i
			m.EnterInputMode()
		}
	case "send":
		p.Focus = fieldSend
		return m.sendMail(w, p)
	}
	return nil
}

// =============================================================================
// Rendering
// =============================================================================

func (m *OS) renderMail(w desktop.Window, p *MailPanel, width, height int) (string, []hotspot) {
	bg := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
	label := bg.Foreground(theme.FieldLabel())
	labelW := 10
	fieldW := max(width-labelW-2, 8)

	var (
		lines []string
		spots []hotspot
	)

	p.To.SetWidth(fieldW - 1)
	p.Subject.SetWidth(fieldW - 1)
	inputs := []string{p.To.View(), p.Subject.View()}
	for i, view := range inputs {
		st := bg
		if p.Focus == i {
			st = st.Underline(true)
		}
		field := fitLine(st.Render(view), fieldW, bg)
		row := fitLine(label.Render(" "+mailFieldLabels[i]), labelW, bg) + field
		lines = append(lines, fitLine(row, width, bg))
		spots = append(spots, hotspot{id: spotID("field", w.ID, itoa(i)), x: labelW, y: len(lines) - 1, content: field})
	}
	lines = append(lines, fitLine(label.Render(" "+strings.Repeat("─", max(width-2, 1))), width, bg))

	// body takes what is left after the header rows and the send row
	bodyH := max(height-len(lines)-3, 1)
	p.Body.SetWidth(max(width-2, 4))
	p.Body.SetHeight(bodyH)
	bodyTop := len(lines)
	bodyLines := strings.Split(p.Body.View(), "\n")
	for i := range bodyH {
		l := ""
		if i < len(bodyLines) {
			l = bodyLines[i]
		}
		lines = append(lines, fitLine(bg.Render(" ")+l, width, bg))
	}
	spots = append(spots, hotspot{
		id:      spotID("field", w.ID, itoa(fieldBody)),
		x:       0,
		y:       bodyTop,
		content: strings.Join(lines[bodyTop:], "\n"),
	})

	lines = append(lines, fitLine("", width, bg))
	sendLabel := " Send "
	if p.Sending {
		sendLabel = " Sending... "
	}
	sendStyle := lipgloss.NewStyle().Background(theme.SelectionBg()).Foreground(theme.SelectionFg()).Bold(true)
	if p.Focus == fieldSend {
		sendStyle = sendStyle.Reverse(true)
	}
	send := sendStyle.Render(sendLabel)
	hint := label.Render("  ctrl+s to send")
	lines = append(lines, fitLine(bg.Render(" ")+send+hint, width, bg))
	spots = append(spots, hotspot{id: spotID("send", w.ID), x: 1, y: len(lines) - 1, content: send})

	for len(lines) < height {
		lines = append(lines, fitLine("", width, bg))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n"), spots
}
