// Package server serves the folio desktop over SSH and in the browser.
// Every connection gets its own desktop; the mail outbox and portfolio
// content are shared.
package server

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/mail"
)

// Config holds listener settings and what each session is built from.
type Config struct {
	Host        string
	Port        string
	KeyPath     string        // ssh host key, generated when missing
	IdleTimeout time.Duration // ssh only, 0 disables
	Version     string

	Content         *content.Portfolio
	Outbox          *mail.Outbox
	KeybindRegistry *config.KeybindRegistry
	Recipient       string
}

// newDesktop builds the model for one connection.
func (c *Config) newDesktop(session string, width, height int) *app.OS {
	return app.New(app.Options{
		Content:         c.Content,
		Outbox:          c.Outbox,
		KeybindRegistry: c.KeybindRegistry,
		Session:         session,
		Recipient:       c.Recipient,
		Width:           width,
		Height:          height,
	})
}

// programOptions are shared by every served session.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(app.FilterMouseMotion),
	}
}
