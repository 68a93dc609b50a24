package tape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// Executor applies tape commands to a desktop.
// Window arguments name a window by title; an empty name means the
// focused window.
type Executor interface {
	// Window management
	OpenByName(name string) error
	CloseWindowByName(name string) error
	FocusWindowByName(name string) error
	MinimizeWindowByName(name string) error
	RestoreWindowByName(name string) error
	RestoreAllWindows()
	MaximizeWindowByName(name string) error
	MoveFocused(x, y int) error
	ResizeFocused(width, height int) error
	CycleWindow(delta int)
	CycleFocusedTab(delta int)

	// Modes and overlays
	SetMode(mode string) error // "input" or "desktop"
	ToggleLauncher()
	ToggleHelp()
	ToggleLogs()

	// SendKey routes a key press exactly as if it was typed.
	SendKey(msg tea.KeyPressMsg) tea.Cmd

	// Config commands for runtime configuration
	ShowNotificationCmd(message, notificationType string) error
	SetDockbarPosition(position string) error
	SetBorderStyle(style string) error
	SetTheme(themeName string) error
}

// CommandExecutor runs parsed commands against an Executor.
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

func nameArg(cmd *Command) string {
	if len(cmd.Args) > 0 {
		return cmd.Args[0]
	}
	return ""
}

// Execute runs one command. Key commands may return a tea.Cmd produced by
// the panel that received them (for example a mail send). Sleep is a no-op
// here; the player waits between commands.
func (ce *CommandExecutor) Execute(cmd *Command) (tea.Cmd, error) {
	if ce.executor == nil {
		return nil, nil
	}
	ex := ce.executor

	switch cmd.Type {
	case CommandTypeOpen:
		return nil, ex.OpenByName(cmd.Args[0])

	case CommandTypeClose:
		return nil, ex.CloseWindowByName(nameArg(cmd))

	case CommandTypeFocus:
		return nil, ex.FocusWindowByName(cmd.Args[0])

	case CommandTypeMinimize:
		return nil, ex.MinimizeWindowByName(nameArg(cmd))

	case CommandTypeRestore:
		return nil, ex.RestoreWindowByName(nameArg(cmd))

	case CommandTypeRestoreAll:
		ex.RestoreAllWindows()

	case CommandTypeMaximize:
		return nil, ex.MaximizeWindowByName(nameArg(cmd))

	case CommandTypeMove, CommandTypeResize:
		a, err := cmd.IntArg(0)
		if err != nil {
			return nil, err
		}
		b, err := cmd.IntArg(1)
		if err != nil {
			return nil, err
		}
		if cmd.Type == CommandTypeMove {
			return nil, ex.MoveFocused(a, b)
		}
		return nil, ex.ResizeFocused(a, b)

	case CommandTypeNextWindow:
		ex.CycleWindow(1)

	case CommandTypePrevWindow:
		ex.CycleWindow(-1)

	case CommandTypeNextTab:
		ex.CycleFocusedTab(1)

	case CommandTypePrevTab:
		ex.CycleFocusedTab(-1)

	// Mode switching
	case CommandTypeInputMode:
		return nil, ex.SetMode("input")

	case CommandTypeDesktopMode:
		return nil, ex.SetMode("desktop")

	case CommandTypeLauncher:
		ex.ToggleLauncher()

	case CommandTypeHelp:
		ex.ToggleHelp()

	case CommandTypeLogs:
		ex.ToggleLogs()

	// Keys
	case CommandTypeType:
		var cmds []tea.Cmd
		for _, r := range cmd.Args[0] {
			cmds = append(cmds, ex.SendKey(runeKey(r)))
		}
		return tea.Batch(cmds...), nil

	case CommandTypeKey:
		msg, err := KeyPress(cmd.Args[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", cmd.Line, err)
		}
		return ex.SendKey(msg), nil

	case CommandTypeEnter:
		return ex.SendKey(tea.KeyPressMsg{Code: tea.KeyEnter}), nil

	case CommandTypeTab:
		return ex.SendKey(tea.KeyPressMsg{Code: tea.KeyTab}), nil

	case CommandTypeEscape:
		return ex.SendKey(tea.KeyPressMsg{Code: tea.KeyEscape}), nil

	case CommandTypeBackspace:
		return ex.SendKey(tea.KeyPressMsg{Code: tea.KeyBackspace}), nil

	case CommandTypeSpace:
		return ex.SendKey(runeKey(' ')), nil

	// Config commands
	case CommandTypeNotify:
		notifType := "info"
		if len(cmd.Args) > 1 {
			notifType = cmd.Args[1]
		}
		return nil, ex.ShowNotificationCmd(cmd.Args[0], notifType)

	case CommandTypeSetDockbarPosition:
		return nil, ex.SetDockbarPosition(cmd.Args[0])

	case CommandTypeSetBorderStyle:
		return nil, ex.SetBorderStyle(cmd.Args[0])

	case CommandTypeSetTheme:
		return nil, ex.SetTheme(cmd.Args[0])

	// Sleep is timing only
	case CommandTypeSleep:
	}

	return nil, nil
}

// runeKey is a printable key press.
func runeKey(r rune) tea.KeyPressMsg {
	if r == ' ' {
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var specialKeys = map[string]rune{
	"enter":     tea.KeyEnter,
	"return":    tea.KeyEnter,
	"tab":       tea.KeyTab,
	"escape":    tea.KeyEscape,
	"esc":       tea.KeyEscape,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"space":     tea.KeySpace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pageup":    tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"pagedown":  tea.KeyPgDown,
}

var functionKeys = [12]rune{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5, tea.KeyF6,
	tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10, tea.KeyF11, tea.KeyF12,
}

// KeyPress converts a combo such as "ctrl+n", "alt+1", "Enter" or "q" to a
// key press message.
// Examples: "Ctrl+b" -> {Code: 'b', Mod: ModCtrl}, "shift+tab" -> {Code: KeyTab, Mod: ModShift}
func KeyPress(combo string) (tea.KeyPressMsg, error) {
	parts := strings.Split(combo, "+")
	// "ctrl++" names the plus key
	if strings.HasSuffix(combo, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var (
		mod    tea.KeyMod
		keyStr string
	)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == len(parts)-1 {
			keyStr = part
			break
		}
		switch strings.ToLower(part) {
		case "ctrl":
			mod |= tea.ModCtrl
		case "alt", "opt":
			mod |= tea.ModAlt
		case "shift":
			mod |= tea.ModShift
		default:
			return tea.KeyPressMsg{}, fmt.Errorf("unknown modifier %q in %q", part, combo)
		}
	}
	if keyStr == "" {
		return tea.KeyPressMsg{}, fmt.Errorf("no key in %q", combo)
	}

	if code, ok := specialKeys[strings.ToLower(keyStr)]; ok {
		if code == tea.KeySpace && mod == 0 {
			return runeKey(' '), nil
		}
		return tea.KeyPressMsg{Code: code, Mod: mod}, nil
	}
	if len(keyStr) >= 2 && (keyStr[0] == 'f' || keyStr[0] == 'F') {
		var n int
		if _, err := fmt.Sscanf(keyStr[1:], "%d", &n); err == nil && n >= 1 && n <= 12 {
			return tea.KeyPressMsg{Code: functionKeys[n-1], Mod: mod}, nil
		}
	}
	if utf8.RuneCountInString(keyStr) != 1 {
		return tea.KeyPressMsg{}, fmt.Errorf("unknown key %q", keyStr)
	}

	r, _ := utf8.DecodeRuneInString(keyStr)
	if mod == 0 {
		return runeKey(r), nil
	}
	return tea.KeyPressMsg{Code: r, Mod: mod}, nil
}
