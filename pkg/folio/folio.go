// Package folio provides the terminal portfolio desktop as a reusable
// Bubble Tea model, so it can be embedded in other programs or served
// through custom transports.
//
// # Basic Usage
//
// Create a desktop with the built-in portfolio:
//
//	model := folio.New()
//	p := tea.NewProgram(model, folio.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to change content and appearance:
//
//	model := folio.New(
//		folio.WithTheme("dracula"),
//		folio.WithContentFile("portfolio.yaml"),
//		folio.WithDockbarPosition("top"),
//	)
//
// # Using with sip (Web Terminal)
//
// Every browser session should get its own model:
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		pty := sess.Pty()
//		return folio.New(folio.WithSize(pty.Width, pty.Height)), folio.ProgramOptions()
//	})
package folio

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/input"
	"github.com/Gaurav-Gosain/folio/internal/mail"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// Model is the desktop model that implements tea.Model.
type Model = app.OS

// Mode is the current interaction mode.
type Mode = app.Mode

// Mode constants
const (
	// DesktopMode routes keys to window management and the keybindings.
	DesktopMode = app.DesktopMode
	// InputMode sends keys to the focused window's content.
	InputMode = app.InputMode
)

// Options configures a desktop.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty for the built-in palette.
	Theme string

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// DockbarPosition sets where the dock appears.
	// Valid values: "bottom", "top", "hidden"
	DockbarPosition string

	// HideWindowButtons hides the minimize/maximize/close buttons.
	HideWindowButtons bool

	// HideClock hides the menu bar clock.
	HideClock bool

	// NoStats hides the CPU and memory readout.
	NoStats bool

	// ContentFile is a YAML file merged over the built-in portfolio.
	ContentFile string

	// OutboxFile is the SQLite file the mail app writes to. Empty disables
	// sending.
	OutboxFile string

	// Recipient pre-fills the mail "To" field. Empty uses the portfolio contact.
	Recipient string

	// Session names the visitor in logs and stored mail.
	Session string

	// Width is the initial width (set automatically if 0).
	Width int

	// Height is the initial height (set automatically if 0).
	Height int

	// UserConfig supplies keybindings. If nil, the user's config file is
	// loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only mode (no Nerd Font icons).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithDockbarPosition sets the dock position.
func WithDockbarPosition(position string) Option {
	return func(o *Options) {
		o.DockbarPosition = position
	}
}

// WithHideWindowButtons hides window control buttons.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) {
		o.HideWindowButtons = hide
	}
}

// WithHideClock hides the menu bar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithNoStats hides the CPU and memory readout.
func WithNoStats(hide bool) Option {
	return func(o *Options) {
		o.NoStats = hide
	}
}

// WithContentFile loads portfolio content from a YAML file.
func WithContentFile(path string) Option {
	return func(o *Options) {
		o.ContentFile = path
	}
}

// WithOutboxFile enables the mail app, storing messages at path.
// Close the outbox with CloseOutbox when the program exits.
func WithOutboxFile(path string) Option {
	return func(o *Options) {
		o.OutboxFile = path
	}
}

// WithRecipient sets the pre-filled mail recipient.
func WithRecipient(addr string) Option {
	return func(o *Options) {
		o.Recipient = addr
	}
}

// WithSession names the visitor.
func WithSession(name string) Option {
	return func(o *Options) {
		o.Session = name
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a desktop with the given options.
// This is the main entry point for using folio as a library.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is anything that reports a terminal size.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized to pty.
func NewForPTY(pty PTY, opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

// newModel creates the internal model with applied options. Content and
// outbox failures are reported in the desktop's log viewer rather than
// returned.
func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         options.ASCIIOnly,
		BorderStyle:       options.BorderStyle,
		DockbarPosition:   options.DockbarPosition,
		HideWindowButtons: options.HideWindowButtons,
		HideClock:         options.HideClock,
		NoStats:           options.NoStats,
	}, nil)
	if options.Theme != "" {
		_ = theme.Initialize(options.Theme)
	}

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	var warnings []string

	portfolio, err := content.Load(options.ContentFile)
	if err != nil {
		warnings = append(warnings, err.Error())
		portfolio = content.Default()
	}

	var outbox *mail.Outbox
	if options.OutboxFile != "" {
		outbox, err = mail.Open(options.OutboxFile)
		if err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	m := app.New(app.Options{
		Content:         portfolio,
		Outbox:          outbox,
		KeybindRegistry: config.NewKeybindRegistry(userConfig),
		Session:         options.Session,
		Recipient:       options.Recipient,
		Width:           options.Width,
		Height:          options.Height,
	})
	for _, w := range warnings {
		m.LogWarn("%s", w)
	}
	return m
}

// CloseOutbox closes the outbox opened by WithOutboxFile, if any.
func CloseOutbox(m *Model) error {
	if m == nil || m.Outbox == nil {
		return nil
	}
	return m.Outbox.Close()
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the desktop:
//
//	model := folio.New()
//	p := tea.NewProgram(model, folio.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a window is being dragged or resized.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return app.FilterMouseMotion(model, msg)
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
