package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "folio/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Portfolio   PortfolioConfig   `toml:"portfolio"`
	Mail        MailConfig        `toml:"mail"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`        // Border style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide window control buttons (minimize, maximize, close)
	DockbarPosition   string `toml:"dockbar_position"`    // Dockbar position: bottom, top, hidden
	HideClock         bool   `toml:"hide_clock"`          // Hide the menu bar clock (default: false)
	ShowStats         *bool  `toml:"show_stats"`          // Show CPU and memory usage in the menu bar (default: true)
	Theme             string `toml:"theme"`               // Color theme name (e.g., dracula, nord, my-custom-theme)
}

// PortfolioConfig points at the content shown on the desktop
type PortfolioConfig struct {
	ContentPath string `toml:"content_path"` // YAML file overriding the built-in portfolio. Empty uses the built-in one.
}

// MailConfig configures the mail outbox
type MailConfig struct {
	OutboxPath string `toml:"outbox_path"` // SQLite outbox. Empty uses $XDG_DATA_HOME/folio/outbox.db
	Recipient  string `toml:"recipient"`   // Pre-filled "To" address. Empty uses the portfolio contact.
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	WindowManagement map[string][]string `toml:"window_management"`
	Tabs             map[string][]string `toml:"tabs"`
	Panel            map[string][]string `toml:"panel"`
	Launcher         map[string][]string `toml:"launcher"`
	ModeControl      map[string][]string `toml:"mode_control"`
	System           map[string][]string `toml:"system"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	showStats := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:       "rounded",
			HideWindowButtons: false,
			DockbarPosition:   "bottom",
			ShowStats:         &showStats,
		},
		Keybindings: KeybindingsConfig{
			WindowManagement: map[string][]string{
				"next_window":     {"tab"},
				"prev_window":     {"shift+tab"},
				"close_window":    {"x", "ctrl+w"},
				"minimize_window": {"m"},
				"maximize_window": {"f"},
				"restore_all":     {"M"},
				"move_left":       {"left"},
				"move_right":      {"right"},
				"move_up":         {"up"},
				"move_down":       {"down"},
				"resize_narrower": {"shift+left"},
				"resize_wider":    {"shift+right"},
				"resize_shorter":  {"shift+up"},
				"resize_taller":   {"shift+down"},
			},
			Tabs: map[string][]string{
				"next_tab":  {"]"},
				"prev_tab":  {"["},
				"close_tab": {"w"},
				"new_tab":   {"t"},
			},
			Panel: map[string][]string{
				"cycle_view":      {"v"},
				"history_back":    {"b"},
				"history_forward": {"B"},
				"open_selection":  {"o"},
			},
			Launcher: map[string][]string{
				"toggle_launcher": {"space", "l"},
				"open_icon_1":     {"1"},
				"open_icon_2":     {"2"},
				"open_icon_3":     {"3"},
				"open_icon_4":     {"4"},
				"open_icon_5":     {"5"},
				"open_icon_6":     {"6"},
				"open_icon_7":     {"7"},
				"open_icon_8":     {"8"},
				"open_icon_9":     {"9"},
			},
			ModeControl: map[string][]string{
				"enter_input_mode": {"i", "enter"},
				"exit_input_mode":  {"esc"},
			},
			System: map[string][]string{
				"toggle_help": {"?"},
				"toggle_logs": {"L"},
				"quit":        {"q", "ctrl+c"},
			},
		},
	}
}

// LoadUserConfig loads the configuration from the XDG config directory,
// writing a commented default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		path, err := xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return createDefaultConfig(path)
	}
	return LoadUserConfigFrom(configPath)
}

// LoadUserConfigFrom reads and validates the config file at path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	// #nosec G304 - path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}

	if validation.HasWarnings() {
		for _, warn := range validation.Warnings {
			fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
		}
	}

	return &cfg, nil
}

// WriteDefaultConfig overwrites the config file with the defaults.
func WriteDefaultConfig() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := createDefaultConfig(path); err != nil {
		return "", err
	}
	return path, nil
}

func createDefaultConfig(configPath string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# folio configuration file\n")
	sb.WriteString("# Customize appearance, keybindings and where the portfolio comes from.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings documentation, run: folio keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: Window border style\n")
	sb.WriteString("#   Options: rounded, normal, thick, double, hidden, block, ascii,\n")
	sb.WriteString("#            outer-half-block, inner-half-block\n")
	sb.WriteString("#   Default: rounded\n")
	sb.WriteString("#\n")
	sb.WriteString("# dockbar_position: Position of the dock\n")
	sb.WriteString("#   Options: bottom, top, hidden\n")
	sb.WriteString("#   Default: bottom\n")
	sb.WriteString("#\n")
	sb.WriteString("# show_stats: Show CPU and memory usage in the menu bar\n")
	sb.WriteString("#   Default: true\n")
	sb.WriteString("#\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   Custom themes: ~/.config/folio/themes/*.json\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# PORTFOLIO AND MAIL\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# portfolio.content_path: YAML file merged over the built-in portfolio\n")
	sb.WriteString("# mail.outbox_path: SQLite file that stores messages from the mail window\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.DockbarPosition == "" {
		cfg.Appearance.DockbarPosition = defaultCfg.Appearance.DockbarPosition
	}
	if cfg.Appearance.ShowStats == nil {
		cfg.Appearance.ShowStats = defaultCfg.Appearance.ShowStats
	}
}

func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	kb := &cfg.Keybindings
	def := defaultCfg.Keybindings

	if kb.WindowManagement == nil {
		kb.WindowManagement = make(map[string][]string)
	}
	fillMapDefaults(kb.WindowManagement, def.WindowManagement)

	if kb.Tabs == nil {
		kb.Tabs = make(map[string][]string)
	}
	fillMapDefaults(kb.Tabs, def.Tabs)

	if kb.Panel == nil {
		kb.Panel = make(map[string][]string)
	}
	fillMapDefaults(kb.Panel, def.Panel)

	if kb.Launcher == nil {
		kb.Launcher = make(map[string][]string)
	}
	fillMapDefaults(kb.Launcher, def.Launcher)

	if kb.ModeControl == nil {
		kb.ModeControl = make(map[string][]string)
	}
	fillMapDefaults(kb.ModeControl, def.ModeControl)

	if kb.System == nil {
		kb.System = make(map[string][]string)
	}
	fillMapDefaults(kb.System, def.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for action, keys := range defaults {
		if _, exists := target[action]; !exists {
			target[action] = keys
		}
	}
}

// GetConfigPath returns the path to the user's config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// DefaultOutboxPath returns where the mail outbox lives when none is configured.
func DefaultOutboxPath() (string, error) {
	return xdg.DataFile("folio/outbox.db")
}

// OutboxPath resolves the configured outbox path.
func (c *UserConfig) OutboxPath() (string, error) {
	if c != nil && strings.TrimSpace(c.Mail.OutboxPath) != "" {
		return c.Mail.OutboxPath, nil
	}
	return DefaultOutboxPath()
}
