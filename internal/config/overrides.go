package config

import (
	"log"

	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// Overrides holds command line flags that take precedence over the config
// file. Zero values mean the flag was not given.
type Overrides struct {
	ASCIIOnly         bool
	BorderStyle       string
	DockbarPosition   string
	HideWindowButtons bool
	HideClock         bool
	NoStats           bool
	ThemeName         string
	ContentPath       string // replaces portfolio.content_path
	OutboxPath        string // replaces mail.outbox_path
}

// firstSet returns the flag value if given, else the config value, else
// current.
func firstSet(flag, file, current string) string {
	switch {
	case flag != "":
		return flag
	case file != "":
		return file
	}
	return current
}

// ApplyOverrides sets the appearance globals from flags and the user config.
// Boolean "hide" options are on when either source enables them. cfg may be
// nil, in which case only flags apply. Path overrides are written back into
// cfg so later readers see a single source.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	var appearance AppearanceConfig
	if cfg != nil {
		appearance = cfg.Appearance
		if o.ContentPath != "" {
			cfg.Portfolio.ContentPath = o.ContentPath
		}
		if o.OutboxPath != "" {
			cfg.Mail.OutboxPath = o.OutboxPath
		}
	}

	UseASCIIOnly = UseASCIIOnly || o.ASCIIOnly
	BorderStyle = firstSet(o.BorderStyle, appearance.BorderStyle, BorderStyle)
	DockbarPosition = firstSet(o.DockbarPosition, appearance.DockbarPosition, DockbarPosition)
	HideWindowButtons = o.HideWindowButtons || appearance.HideWindowButtons
	HideClock = o.HideClock || appearance.HideClock

	if o.NoStats {
		ShowStats = false
	} else if appearance.ShowStats != nil {
		ShowStats = *appearance.ShowStats
	}

	if name := firstSet(o.ThemeName, appearance.Theme, ""); name != "" {
		if err := theme.Initialize(name); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", name, err)
		}
	}
}
