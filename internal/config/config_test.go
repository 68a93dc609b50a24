package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	result := ValidateConfig(DefaultConfig())
	if result.HasErrors() {
		t.Fatalf("default config has errors: %+v", result.Errors)
	}
	if result.HasWarnings() {
		t.Errorf("default config has warnings: %+v", result.Warnings)
	}
}

func TestLoadUserConfigFromFillsMissing(t *testing.T) {
	path := writeConfig(t, `
[appearance]
theme = "nord"

[keybindings.system]
quit = ["ctrl+q"]
`)
	cfg, err := LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Appearance.Theme != "nord" {
		t.Errorf("theme = %q, want nord", cfg.Appearance.Theme)
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("border style not defaulted: %q", cfg.Appearance.BorderStyle)
	}
	if cfg.Appearance.ShowStats == nil || !*cfg.Appearance.ShowStats {
		t.Error("show_stats should default to true")
	}
	if got := cfg.Keybindings.System["quit"]; len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("quit keys = %v, want [ctrl+q]", got)
	}
	if _, ok := cfg.Keybindings.System["toggle_help"]; !ok {
		t.Error("missing system actions should be filled from defaults")
	}
	if len(cfg.Keybindings.Tabs) == 0 {
		t.Error("missing sections should be filled from defaults")
	}
}

func TestLoadUserConfigFromErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad toml", body: "[appearance\n", want: "failed to parse"},
		{name: "bad border", body: "[appearance]\nborder_style = \"wavy\"\n", want: "1 error"},
		{name: "bad dock", body: "[appearance]\ndockbar_position = \"left\"\n", want: "1 error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadUserConfigFrom(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}

	if _, err := LoadUserConfigFrom(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCreateDefaultConfigWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio", "config.toml")
	if _, err := createDefaultConfig(path); err != nil {
		t.Fatalf("create: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# folio configuration file") {
		t.Error("expected commented header")
	}

	cfg, err := LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("reload written defaults: %v", err)
	}
	if cfg.Appearance.DockbarPosition != "bottom" {
		t.Errorf("dockbar position = %q", cfg.Appearance.DockbarPosition)
	}
}

func TestValidateKeybindConflicts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings.Tabs["new_tab"] = []string{"x"}

	result := ValidateConfig(cfg)
	if result.HasErrors() {
		t.Fatalf("conflict should be a warning, got errors %+v", result.Errors)
	}
	if !result.HasWarnings() {
		t.Fatal("expected a conflict warning")
	}
	if !strings.Contains(result.Warnings[0].Message, "close_window") {
		t.Errorf("warning should name the other action: %q", result.Warnings[0].Message)
	}
}

func TestValidateNil(t *testing.T) {
	if !ValidateConfig(nil).HasErrors() {
		t.Error("nil config should be an error")
	}
}

func TestKeybindRegistry(t *testing.T) {
	r := NewKeybindRegistry(nil)

	tests := []struct {
		key  string
		want string
	}{
		{"tab", "next_window"},
		{"m", "minimize_window"},
		{"M", "restore_all"},
		{"ctrl+w", "close_window"},
		{"CTRL+W", "close_window"},
		{"space", "toggle_launcher"},
		{"3", "open_icon_3"},
		{"z", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.GetAction(tt.key); got != tt.want {
				t.Errorf("GetAction(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if got := r.GetKeysForDisplay("close_window"); got != "x, Ctrl+w" {
		t.Errorf("display = %q", got)
	}
	if got := r.GetKeysForDisplay("resize_wider"); got != "Shift+→" {
		t.Errorf("display = %q", got)
	}

	var nilRegistry *KeybindRegistry
	if nilRegistry.GetAction("q") != "" || nilRegistry.GetKeysForDisplay("quit") != "" {
		t.Error("nil registry should bind nothing")
	}
}

func TestGetKeybindingsFollowsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings.System["toggle_help"] = []string{"h"}
	sections := GetKeybindings(NewKeybindRegistry(cfg))

	found := false
	for _, s := range sections {
		for _, b := range s.Bindings {
			if b.Description == "Toggle help" {
				found = true
				if b.Key != "h" {
					t.Errorf("help key = %q, want h", b.Key)
				}
			}
		}
	}
	if !found {
		t.Error("help binding missing from sections")
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Cleanup(func() {
		BorderStyle, DockbarPosition = "rounded", "bottom"
		HideClock, HideWindowButtons, ShowStats = false, false, true
	})

	cfg := DefaultConfig()
	cfg.Appearance.BorderStyle = "thick"
	cfg.Appearance.HideClock = true
	off := false
	cfg.Appearance.ShowStats = &off

	ApplyOverrides(Overrides{DockbarPosition: "top", ContentPath: "me.yaml"}, cfg)

	if BorderStyle != "thick" {
		t.Errorf("BorderStyle = %q, want thick from config", BorderStyle)
	}
	if DockbarPosition != "top" {
		t.Errorf("DockbarPosition = %q, want flag value", DockbarPosition)
	}
	if !HideClock || ShowStats {
		t.Errorf("HideClock=%v ShowStats=%v", HideClock, ShowStats)
	}
	if cfg.Portfolio.ContentPath != "me.yaml" {
		t.Errorf("content path = %q", cfg.Portfolio.ContentPath)
	}
}

func TestServerEnv(t *testing.T) {
	e, err := LoadServerEnvFrom(map[string]string{
		"FOLIO_SSH_PORT":         "2323",
		"FOLIO_SSH_IDLE_TIMEOUT": "5m",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if e.SSHAddr() != "localhost:2323" {
		t.Errorf("ssh addr = %q", e.SSHAddr())
	}
	if e.WebAddr() != "localhost:7681" {
		t.Errorf("web addr = %q", e.WebAddr())
	}
	if e.IdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout = %v", e.IdleTimeout)
	}
	if e.MCPTransport != "stdio" || e.MCPPort != DefaultMCPPort {
		t.Errorf("mcp = %q:%d", e.MCPTransport, e.MCPPort)
	}

	if _, err := LoadServerEnvFrom(map[string]string{"FOLIO_MCP_PORT": "nope"}); err == nil {
		t.Error("expected parse error for non-numeric port")
	}
}

func TestGetBorderForStyle(t *testing.T) {
	t.Cleanup(func() { BorderStyle, UseASCIIOnly = "rounded", false })

	BorderStyle = "double"
	if GetBorderForStyle().Top != "═" {
		t.Errorf("double border top = %q", GetBorderForStyle().Top)
	}
	UseASCIIOnly = true
	if GetBorderForStyle().Top != "-" {
		t.Errorf("ascii border top = %q", GetBorderForStyle().Top)
	}
	if AppIcon("", "Finder") != "F" {
		t.Error("ascii app icon should be the first letter")
	}
}
