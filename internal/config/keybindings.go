package config

import (
	"fmt"
	"sort"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "input" for input mode only, "!input" for desktop mode only
	Bindings  []Keybinding
}

// KeybindRegistry maps keys to actions for the desktop mode.
type KeybindRegistry struct {
	actions map[string]string   // key -> action
	keys    map[string][]string // action -> keys
}

// NewKeybindRegistry builds a registry from cfg. A nil cfg uses the defaults.
// When two actions claim the same key the first one in section order wins,
// which matches what ValidateConfig reports as a conflict.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		actions: make(map[string]string),
		keys:    make(map[string][]string),
	}
	for _, section := range keybindSections(&cfg.Keybindings) {
		for _, action := range sortedActions(section.binds) {
			for _, key := range section.binds[action] {
				key = normalizeKey(key)
				if key == "" {
					continue
				}
				r.keys[action] = append(r.keys[action], key)
				if _, taken := r.actions[key]; !taken {
					r.actions[key] = action
				}
			}
		}
	}
	return r
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	if r == nil {
		return ""
	}
	return r.actions[normalizeKey(key)]
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	if r == nil {
		return nil
	}
	return r.keys[action]
}

// GetKeysForDisplay formats the keys of action for the help overlay.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = displayKey(k)
	}
	return strings.Join(display, ", ")
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.keys))
	for action := range r.keys {
		out = append(out, action)
	}
	sort.Strings(out)
	return out
}

type bindSection struct {
	name  string
	binds map[string][]string
}

func keybindSections(kb *KeybindingsConfig) []bindSection {
	return []bindSection{
		{"window_management", kb.WindowManagement},
		{"tabs", kb.Tabs},
		{"panel", kb.Panel},
		{"launcher", kb.Launcher},
		{"mode_control", kb.ModeControl},
		{"system", kb.System},
	}
}

func sortedActions(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == " " {
		return "space"
	}
	lower := strings.ToLower(key)
	// Single letters keep their case so "m" and "M" stay distinct.
	if len([]rune(key)) == 1 {
		return key
	}
	return lower
}

func displayKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch p {
		case "ctrl":
			parts[i] = "Ctrl"
		case "shift":
			parts[i] = "Shift"
		case "alt":
			parts[i] = "Alt"
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		case "esc":
			parts[i] = "Esc"
		case "enter":
			parts[i] = "Enter"
		case "tab":
			parts[i] = "Tab"
		case "space":
			parts[i] = "Space"
		}
	}
	return strings.Join(parts, "+")
}

// GetKeybindings returns all keybinding sections for the help menu
// If registry is nil, it falls back to the defaults
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	sections := []KeybindingSection{}

	windowMgmt := KeybindingSection{Title: "WINDOW MANAGEMENT", Condition: "!input"}
	addBinding(&windowMgmt, registry, "next_window", "Next window")
	addBinding(&windowMgmt, registry, "prev_window", "Previous window")
	addBinding(&windowMgmt, registry, "close_window", "Close window")
	addBinding(&windowMgmt, registry, "minimize_window", "Minimize window")
	addBinding(&windowMgmt, registry, "maximize_window", "Maximize / restore")
	addBinding(&windowMgmt, registry, "restore_all", "Restore all")
	addBinding(&windowMgmt, registry, "move_left", "Move left")
	addBinding(&windowMgmt, registry, "move_right", "Move right")
	addBinding(&windowMgmt, registry, "move_up", "Move up")
	addBinding(&windowMgmt, registry, "move_down", "Move down")
	addBinding(&windowMgmt, registry, "resize_narrower", "Narrower")
	addBinding(&windowMgmt, registry, "resize_wider", "Wider")
	addBinding(&windowMgmt, registry, "resize_shorter", "Shorter")
	addBinding(&windowMgmt, registry, "resize_taller", "Taller")
	if len(windowMgmt.Bindings) > 0 {
		sections = append(sections, windowMgmt)
	}

	tabs := KeybindingSection{Title: "TABS", Condition: "!input"}
	addBinding(&tabs, registry, "next_tab", "Next tab")
	addBinding(&tabs, registry, "prev_tab", "Previous tab")
	addBinding(&tabs, registry, "new_tab", "New tab")
	addBinding(&tabs, registry, "close_tab", "Close tab")
	if len(tabs.Bindings) > 0 {
		sections = append(sections, tabs)
	}

	panel := KeybindingSection{Title: "WINDOW CONTENT", Condition: "!input"}
	addBinding(&panel, registry, "cycle_view", "Cycle finder view")
	addBinding(&panel, registry, "history_back", "Back")
	addBinding(&panel, registry, "history_forward", "Forward")
	addBinding(&panel, registry, "open_selection", "Open selected item")
	if len(panel.Bindings) > 0 {
		sections = append(sections, panel)
	}

	launcher := KeybindingSection{Title: "DESKTOP", Condition: "!input"}
	addBinding(&launcher, registry, "toggle_launcher", "Toggle launchpad")
	for i := 1; i <= 9; i++ {
		addBinding(&launcher, registry, fmt.Sprintf("open_icon_%d", i), fmt.Sprintf("Open desktop icon %d", i))
	}
	if len(launcher.Bindings) > 0 {
		sections = append(sections, launcher)
	}

	modes := KeybindingSection{Title: "MODES"}
	addBinding(&modes, registry, "enter_input_mode", "Type into window")
	addBinding(&modes, registry, "exit_input_mode", "Back to desktop")
	addBinding(&modes, registry, "toggle_help", "Toggle help")
	addBinding(&modes, registry, "toggle_logs", "Toggle log viewer")
	if len(modes.Bindings) > 0 {
		sections = append(sections, modes)
	}

	sections = append(sections, getStaticHelpSections()...)

	if keys := registry.GetKeysForDisplay("quit"); keys != "" {
		sections = append(sections, KeybindingSection{
			Bindings: []Keybinding{{keys, "Quit"}},
		})
	}
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't come from the registry
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title:     "INPUT MODE:",
			Condition: "input",
			Bindings: []Keybinding{
				{"Tab", "Next field"},
				{"Ctrl+S", "Send mail"},
				{"Enter", "Go (address bar) / search"},
				{"Esc", "Back to desktop"},
			},
		},
		{
			Title: "MOUSE:",
			Bindings: []Keybinding{
				{"Click", "Focus window / open icon or dock item"},
				{"Drag title", "Move window"},
				{"Drag corner", "Resize window"},
				{"Wheel", "Scroll window content"},
			},
		},
	}
}
