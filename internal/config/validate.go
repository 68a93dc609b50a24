package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue is a single problem found in the user config.
type ValidationIssue struct {
	Field   string // config section, e.g. "appearance"
	Key     string
	Message string
}

// ValidationResult collects errors (fatal) and warnings (reported, then ignored).
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any fatal issue was found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

var (
	validBorderStyles = []string{
		"rounded", "normal", "thick", "double", "hidden", "block", "ascii",
		"outer-half-block", "inner-half-block",
	}
	validDockbarPositions = []string{"bottom", "top", "hidden"}
)

// ValidateConfig checks cfg for invalid values and keybinding conflicts.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.addError("config", "", "configuration is nil")
		return result
	}

	if s := cfg.Appearance.BorderStyle; s != "" && !slices.Contains(validBorderStyles, s) {
		result.addError("appearance", "border_style", "unknown style %q (options: %s)", s, strings.Join(validBorderStyles, ", "))
	}
	if p := cfg.Appearance.DockbarPosition; p != "" && !slices.Contains(validDockbarPositions, p) {
		result.addError("appearance", "dockbar_position", "unknown position %q (options: %s)", p, strings.Join(validDockbarPositions, ", "))
	}
	if p := cfg.Portfolio.ContentPath; p != "" && !strings.HasSuffix(p, ".yaml") && !strings.HasSuffix(p, ".yml") {
		result.addWarning("portfolio", "content_path", "%q does not look like a YAML file", p)
	}

	seen := make(map[string]string)
	for _, section := range keybindSections(&cfg.Keybindings) {
		for _, action := range sortedActions(section.binds) {
			keys := section.binds[action]
			if len(keys) == 0 {
				result.addWarning("keybindings."+section.name, action, "no keys bound")
				continue
			}
			for _, key := range keys {
				k := normalizeKey(key)
				if k == "" {
					result.addError("keybindings."+section.name, action, "empty key")
					continue
				}
				if other, ok := seen[k]; ok && other != action && !sharedKey(k) {
					result.addWarning("keybindings."+section.name, action, "key %q is already bound to %s", key, other)
					continue
				}
				seen[k] = action
			}
		}
	}
	return result
}

// sharedKey reports keys that are deliberately used by more than one mode.
func sharedKey(key string) bool {
	return key == "esc" || key == "enter"
}
