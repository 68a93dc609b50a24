package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/mail"
	"github.com/Gaurav-Gosain/folio/internal/tape"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the first available editor, checking $EDITOR and
// $VISUAL before a few common ones.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", errors.New("no editor found (set $EDITOR)")
}

func editConfigFile() error {
	// Creates the file on first run
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	// $EDITOR may carry arguments, e.g. "code --wait"
	parts := strings.Fields(editor)
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	if _, err := config.LoadUserConfigFrom(path); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Println("Configuration is valid.")
	return nil
}

func resetConfigToDefaults(skipConfirm bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if !skipConfirm {
		fmt.Printf("This will overwrite %s with the defaults. Continue? [y/N] ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	written, err := config.WriteDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Printf("Configuration reset: %s\n", written)
	return nil
}

// cliTable returns a table styled with the active theme's CLI colors.
func cliTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableDim())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
}

func loadRegistry() *config.KeybindRegistry {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, showing defaults\n", err)
		userConfig = config.DefaultConfig()
	}
	if userConfig.Appearance.Theme != "" {
		_ = theme.Initialize(userConfig.Appearance.Theme)
	}
	return config.NewKeybindRegistry(userConfig)
}

func listKeybindings() error {
	registry := loadRegistry()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())

	for _, section := range config.GetKeybindings(registry) {
		if len(section.Bindings) == 0 {
			continue
		}
		title := section.Title
		if title == "" {
			title = "OTHER"
		}
		t := cliTable("Key", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		fmt.Println(titleStyle.Render(strings.TrimSuffix(title, ":")))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}

func listCustomKeybindings() error {
	registry := loadRegistry()
	defaults := config.NewKeybindRegistry(config.DefaultConfig())

	t := cliTable("Action", "Default", "Custom")
	changed := 0
	for _, action := range mergedActions(defaults, registry) {
		def := defaults.GetKeysForDisplay(action)
		cur := registry.GetKeysForDisplay(action)
		if def == cur {
			continue
		}
		if cur == "" {
			cur = "(unbound)"
		}
		t.Row(action, def, cur)
		changed++
	}

	if changed == 0 {
		fmt.Println("No custom keybindings. Run 'folio config edit' to change them.")
		return nil
	}
	fmt.Println(t.Render())
	return nil
}

func mergedActions(a, b *config.KeybindRegistry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range []*config.KeybindRegistry{a, b} {
		for _, action := range r.Actions() {
			if !seen[action] {
				seen[action] = true
				out = append(out, action)
			}
		}
	}
	return out
}

func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("theme %q not found", name)
	}

	swatch := func(label string, c color.Color) string {
		block := lipgloss.NewStyle().Background(c).Render("    ")
		text := lipgloss.NewStyle().Foreground(c).Render(fmt.Sprintf(" %-14s %s", label, theme.ColorToString(c)))
		return block + text
	}

	fmt.Println(lipgloss.NewStyle().Bold(true).Render(t.DisplayName))
	fmt.Println(swatch("foreground", t.Fg))
	fmt.Println(swatch("background", t.Bg))
	fmt.Println()

	normal := []struct {
		name string
		c    color.Color
	}{
		{"black", t.Black}, {"red", t.Red}, {"green", t.Green}, {"yellow", t.Yellow},
		{"blue", t.Blue}, {"purple", t.Purple}, {"cyan", t.Cyan}, {"white", t.White},
	}
	bright := []color.Color{
		t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow,
		t.BrightBlue, t.BrightPurple, t.BrightCyan, t.BrightWhite,
	}
	for i, n := range normal {
		fmt.Printf("%s  %s\n", swatch(n.name, n.c), swatch("bright "+n.name, bright[i]))
	}
	return nil
}

func listMail(limit int) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}
	if outboxPath != "" {
		userConfig.Mail.OutboxPath = outboxPath
	}
	path, err := userConfig.OutboxPath()
	if err != nil {
		return fmt.Errorf("failed to resolve outbox path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Println("Outbox is empty.")
		return nil
	}

	outbox, err := mail.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = outbox.Close() }()

	ctx := context.Background()
	msgs, err := outbox.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("Outbox is empty.")
		return nil
	}

	t := cliTable("Sent", "From", "To", "Subject")
	for _, m := range msgs {
		t.Row(m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Session, m.To, m.Subject)
	}
	fmt.Println(t.Render())

	if total, err := outbox.Count(ctx); err == nil && total > len(msgs) {
		fmt.Printf("%d of %d messages\n", len(msgs), total)
	}
	return nil
}

func loadTape(name string) (*tapeScript, error) {
	dir, err := tape.Dir()
	if err != nil {
		return nil, err
	}
	path, err := tape.Resolve(dir, name)
	if err != nil {
		return nil, err
	}
	cmds, err := tape.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &tapeScript{
		name:     strings.TrimSuffix(filepath.Base(path), tape.Ext),
		commands: cmds,
	}, nil
}

func playTape(name string) error {
	script, err := loadTape(name)
	if err != nil {
		return err
	}
	return runDesktop(script)
}

func validateTapeFile(name string) error {
	script, err := loadTape(name)
	if err != nil {
		var perr *tape.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(os.Stderr, "%d error(s) in %s:\n", len(perr.Errors), name)
			for _, e := range perr.Errors {
				fmt.Fprintf(os.Stderr, "  %v\n", e)
			}
			return fmt.Errorf("invalid tape")
		}
		return err
	}
	fmt.Printf("%s: %d commands, OK\n", name, len(script.commands))
	return nil
}

func listTapeFiles() error {
	dir, err := tape.Dir()
	if err != nil {
		return err
	}
	files, err := tape.List(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No tapes in %s\n", dir)
		return nil
	}

	t := cliTable("Name", "Commands", "Size", "Modified")
	for _, f := range files {
		commands := "invalid"
		if cmds, err := tape.ParseFile(f.Path); err == nil {
			commands = fmt.Sprint(len(cmds))
		}
		t.Row(f.Name, commands, formatFileSize(f.Size), f.Modified.Format("2006-01-02 15:04"))
	}
	fmt.Println(t.Render())
	return nil
}

func formatFileSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

func showTapeDirectory() error {
	dir, err := tape.Dir()
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}

func showTapeFile(name string) error {
	dir, err := tape.Dir()
	if err != nil {
		return err
	}
	path, err := tape.Resolve(dir, name)
	if err != nil {
		return err
	}
	// #nosec G304 - resolved from the tape directory or the user's own path
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tape: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func deleteTapeFile(name string) error {
	dir, err := tape.Dir()
	if err != nil {
		return err
	}
	if err := tape.Delete(dir, name); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", name)
	return nil
}
