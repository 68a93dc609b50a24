// Package main implements folio, a portfolio that looks and behaves like a
// small desktop operating system inside the terminal. It runs locally, over
// SSH, in the browser, or as an MCP tool server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/theme"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode         bool
	asciiOnly         bool
	themeName         string
	listThemes        bool
	previewTheme      string
	borderStyle       string
	dockbarPosition   string
	hideWindowButtons bool
	hideClock         bool
	noStats           bool
	contentPath       string
	outboxPath        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "A portfolio that runs like a desktop OS in your terminal",
		Long: `folio - a terminal portfolio desktop

Browse a portfolio through draggable windows, a dock, a launchpad and a
finder, send a message through the mail app, and serve the same desktop
over SSH or in the browser.`,
		Example: `  # Run locally
  folio

  # Run with a specific theme
  folio --theme dracula

  # Use your own portfolio content
  folio --content ~/portfolio.yaml

  # List all available themes
  folio --list-themes

  # Preview a theme's colors
  folio --preview-theme dracula

  # Serve over SSH
  folio ssh --port 2222

  # Serve in the browser
  folio web --port 7681

  # Expose the portfolio to an MCP client
  folio mcp

  # Edit configuration
  folio config edit`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}
			if listThemes {
				for _, id := range theme.IDs() {
					fmt.Println(id)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Nerd Font icons")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty for the built-in palette")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&dockbarPosition, "dockbar-position", "", "Dock position: bottom, top, hidden (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, maximize, close)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the menu bar clock")
	rootCmd.PersistentFlags().BoolVar(&noStats, "no-stats", false, "Hide the CPU and memory readout")
	rootCmd.PersistentFlags().StringVar(&contentPath, "content", "", "YAML file with portfolio content (default: from config or built-in)")
	rootCmd.PersistentFlags().StringVar(&outboxPath, "outbox", "", "SQLite file the mail app writes to (default: from config or data dir)")

	env, err := config.LoadServerEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring environment: %v\n", err)
		env, _ = config.LoadServerEnvFrom(map[string]string{})
	}

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve folio over SSH",
		Long: `Serve folio over SSH

Every connection gets its own desktop. The server generates a host key
automatically if none is specified. Defaults can also be set with the
FOLIO_SSH_HOST, FOLIO_SSH_PORT, FOLIO_SSH_KEY_PATH and
FOLIO_SSH_IDLE_TIMEOUT environment variables.`,
		Example: `  # Start SSH server on default port
  folio ssh

  # Listen on all interfaces
  folio ssh --host 0.0.0.0 --port 22

  # Specify custom host key
  folio ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath, env)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", env.SSHPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", env.SSHHost, "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", env.HostKeyPath, "Path to SSH host key (auto-generated if not specified)")

	var webPort, webHost string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve folio in the browser",
		Long: `Serve folio as a web terminal

Every browser tab gets its own desktop. Defaults can also be set with the
FOLIO_WEB_HOST and FOLIO_WEB_PORT environment variables.`,
		Example: `  # Start on the default port
  folio web

  # Listen on all interfaces
  folio web --host 0.0.0.0 --port 8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webHost, webPort)
		},
	}

	webCmd.Flags().StringVar(&webPort, "port", env.WebPort, "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", env.WebHost, "Web server host")

	var mcpTransport string
	var mcpPort int

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the portfolio as MCP tools",
		Long: `Serve the portfolio to MCP clients

Tools: list_sections, get_section, search_portfolio, open_window,
close_window and list_windows. Windows live on a desktop that is never
drawn.`,
		Example: `  # Run over stdio for a local client
  folio mcp

  # Run over streamable HTTP
  folio mcp --transport streamable-http --port 8090`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMCPServer(mcpTransport, mcpPort)
		},
	}

	mcpCmd.Flags().StringVar(&mcpTransport, "transport", env.MCPTransport, "Transport: stdio or streamable-http")
	mcpCmd.Flags().IntVar(&mcpPort, "port", env.MCPPort, "Port for streamable-http")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage folio configuration",
		Long:  `Manage the folio configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the folio configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the folio configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the folio configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect folio keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	mailCmd := &cobra.Command{
		Use:   "mail",
		Short: "Inspect the mail outbox",
		Long:  `Inspect messages visitors sent through the mail app`,
	}

	var mailLimit int
	mailListCmd := &cobra.Command{
		Use:   "list",
		Short: "List sent messages",
		Long:  `Display the most recent messages in the outbox, newest first`,
		Example: `  folio mail list
  folio mail list -n 5
  folio mail list --outbox ./outbox.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listMail(mailLimit)
		},
	}
	mailListCmd.Flags().IntVarP(&mailLimit, "lines", "n", config.MaxOutboxList, "Number of messages to show (0 for all)")

	mailCmd.AddCommand(mailListCmd)

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Run and check .tape scripts",
		Long: `Run and check .tape scripts

Tape files drive the desktop with a list of commands: open windows,
move them, type into forms and pause between steps. Use them to record
demos or to check a portfolio file renders the way you expect.`,
		Example: `  # Watch a script drive the desktop
  folio tape play demo.tape

  # Check a script without running it
  folio tape validate demo.tape`,
	}

	tapePlayCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Play a tape on the local desktop",
		Long: `Start the desktop and run a tape script on it

Names that are not a path are looked up in the tape directory.
Press Ctrl+P to pause or resume playback.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return playTape(args[0])
		},
	}

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Validate a tape file without running it",
		Long:  `Check if a tape file is syntactically correct`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateTapeFile(args[0])
		},
	}

	tapeListCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved tapes",
		Long:  `Display the tape files in the folio data directory`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listTapeFiles()
		},
	}

	tapeDirCmd := &cobra.Command{
		Use:   "dir",
		Short: "Show the tape directory path",
		Long:  `Print the path where saved tapes are looked up`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showTapeDirectory()
		},
	}

	tapeShowCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Display the contents of a tape file",
		Long:  `Print a saved tape to stdout`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return showTapeFile(args[0])
		},
	}

	tapeDeleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved tape",
		Long:  `Delete a tape file from the tape directory`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return deleteTapeFile(args[0])
		},
	}

	tapeCmd.AddCommand(tapePlayCmd, tapeValidateCmd, tapeListCmd, tapeDirCmd, tapeShowCmd, tapeDeleteCmd)

	rootCmd.AddCommand(sshCmd, webCmd, mcpCmd, configCmd, keybindsCmd, mailCmd, tapeCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
