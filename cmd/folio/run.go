package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/input"
	"github.com/Gaurav-Gosain/folio/internal/mail"
	"github.com/Gaurav-Gosain/folio/internal/server"
	"github.com/Gaurav-Gosain/folio/internal/tape"
	"github.com/adrg/xdg"
)

// deps is what every desktop is built from, whichever way it is served.
type deps struct {
	userConfig *config.UserConfig
	portfolio  *content.Portfolio
	outbox     *mail.Outbox
	registry   *config.KeybindRegistry
}

func (d *deps) Close() {
	if d.outbox == nil {
		return
	}
	if err := d.outbox.Close(); err != nil {
		log.Printf("Warning: failed to close outbox: %v", err)
	}
}

// loadDeps applies the global flags on top of the user config and opens
// the portfolio content and mail outbox.
func loadDeps() (*deps, error) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	if borderStyle != "" {
		userConfig.Appearance.BorderStyle = borderStyle
	}
	if dockbarPosition != "" {
		userConfig.Appearance.DockbarPosition = dockbarPosition
	}
	// LoadUserConfig only checked the file
	if result := config.ValidateConfig(userConfig); result.HasErrors() {
		for _, e := range result.Errors {
			log.Printf("Error: %s %s: %s", e.Field, e.Key, e.Message)
		}
		return nil, fmt.Errorf("invalid appearance flags")
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         asciiOnly,
		BorderStyle:       borderStyle,
		DockbarPosition:   dockbarPosition,
		HideWindowButtons: hideWindowButtons,
		HideClock:         hideClock,
		NoStats:           noStats,
		ThemeName:         themeName,
		ContentPath:       contentPath,
		OutboxPath:        outboxPath,
	}, userConfig)

	portfolio, err := content.Load(userConfig.Portfolio.ContentPath)
	if err != nil {
		return nil, err
	}

	path, err := userConfig.OutboxPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outbox path: %w", err)
	}
	outbox, err := mail.Open(path)
	if err != nil {
		return nil, err
	}

	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
		log.Printf("Outbox: %s", path)
	}

	app.SetInputHandler(input.HandleInput)

	return &deps{
		userConfig: userConfig,
		portfolio:  portfolio,
		outbox:     outbox,
		registry:   config.NewKeybindRegistry(userConfig),
	}, nil
}

// serverConfig fills the parts of a server config shared by ssh and web.
func (d *deps) serverConfig(host, port string) *server.Config {
	return &server.Config{
		Host:            host,
		Port:            port,
		Version:         version,
		Content:         d.portfolio,
		Outbox:          d.outbox,
		KeybindRegistry: d.registry,
		Recipient:       d.userConfig.Mail.Recipient,
	}
}

// startDebugLog sends the standard logger to a file so it does not draw
// over the desktop.
func startDebugLog() (func(), error) {
	if !debugMode {
		return func() {}, nil
	}
	path, err := xdg.StateFile("folio/debug.log")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve debug log path: %w", err)
	}
	f, err := tea.LogToFile(path, "folio")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	fmt.Printf("Debug log: %s\n", path)
	return func() { _ = f.Close() }, nil
}

func runLocal() error {
	return runDesktop(nil)
}

// tapeScript is a parsed script to play once the desktop starts.
type tapeScript struct {
	name     string
	commands []tape.Command
}

func runDesktop(script *tapeScript) error {
	stopLog, err := startDebugLog()
	if err != nil {
		return err
	}
	defer stopLog()

	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	initialOS := app.New(app.Options{
		Content:         d.portfolio,
		Outbox:          d.outbox,
		KeybindRegistry: d.registry,
		Recipient:       d.userConfig.Mail.Recipient,
	})

	p := tea.NewProgram(
		initialOS,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(app.FilterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	if script != nil {
		go p.Send(app.PlayTapeMsg{Name: script.name, Commands: script.commands})
	}

	finalModel, err := p.Run()

	if finalOS, ok := finalModel.(*app.OS); ok {
		finalOS.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(host, port, keyPath string, env config.ServerEnv) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := d.serverConfig(host, port)
	cfg.KeyPath = keyPath
	cfg.IdleTimeout = env.IdleTimeout

	log.Printf("Starting folio SSH server on %s:%s", host, port)
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(host, port string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.StartWebServer(ctx, d.serverConfig(host, port))
}

func runMCPServer(transport string, port int) error {
	// stdout carries the protocol on stdio, so nothing else may write there
	log.SetOutput(os.Stderr)

	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewMCPServer(d.portfolio, version)
	return s.Serve(ctx, server.MCPConfig{Transport: transport, Port: port, Version: version})
}
