package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/ssh"
)

const shutdownTimeout = 30 * time.Second

// hostKeyPath returns the configured key path or the xdg default.
func hostKeyPath(cfg *Config) (string, error) {
	if cfg.KeyPath != "" {
		return cfg.KeyPath, nil
	}
	path, err := xdg.DataFile("folio/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("failed to get host key path: %w", err)
	}
	return path, nil
}

// StartSSHServer serves a fresh desktop to every SSH session until ctx is
// cancelled.
func StartSSHServer(ctx context.Context, cfg *Config) error {
	keyPath, err := hostKeyPath(cfg)
	if err != nil {
		return err
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(cfg.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	}
	if cfg.Version != "" {
		opts = append(opts, wish.WithVersion("folio-"+cfg.Version))
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("SSH server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to shut down SSH server: %w", err)
	}
	log.Println("SSH server stopped")
	return nil
}

// teaHandler builds the desktop for one SSH session. The bubbletea
// middleware wires the session's input and output.
func (c *Config) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		// activeterm rejects these first
		return nil, nil
	}

	profile := colorprofile.Env(append(sess.Environ(), "TERM="+pty.Term))
	user := sess.User()
	if user == "" {
		user = "anonymous"
	}
	log.Printf("Session for %s from %s: %s %dx%d, %s",
		user, sess.RemoteAddr(), pty.Term, pty.Window.Width, pty.Window.Height, profile)

	model := c.newDesktop("ssh:"+user, pty.Window.Width, pty.Window.Height)
	return model, append(programOptions(), tea.WithColorProfile(profile))
}
