package server

import (
	"context"
	"fmt"
	"log"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/google/uuid"
)

// StartWebServer serves a fresh desktop to every browser tab until ctx is
// cancelled.
func StartWebServer(ctx context.Context, cfg *Config) error {
	sc := sip.DefaultConfig()
	if cfg.Host != "" {
		sc.Host = cfg.Host
	}
	if cfg.Port != "" {
		sc.Port = cfg.Port
	}

	log.Printf("Web terminal listening on http://%s:%s", sc.Host, sc.Port)
	if err := sip.NewServer(sc).Serve(ctx, cfg.webHandler); err != nil && ctx.Err() == nil {
		return fmt.Errorf("web server error: %w", err)
	}
	log.Println("Web terminal stopped")
	return nil
}

// webHandler builds the desktop for one browser session. Browser sessions
// have no user name, so each gets a short random id.
func (c *Config) webHandler(sess sip.Session) (tea.Model, []tea.ProgramOption) {
	pty := sess.Pty()
	session := "web:" + uuid.NewString()[:8]
	log.Printf("Session %s: %dx%d", session, pty.Width, pty.Height)
	return c.newDesktop(session, pty.Width, pty.Height), programOptions()
}
