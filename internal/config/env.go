package config

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds listener settings read from FOLIO_* environment variables.
// Command-line flags override these.
type ServerEnv struct {
	SSHHost      string        `env:"FOLIO_SSH_HOST"         envDefault:"localhost"`
	SSHPort      string        `env:"FOLIO_SSH_PORT"         envDefault:"2222"`
	HostKeyPath  string        `env:"FOLIO_SSH_KEY_PATH"`
	IdleTimeout  time.Duration `env:"FOLIO_SSH_IDLE_TIMEOUT" envDefault:"30m"`
	WebHost      string        `env:"FOLIO_WEB_HOST"         envDefault:"localhost"`
	WebPort      string        `env:"FOLIO_WEB_PORT"         envDefault:"7681"`
	MCPTransport string        `env:"FOLIO_MCP_TRANSPORT"    envDefault:"stdio"`
	MCPPort      int           `env:"FOLIO_MCP_PORT"         envDefault:"8090"`
}

// LoadServerEnv parses the process environment.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return ServerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadServerEnvFrom parses vars instead of the process environment.
func LoadServerEnvFrom(vars map[string]string) (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return ServerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SSHAddr returns host:port for the SSH listener.
func (e ServerEnv) SSHAddr() string { return net.JoinHostPort(e.SSHHost, e.SSHPort) }

// WebAddr returns host:port for the web terminal.
func (e ServerEnv) WebAddr() string { return net.JoinHostPort(e.WebHost, e.WebPort) }
