package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL is the remote marketplace API the client talks to.
	APIBaseURL  string        `env:"AGROWORK_API_URL, default=http://localhost:3000"`
	HTTPTimeout time.Duration `env:"AGROWORK_HTTP_TIMEOUT, default=15s"`
	Env         string        `env:"ENV, default=development"`
	LogLevel    string        `env:"LOG_LEVEL, default=info"`
	// LogFile receives structured logs while the TUI owns the terminal.
	// Empty means "next to the session file".
	LogFile string `env:"AGROWORK_LOG_FILE"`
	// SessionFile holds the persisted token+user pair between runs.
	// Empty means "$HOME/.agrowork/session.json".
	SessionFile string `env:"AGROWORK_SESSION_FILE"`

	Stub StubConfig
}

// StubConfig configures the bundled in-memory API stub.
type StubConfig struct {
	Port      string        `env:"AGROWORK_STUB_PORT, default=3000"`
	JWTSecret string        `env:"AGROWORK_STUB_JWT_SECRET, default=dev-only-secret"`
	TokenTTL  time.Duration `env:"AGROWORK_STUB_TOKEN_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.SessionFile == "" {
		c.SessionFile = filepath.Join(stateDir(), "session.json")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(filepath.Dir(c.SessionFile), "agrowork.log")
	}
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agrowork"
	}
	return filepath.Join(home, ".agrowork")
}
