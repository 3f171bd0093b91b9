package config

import (
	"errors"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/cse340/motors/pkg/db"
	"github.com/cse340/motors/pkg/logger"
	"github.com/cse340/motors/pkg/redis"
)

// DefaultSessionSecret is used when SESSION_SECRET is unset. Never deploy with it.
const DefaultSessionSecret = "dev-secret"

var (
	ErrParse              = errors.New("config: failed to parse environment")
	ErrLoadDotenv         = errors.New("config: failed to load .env file")
	ErrInsecureProduction = errors.New("config: SESSION_SECRET must be set in production")
)

// Config is resolved once at startup and passed down explicitly.
type Config struct {
	Env       string `env:"NODE_ENV" envDefault:"development"`
	Host      string `env:"HOST"`
	Port      string `env:"PORT"`
	PublicDir string `env:"PUBLIC_DIR" envDefault:"public"`

	DB      db.Config
	Session Session
	Redis   redis.Config
	Log     logger.Config

	AccessTokenSecret string        `env:"ACCESS_TOKEN_SECRET"`
	NavCacheTTL       time.Duration `env:"NAV_CACHE_TTL" envDefault:"5m"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Session holds session cookie and storage settings.
type Session struct {
	Secret        string        `env:"SESSION_SECRET" envDefault:"dev-secret"`
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"sessionId"`
	Store         string        `env:"SESSION_STORE" envDefault:"postgres"`
	Table         string        `env:"SESSION_TABLE" envDefault:"session"`
	MaxAge        time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`
	PruneInterval time.Duration `env:"SESSION_PRUNE_INTERVAL" envDefault:"15m"`
	// Secure is nil when unset, in which case it follows production mode.
	Secure *bool `env:"SESSION_COOKIE_SECURE"`
}

// Load reads .env files (missing files are ignored) and parses the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadDotenv, err)
		}
	}
	return Parse(env.Options{})
}

// Parse builds a Config from the process environment, or from opts.Environment when set.
func Parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	cfg.DB.QueryLogging = !cfg.IsProduction()

	if cfg.IsProduction() && cfg.Session.Secret == DefaultSessionSecret {
		return Config{}, ErrInsecureProduction
	}
	return cfg, nil
}

// IsProduction reports whether NODE_ENV is "production".
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// ListenAddr resolves host and port. HOST defaults to 0.0.0.0 when PORT is
// set explicitly and to localhost otherwise; PORT defaults to 3000.
func (c Config) ListenAddr() string {
	host, port := c.Host, c.Port
	if host == "" {
		host = "localhost"
		if port != "" {
			host = "0.0.0.0"
		}
	}
	if port == "" {
		port = "3000"
	}
	return net.JoinHostPort(host, port)
}

// Database returns the connection provider configuration.
func (c Config) Database() db.Config {
	return c.DB
}

// CookieSecure reports whether the session cookie carries the Secure flag.
func (c Config) CookieSecure() bool {
	if c.Session.Secure != nil {
		return *c.Session.Secure
	}
	return c.IsProduction()
}
