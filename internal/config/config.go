package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/m-mizutani/goerr/v2"
)

// StoreConfig points at the spreadsheet-backed record store.
type StoreConfig struct {
	URL             string        `yaml:"url" env:"GS_WEBAPP_URL"`
	Key             string        `yaml:"key" env:"GS_WEBAPP_KEY" masq:"secret"`
	Timeout         time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"15s"`
	SupportsDelete  bool          `yaml:"supports_delete" env:"STORE_SUPPORTS_DELETE" env-default:"true"`
	DiagnosticLimit int           `yaml:"diagnostic_limit" env:"DIAGNOSTIC_LIMIT" env-default:"400"`
}

// AdminConfig guards calendar mutations.
type AdminConfig struct {
	// PIN is either the plain admin PIN or a bcrypt hash of it.
	PIN           string        `yaml:"pin" env:"CALENDAR_ADMIN_PIN" masq:"secret"`
	SessionSecret string        `yaml:"session_secret" env:"ADMIN_SESSION_SECRET" masq:"secret"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"ADMIN_SESSION_TTL" env-default:"12h"`
}

type HTTPConfig struct {
	Address       string `yaml:"address" env:"HTTP_ADDR" env-default:":8008"`
	AllowedOrigin string `yaml:"allowed_origin" env:"ALLOWED_ORIGIN" env-default:"*"`
}

// Config is built once at process start and passed by value to every component.
type Config struct {
	LogLevel string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	HTTP     HTTPConfig  `yaml:"http"`
	Store    StoreConfig `yaml:"store"`
	Admin    AdminConfig `yaml:"admin"`
}

// Load reads the YAML file at path when it exists and applies environment overrides.
// An empty path or a missing file falls back to the environment alone.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, goerr.Wrap(err, "cannot read env")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, goerr.Wrap(err, "cannot read config", goerr.V("path", path))
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, goerr.Wrap(err, "cannot read env")
		}
	}

	return cfg, nil
}

// StoreConfigured reports whether both the store URL and its secret are present.
func (c Config) StoreConfigured() bool {
	return strings.TrimSpace(c.Store.URL) != "" && strings.TrimSpace(c.Store.Key) != ""
}

// Warnings lists operator-actionable gaps in the configuration.
func (c Config) Warnings() []string {
	var out []string
	if strings.TrimSpace(c.Store.URL) == "" {
		out = append(out, "GS_WEBAPP_URL is not set; proxy endpoints will answer 500 missing_env")
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		out = append(out, "GS_WEBAPP_KEY is not set; proxy endpoints will answer 500 missing_env")
	}
	if strings.TrimSpace(c.Admin.PIN) == "" {
		out = append(out, "CALENDAR_ADMIN_PIN is not set; calendar mutations are disabled")
	}
	return out
}
