package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the ticket tracker backend, e.g. http://localhost:8080.
	APIBaseURL string
	// StateDir holds client state (credential store). Defaults to
	// ~/.config/trackdesk.
	StateDir string

	HTTPTimeout time.Duration
	LogLevel    string
	// LogFile, when set, receives logs instead of stderr. The TUI sets
	// this implicitly so log lines do not tear the screen.
	LogFile string

	// Stub server settings (trackdesk serve).
	Serve struct {
		Host      string
		Port      string
		JWTSecret string
		TokenTTL  time.Duration
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		APIBaseURL:  getEnv("TRACKDESK_API_URL", "http://localhost:8080"),
		StateDir:    getEnv("TRACKDESK_STATE_DIR", ""),
		HTTPTimeout: getDuration("TRACKDESK_HTTP_TIMEOUT", 15*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("TRACKDESK_LOG_FILE", ""),
	}
	cfg.Serve.Host = getEnv("SERVE_HOST", "0.0.0.0")
	cfg.Serve.Port = firstEnv("SERVE_PORT", "APP_PORT", "8080")
	cfg.Serve.JWTSecret = getEnv("SERVE_JWT_SECRET", "trackdesk-dev-secret")
	cfg.Serve.TokenTTL = getDuration("SERVE_TOKEN_TTL", 8*time.Hour)

	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		cfg.StateDir = filepath.Join(base, "trackdesk")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("config: TRACKDESK_API_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: TRACKDESK_API_URL %q is not a valid URL", c.APIBaseURL)
	}
	if c.Serve.JWTSecret == "" {
		return errors.New("config: SERVE_JWT_SECRET is required")
	}
	return nil
}

func (c *Config) ServeAddr() string {
	return c.Serve.Host + ":" + c.Serve.Port
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
