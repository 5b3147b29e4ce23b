package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Configuration struct {
	ApiPort string `env:"PORT" envDefault:"5000"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`

	AppPassword string `env:"APP_PASSWORD"`
	SecretKey   string `env:"SECRET_KEY"`

	OpenAIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIProject string        `env:"OPENAI_PROJECT"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	OpenAITimeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`

	// AllowedOrigins comes from a single comma separated ALLOWED_ORIGIN.
	AllowedOrigins []string `env:"ALLOWED_ORIGIN" envSeparator:"," envDefault:"*"`

	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite:///app.db"`
	AutoMigrate bool   `env:"AUTOMIGRATE" envDefault:"true"`
	DbLog       bool   `env:"DB_LOG" envDefault:"false"`

	Session struct {
		TTL      time.Duration `env:"SESSION_TTL" envDefault:"744h"`
		Secure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
		SameSite string        `env:"SESSION_COOKIE_SAMESITE" envDefault:"lax"`
	}

	// GeneratedSecret is set when SECRET_KEY was empty and a random key was drawn.
	GeneratedSecret bool `env:"-"`
}

// Get loads a .env file when present and then reads the process environment.
func Get() (Configuration, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Configuration, error) {
	var c Configuration
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	c.AppPassword = strings.TrimSpace(c.AppPassword)
	if c.AppPassword == "" {
		return c, fmt.Errorf("APP_PASSWORD not set")
	}
	if strings.TrimSpace(c.OpenAIKey) == "" {
		return c, fmt.Errorf("OPENAI_API_KEY not set")
	}

	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.AllowedOrigins = origins

	if c.SecretKey == "" {
		key, err := randomKey(32)
		if err != nil {
			return c, fmt.Errorf("generate secret key: %w", err)
		}
		c.SecretKey = key
		c.GeneratedSecret = true
	}

	switch strings.ToLower(c.Session.SameSite) {
	case "lax", "strict", "none":
		c.Session.SameSite = strings.ToLower(c.Session.SameSite)
	default:
		return c, fmt.Errorf("SESSION_COOKIE_SAMESITE must be lax, strict or none (got %q)", c.Session.SameSite)
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 744 * time.Hour
	}

	return c, nil
}

// AllowsAnyOrigin reports whether the CORS allowlist is the wildcard.
func (c Configuration) AllowsAnyOrigin() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func randomKey(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
