package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		Issuer string `yaml:"issuer"`
	} `yaml:"jwt"`

	Mail struct {
		Domain string `yaml:"domain"`
		APIKey string `yaml:"apiKey"`
		From   string `yaml:"from"`
	} `yaml:"mail"`
}

func Load() (Config, error) {
	cfg := Config{}
	cfg.HTTP.Port = "8080"
	cfg.JWT.Issuer = "eats-backend"

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	// Environment overrides (expected in deploy).
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		cfg.Mail.Domain = v
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		cfg.Mail.APIKey = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}

	if cfg.Database.URL == "" {
		return Config{}, errors.New("missing database url (set database.url in config or DATABASE_URL)")
	}
	if cfg.JWT.Secret == "" {
		return Config{}, errors.New("missing JWT secret (set jwt.secret in config or JWT_SECRET)")
	}

	// Mail is optional as a whole, but half-set credentials are a deploy
	// mistake worth failing loudly on.
	if cfg.MailConfigured() {
		if cfg.Mail.From == "" {
			return Config{}, errors.New("missing mail sender (set mail.from in config or MAIL_FROM)")
		}
	} else if cfg.Mail.Domain != "" || cfg.Mail.APIKey != "" {
		return Config{}, errors.New("mail.domain and mail.apiKey must be set together")
	}

	return cfg, nil
}

// MailConfigured reports whether Mailgun credentials are present. Without
// them the server runs with a no-op mailer.
func (c Config) MailConfigured() bool {
	return c.Mail.Domain != "" && c.Mail.APIKey != ""
}
