// Package config loads application configuration from a YAML file with
// secrets taken from the environment.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Insight InsightConfig `yaml:"insight"`

	// From environment, never from file.
	DatabaseURL string `yaml:"-"`
	JWTSecret   string `yaml:"-"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type AuthConfig struct {
	TokenExpiryHours int `yaml:"token_expiry_hours"`
}

type InsightConfig struct {
	Provider string `yaml:"provider"` // gemini | stub
	Model    string `yaml:"model"`
}

// Load reads the YAML file at path and applies environment overrides. A
// missing file yields defaults so local development works without one.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  ServerConfig{Port: "8080"},
		Auth:    AuthConfig{TokenExpiryHours: 24},
		Insight: InsightConfig{Provider: "stub"},
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	if cfg.Auth.TokenExpiryHours <= 0 {
		cfg.Auth.TokenExpiryHours = 24
	}

	return cfg, nil
}
