// Package config loads the application configuration from a YAML file with
// RESTO_-prefixed environment overrides (RESTO_DATABASE_HOST, RESTO_AUTH_SECRET, ...).
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	RabbitMQ      RabbitMQConfig      `koanf:"rabbitmq"`
	Auth          AuthConfig          `koanf:"auth"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	SSLMode  string `koanf:"sslmode"`
	MaxConns int    `koanf:"max_conns"`
}

// RabbitMQConfig is optional: when Host is empty the event mirror is disabled
// and notifications go out over WebSocket only.
type RabbitMQConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	VHost    string `koanf:"vhost"`
}

type AuthConfig struct {
	Secret          string `koanf:"secret"`
	TokenTTLMinutes int    `koanf:"token_ttl_minutes"`
}

type NotificationsConfig struct {
	Workers   int `koanf:"workers"`
	QueueSize int `koanf:"queue_size"`
}

func defaults() Config {
	return Config{
		Server:   ServerConfig{Port: 8000},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable", MaxConns: 10},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/"},
		Auth:     AuthConfig{TokenTTLMinutes: 10080},
		Notifications: NotificationsConfig{
			Workers:   4,
			QueueSize: 256,
		},
	}
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// RESTO_DATABASE_HOST -> database.host
	envProvider := env.Provider("RESTO_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "RESTO_")), "_", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("failed to read env overrides: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Database == "" {
		return Config{}, fmt.Errorf("database config incomplete")
	}
	if cfg.Auth.Secret == "" {
		return Config{}, fmt.Errorf("auth.secret is required")
	}
	return cfg, nil
}

// MirrorEnabled reports whether the RabbitMQ event mirror should be dialed.
func (c Config) MirrorEnabled() bool {
	return c.RabbitMQ.Host != ""
}
