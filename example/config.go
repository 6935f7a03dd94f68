package main

import (
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// envPrefix scopes the environment variables read by the example app, e.g.
// PETSTORE_SERVER_PORT=9090. A .env file is loaded automatically when
// present.
const envPrefix = "PETSTORE_"

// Config holds the example server's runtime settings. Defaults are set on
// the struct before env overrides are applied.
type Config struct {
	Env    string       `koanf:"env" validate:"required,oneof=development production test"`
	Server ServerConfig `koanf:"server" validate:"required"`
}

// ServerConfig groups the HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"readtimeout" validate:"required,gte=1"`
	WriteTimeout int    `koanf:"writetimeout" validate:"required,gte=1"`
	IdleTimeout  int    `koanf:"idletimeout" validate:"required,gte=1"`
}

// loadConfig reads prefixed env vars into the Config, mapping
// PETSTORE_SERVER_PORT to server.port, and validates the result so the app
// fails fast on bad settings.
func loadConfig() (*Config, error) {
	cfg := &Config{
		Env: "development",
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15,
			WriteTimeout: 15,
			IdleTimeout:  60,
		},
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	return cfg, nil
}
