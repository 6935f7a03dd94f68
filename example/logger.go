package main

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the application logger: human-readable console output in
// development, JSON to stderr otherwise.
func newLogger(cfg *Config) zerolog.Logger {
	if cfg.Env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", "petstore").
		Str("env", cfg.Env).
		Logger()
}
