package logger

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrInvalidLevel is returned for a LOG_LEVEL slog cannot parse.
var ErrInvalidLevel = errors.New("invalid log level")

// Config is the logging section of the process environment.
type Config struct {
	Env    string `env:"APP_ENV" envDefault:"development"`
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Options turns cfg into factory options. Explicit level and format settings
// override the environment defaults.
func (cfg Config) Options(service string) ([]Option, error) {
	opts := []Option{WithEnvironment(cfg.Env, service)}

	if cfg.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Join(ErrInvalidLevel, err)
		}
		opts = append(opts, WithLevel(level))
	}

	if cfg.Format != "" {
		opts = append(opts, WithFormat(Format(strings.ToLower(cfg.Format))))
	}

	return opts, nil
}
