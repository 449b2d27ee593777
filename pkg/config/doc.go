// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for parsing struct fields tagged with
// `env` and `envDefault`, and github.com/joho/godotenv for .env files. Each
// configuration type is parsed once per process and cached, so components can
// call Load for their own Config struct wherever they are constructed.
//
// # Usage
//
//	type Config struct {
//	    Path string `env:"STORE_FILE_PATH" envDefault:"totp_accounts.json"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// LoadEnv reads additional .env files and clears the cache. Reset clears the
// cache without touching the environment, which tests use after t.Setenv.
//
// # Error Handling
//
// Parsing failures wrap ErrParsingConfig, unreadable .env files wrap
// ErrLoadingEnvFile, and a nil target returns ErrNilPointer.
package config
