package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/otpvault/modules/vault"
	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/config"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/store/file"
	"github.com/dmitrymomot/otpvault/pkg/store/memory"
	mongostore "github.com/dmitrymomot/otpvault/pkg/store/mongo"
	"github.com/dmitrymomot/otpvault/pkg/store/postgres"
	redisstore "github.com/dmitrymomot/otpvault/pkg/store/redis"
	"github.com/dmitrymomot/otpvault/pkg/store/s3"
)

type storeConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"file"`
}

// backend is an opened account store with its health checks.
type backend struct {
	store  account.Store
	checks map[string]vault.Healthcheck
	// watch is set when the store can report external changes.
	watch func(ctx context.Context, onChange func()) error
	close func()
}

func loadCheck(s account.Store) vault.Healthcheck {
	return func(ctx context.Context) error {
		_, err := s.Load(ctx)
		return err
	}
}

func openStore(ctx context.Context, driver string, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Store(driver))

	switch driver {
	case "file":
		var cfg file.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		s := file.New(cfg.Path, file.WithLogger(log))
		return &backend{
			store:  s,
			checks: map[string]vault.Healthcheck{"store": loadCheck(s)},
			watch:  s.Watch,
			close:  func() {},
		}, nil

	case "memory":
		return &backend{store: memory.New(), close: func() {}}, nil

	case "redis":
		var cfg redisstore.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redisstore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  redisstore.New(client, cfg.Key),
			checks: map[string]vault.Healthcheck{"redis": redisstore.Healthcheck(client)},
			close: func() {
				if err := client.Close(); err != nil {
					log.Warn("failed to close redis client", logger.Error(err))
				}
			},
		}, nil

	case "postgres":
		var cfg postgres.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := postgres.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			store:  postgres.New(pool),
			checks: map[string]vault.Healthcheck{"postgres": postgres.Healthcheck(pool)},
			close:  pool.Close,
		}, nil

	case "mongo":
		var cfg mongostore.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := mongostore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  mongostore.New(client.Database(cfg.Database).Collection(cfg.Collection)),
			checks: map[string]vault.Healthcheck{"mongo": mongostore.Healthcheck(client)},
			close: func() {
				if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
					log.Warn("failed to disconnect mongo client", logger.Error(err))
				}
			},
		}, nil

	case "s3":
		var cfg s3.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		s, err := s3.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  s,
			checks: map[string]vault.Healthcheck{"s3": loadCheck(s)},
			close:  func() {},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
