package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/config"
	"github.com/dmitrymomot/otpvault/pkg/importer"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/scanner"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

const serviceName = "otpvault"

type app struct {
	out      io.Writer
	log      *slog.Logger
	backend  *backend
	keeper   *account.Keeper
	importer *importer.Importer
	params   totp.Params
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"list":   cmdList,
	"add":    cmdAdd,
	"new":    cmdNew,
	"import": cmdImport,
	"code":   cmdCode,
	"watch":  cmdWatch,
	"note":   cmdNote,
	"delete": cmdDelete,
	"export": cmdExport,
	"serve":  cmdServe,
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { usage(fs.Output()) }
	envFile := fs.String("env", "", "load variables from this .env file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		usage(out)
		return ErrUsage
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		usage(out)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if *envFile != "" {
		if err := config.LoadEnv(*envFile); err != nil {
			return err
		}
	}

	log, err := newLogger()
	if err != nil {
		return err
	}

	var (
		storeCfg storeConfig
		totpCfg  totp.Config
	)
	if err := errors.Join(config.Load(&storeCfg), config.Load(&totpCfg)); err != nil {
		return err
	}

	params := totpCfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	b, err := openStore(ctx, storeCfg.Driver, log)
	if err != nil {
		return err
	}
	defer b.close()

	keeper := account.NewKeeper(b.store, account.WithLogger(log))
	keeper.Load(ctx)

	a := &app{
		out:      out,
		log:      log,
		backend:  b,
		keeper:   keeper,
		importer: importer.New(keeper, scanner.New(), importer.WithLogger(log)),
		params:   params,
	}
	return cmd(ctx, a, rest)
}

func newLogger() (*slog.Logger, error) {
	var cfg logger.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	opts, err := cfg.Options(serviceName)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		logger.WithOutput(os.Stderr),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)

	log := logger.New(opts...)
	logger.SetAsDefault(log)
	return log, nil
}
