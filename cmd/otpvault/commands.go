package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrymomot/otpvault/modules/vault"
	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/config"
	"github.com/dmitrymomot/otpvault/pkg/httpserver"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/otpauth"
	"github.com/dmitrymomot/otpvault/pkg/qrcode"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

const defaultQRSize = 256

func needArgs(args []string, minArgs, maxArgs int, synopsis string) error {
	if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
		return fmt.Errorf("%w: %s", ErrUsage, synopsis)
	}
	return nil
}

func cmdList(_ context.Context, a *app, args []string) error {
	if err := needArgs(args, 0, 0, "list"); err != nil {
		return err
	}

	now := time.Now()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tNOTE\tCODE\tEXPIRES")
	for _, acc := range a.keeper.List() {
		c, err := totp.GenerateAt(acc.Secret, now, a.params)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\n", acc.Name, acc.Note, "invalid secret")
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%ds\n", acc.Name, acc.Note, c.Value, c.SecondsRemaining)
	}
	return tw.Flush()
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 2, 3, "add NAME SECRET [NOTE]"); err != nil {
		return err
	}

	var note string
	if len(args) == 3 {
		note = args[2]
	}
	acc, err := account.New(args[0], args[1], note)
	if err != nil {
		return err
	}
	if err := a.keeper.Add(ctx, acc); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "added %s\n", acc.Name)
	return nil
}

func cmdNew(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 1, 2, "new NAME [NOTE]"); err != nil {
		return err
	}

	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return err
	}

	var note string
	if len(args) == 2 {
		note = args[1]
	}
	acc, err := account.New(args[0], secret, note)
	if err != nil {
		return err
	}
	if err := a.keeper.Add(ctx, acc); err != nil {
		return err
	}

	uri, err := otpauth.BuildURI(acc, a.params)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "secret: %s\nuri:    %s\n", acc.Secret, uri)
	return nil
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true}

func cmdImport(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 1, 1, "import FILE|URI"); err != nil {
		return err
	}
	src := args[0]

	var (
		res account.ImportResult
		err error
	)
	switch {
	case otpauth.Classify(src).Kind != otpauth.KindUnrecognized:
		res, err = a.importer.FromText(ctx, src)
	case imageExts[strings.ToLower(filepath.Ext(src))]:
		res, err = importImage(ctx, a, src)
	default:
		var data []byte
		if data, err = os.ReadFile(src); err == nil {
			res, err = a.importer.FromText(ctx, strings.TrimSpace(string(data)))
		}
	}
	if err != nil {
		return err
	}

	for _, acc := range res.Added {
		fmt.Fprintf(a.out, "added    %s\n", acc.Name)
	}
	for _, acc := range res.Existing {
		fmt.Fprintf(a.out, "existing %s\n", acc.Name)
	}
	return nil
}

func importImage(ctx context.Context, a *app, path string) (account.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return account.ImportResult{}, err
	}
	defer f.Close()

	return a.importer.FromImage(ctx, f)
}

func cmdCode(_ context.Context, a *app, args []string) error {
	if err := needArgs(args, 1, 1, "code NAME"); err != nil {
		return err
	}

	acc, err := a.keeper.Find(args[0])
	if err != nil {
		return err
	}
	c, err := totp.GenerateAt(acc.Secret, time.Now(), a.params)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %ds\n", c.Value, c.SecondsRemaining)
	return nil
}

// cmdWatch prints the code once per second until ctx is done. Stores that
// report external changes are reloaded so edits made elsewhere show up.
func cmdWatch(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 1, 1, "watch NAME"); err != nil {
		return err
	}
	name := args[0]

	a.followStore(ctx)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		acc, err := a.keeper.Find(name)
		if err != nil {
			return err
		}
		c, err := totp.GenerateAt(acc.Secret, time.Now(), a.params)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "\r%s  %2ds ", c.Value, c.SecondsRemaining)

		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return nil
		case <-ticker.C:
		}
	}
}

// followStore reloads the keeper whenever the store changes outside this
// process, until ctx is done.
func (a *app) followStore(ctx context.Context) {
	if a.backend.watch == nil {
		return
	}
	go func() {
		if err := a.backend.watch(ctx, func() { a.keeper.Load(ctx) }); err != nil {
			a.log.WarnContext(ctx, "store watch stopped", logger.Error(err))
		}
	}()
}

func cmdNote(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 1, -1, "note NAME TEXT"); err != nil {
		return err
	}

	acc, err := a.keeper.Find(args[0])
	if err != nil {
		return err
	}
	return a.keeper.UpdateNote(ctx, acc.Name, acc.Secret, strings.Join(args[1:], " "))
}

func cmdDelete(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 1, 1, "delete NAME"); err != nil {
		return err
	}

	acc, err := a.keeper.Find(args[0])
	if err != nil {
		return err
	}
	if err := a.keeper.Delete(ctx, acc.Name, acc.Secret); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted %s\n", acc.Name)
	return nil
}

func cmdExport(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	out := fs.String("o", "otpvault-export.png", "output PNG file")
	size := fs.Int("size", defaultQRSize, "image size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs.Args(), 0, 1, "export [-o FILE] [-size PX] [NAME]"); err != nil {
		return err
	}

	if fs.NArg() == 1 {
		acc, err := a.keeper.Find(fs.Arg(0))
		if err != nil {
			return err
		}
		png, err := qrcode.Account(acc, a.params, *size)
		if err != nil {
			return err
		}
		return writeExport(a, *out, png)
	}

	images, err := qrcode.Migration(a.keeper.List(), *size)
	if err != nil {
		return err
	}
	if len(images) == 1 {
		return writeExport(a, *out, images[0])
	}

	ext := filepath.Ext(*out)
	base := strings.TrimSuffix(*out, ext)
	for i, png := range images {
		if err := writeExport(a, fmt.Sprintf("%s-%d%s", base, i+1, ext), png); err != nil {
			return err
		}
	}
	return nil
}

func writeExport(a *app, path string, png []byte) error {
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

func cmdServe(ctx context.Context, a *app, args []string) error {
	if err := needArgs(args, 0, 0, "serve"); err != nil {
		return err
	}

	var cfg httpserver.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	a.followStore(ctx)

	router := vault.Router(vault.RouterOptions{
		Keeper:       a.keeper,
		Importer:     a.importer,
		Params:       a.params,
		Logger:       a.log,
		Healthchecks: a.backend.checks,
	})

	return httpserver.New(cfg, router,
		httpserver.WithLogger(a.log),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
	).Run(ctx)
}
