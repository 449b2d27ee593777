package importer

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/migration"
	"github.com/dmitrymomot/otpvault/pkg/otpauth"
)

// Scanner reads the text of a QR code from an image.
type Scanner interface {
	Scan(ctx context.Context, r io.Reader) (string, bool)
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the importer logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Importer) {
		if l != nil {
			i.log = l
		}
	}
}

// Importer feeds decoded accounts into a Keeper.
type Importer struct {
	keeper  *account.Keeper
	scanner Scanner
	log     *slog.Logger
}

// New returns an Importer. scanner may be nil when only text is imported.
func New(keeper *account.Keeper, scanner Scanner, opts ...Option) *Importer {
	i := &Importer{
		keeper:  keeper,
		scanner: scanner,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Decode extracts the accounts carried by text without storing them.
func Decode(text string) ([]account.Account, error) {
	p := otpauth.Classify(text)

	var accounts []account.Account
	switch p.Kind {
	case otpauth.KindSingleAccount:
		if acc, ok := otpauth.Parse(p.Text); ok {
			accounts = []account.Account{acc}
		}
	case otpauth.KindMigrationBatch:
		accounts = migration.Decode(p.Text)
	}

	if len(accounts) == 0 {
		return nil, ErrUnsupportedContent
	}
	return accounts, nil
}

// FromText imports the accounts carried by text.
func (i *Importer) FromText(ctx context.Context, text string) (account.ImportResult, error) {
	accounts, err := Decode(text)
	if err != nil {
		i.log.DebugContext(ctx, "unsupported import content", logger.Kind(otpauth.Classify(text).Kind.String()))
		return account.ImportResult{}, err
	}
	return i.keeper.Import(ctx, accounts)
}

// FromImage scans r for a QR code and imports its content.
func (i *Importer) FromImage(ctx context.Context, r io.Reader) (account.ImportResult, error) {
	if i.scanner == nil {
		return account.ImportResult{}, ErrNoScanner
	}

	text, ok := i.scanner.Scan(ctx, r)
	if !ok {
		return account.ImportResult{}, ErrNoCode
	}
	return i.FromText(ctx, text)
}
