package otpauth

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/codec"
	"github.com/dmitrymomot/otpvault/pkg/migration"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// Prefix starts every single-account TOTP URI.
const Prefix = "otpauth://totp/"

// Kind is the category of a decoded QR payload.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindSingleAccount
	KindMigrationBatch
)

func (k Kind) String() string {
	switch k {
	case KindSingleAccount:
		return "single_account"
	case KindMigrationBatch:
		return "migration_batch"
	default:
		return "unrecognized"
	}
}

// Payload is decoded QR text tagged with its kind.
type Payload struct {
	Kind Kind
	Text string
}

// Classify tags text by its URI prefix.
func Classify(text string) Payload {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, Prefix):
		return Payload{Kind: KindSingleAccount, Text: text}
	case strings.HasPrefix(text, migration.Scheme+"://"):
		return Payload{Kind: KindMigrationBatch, Text: text}
	default:
		return Payload{Kind: KindUnrecognized, Text: text}
	}
}

// Parse reads a single-account TOTP URI. It reports false when text is not
// such a URI or carries no usable secret.
func Parse(text string) (account.Account, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, Prefix) {
		return account.Account{}, false
	}

	label, rawQuery, found := strings.Cut(strings.TrimPrefix(text, Prefix), "?")
	if !found {
		return account.Account{}, false
	}

	if unescaped, err := url.PathUnescape(label); err == nil {
		label = unescaped
	}

	name := label
	if _, after, ok := strings.Cut(label, ":"); ok {
		name = after
	}

	// ParseQuery keeps every pair it could decode even when it fails.
	query, _ := url.ParseQuery(rawQuery)

	secret, err := codec.NormalizeBase32(query.Get("secret"))
	if err != nil {
		return account.Account{}, false
	}

	return account.Account{
		Name:   name,
		Secret: secret,
		Note:   query.Get("issuer"),
	}, true
}

// BuildURI creates a TOTP URI for acc following the Key Uri Format:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func BuildURI(acc account.Account, p totp.Params) (string, error) {
	if acc.Name == "" {
		return "", ErrMissingAccountName
	}
	if acc.Secret == "" {
		return "", ErrMissingSecret
	}

	secret, err := codec.NormalizeBase32(acc.Secret)
	if err != nil {
		return "", err
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	p = p.GetDefaults()

	label := url.PathEscape(acc.Name)
	if acc.Note != "" {
		label = fmt.Sprintf("%s:%s", url.PathEscape(acc.Note), label)
	}

	query := url.Values{}
	query.Set("secret", secret)
	if acc.Note != "" {
		query.Set("issuer", acc.Note)
	}
	query.Set("algorithm", strings.ToUpper(string(p.Algorithm)))
	query.Set("digits", strconv.Itoa(p.Digits))
	query.Set("period", strconv.Itoa(p.Period))

	return fmt.Sprintf("%s%s?%s", Prefix, label, query.Encode()), nil
}
