package migration

import (
	"net/url"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/codec"
	"github.com/dmitrymomot/otpvault/pkg/wire"
)

// Scheme is the URI scheme of migration envelopes.
const Scheme = "otpauth-migration"

// Payload fields.
const (
	fieldOTPParameters protowire.Number = 1
	fieldVersion       protowire.Number = 2
	fieldBatchSize     protowire.Number = 3
	fieldBatchIndex    protowire.Number = 4
	fieldBatchID       protowire.Number = 5
)

// Account record fields.
const (
	fieldSecret       protowire.Number = 1
	fieldName         protowire.Number = 2
	fieldIssuerGoogle protowire.Number = 3
	fieldAlgorithm    protowire.Number = 4
	fieldIssuer       protowire.Number = 5
	fieldDigits       protowire.Number = 5
	fieldType         protowire.Number = 6
)

const (
	algorithmSHA1 = 1
	digitsSix     = 1
	typeTOTP      = 2
	formatVersion = 1
)

// Result is the outcome of walking a payload.
type Result struct {
	Accounts []account.Account
	// Records is the number of account records found, including dropped ones.
	Records int
	// Err is the reason the top-level walk stopped before the end of the
	// payload, or nil.
	Err error
}

// Decode extracts the accounts of a migration URI. Anything that cannot be
// decoded yields an empty slice.
func Decode(envelope string) []account.Account {
	data := dataParam(envelope)
	if data == "" {
		return []account.Account{}
	}

	payload, err := codec.DecodeBase64URL(data)
	if err != nil {
		return []account.Account{}
	}

	return DecodePayload(payload)
}

// DecodePayload extracts the accounts of an already decoded payload.
func DecodePayload(payload []byte) []account.Account {
	return Inspect(payload).Accounts
}

// Inspect walks payload and reports what it found.
func Inspect(payload []byte) Result {
	var (
		records [][]byte
		stopErr error
	)

	r := wire.NewReader(payload)
	for !r.Done() {
		num, typ, err := r.Next()
		if err != nil {
			stopErr = err
			break
		}

		if num == fieldOTPParameters && typ == protowire.BytesType {
			rec, err := r.Bytes()
			if err != nil {
				stopErr = err
				break
			}
			records = append(records, rec)
			continue
		}

		if err := r.Skip(typ); err != nil {
			stopErr = err
			break
		}
	}

	accounts := make([]account.Account, 0, len(records))
	for _, rec := range records {
		if acc, ok := decodeRecord(rec); ok {
			accounts = append(accounts, acc)
		}
	}

	return Result{Accounts: accounts, Records: len(records), Err: stopErr}
}

func decodeRecord(rec []byte) (account.Account, bool) {
	var (
		secret              []byte
		name, issuer, label string
	)

	r := wire.NewReader(rec)
	for !r.Done() {
		num, typ, err := r.Next()
		if err != nil {
			break
		}

		captured := typ == protowire.BytesType &&
			(num == fieldSecret || num == fieldName || num == fieldIssuer || num == fieldIssuerGoogle)
		if !captured {
			if err := r.Skip(typ); err != nil {
				break
			}
			continue
		}

		v, err := r.Bytes()
		if err != nil {
			break
		}

		switch num {
		case fieldSecret:
			secret = v
		case fieldName:
			name = text(v)
		case fieldIssuer:
			issuer = text(v)
		case fieldIssuerGoogle:
			label = text(v)
		}
	}

	if len(secret) == 0 {
		return account.Account{}, false
	}

	if issuer == "" {
		issuer = label
	}

	return account.Account{
		Name:   name,
		Secret: codec.EncodeBase32(secret),
		Note:   issuer,
	}, true
}

// text decodes UTF-8, replacing ill-formed sequences with U+FFFD.
func text(b []byte) string {
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}

func dataParam(envelope string) string {
	u, err := url.Parse(strings.TrimSpace(envelope))
	if err != nil {
		return ""
	}

	data := u.Query().Get("data")
	// A literal '+' in an unescaped query reads back as a space; base64
	// never contains spaces.
	return strings.ReplaceAll(data, " ", "+")
}
