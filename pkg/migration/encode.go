package migration

import (
	"errors"
	"fmt"
	"net/url"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/codec"
)

// BatchOptions describes where a payload sits in a multi-QR export.
// The zero value is a single-code export.
type BatchOptions struct {
	Size  int   // number of QR codes in the export, defaults to 1
	Index int   // zero-based position of this code
	ID    int32 // shared by every code of one export
}

// Encode builds a migration URI carrying accounts. Every account is written
// as a SHA1, 6 digit TOTP entry, the only kind this application generates.
func Encode(accounts []account.Account, opts BatchOptions) (string, error) {
	payload, err := EncodePayload(accounts, opts)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("data", codec.EncodeBase64URL(payload))

	return fmt.Sprintf("%s://offline?%s", Scheme, q.Encode()), nil
}

// EncodePayload is Encode without the URI envelope.
func EncodePayload(accounts []account.Account, opts BatchOptions) ([]byte, error) {
	if len(accounts) == 0 {
		return nil, ErrEmptyBatch
	}
	if opts.Size <= 0 {
		opts.Size = 1
	}
	if opts.Index < 0 || opts.Index >= opts.Size {
		return nil, ErrInvalidBatchID
	}

	var b []byte
	for _, acc := range accounts {
		rec, err := encodeRecord(acc)
		if err != nil {
			return nil, errors.Join(ErrEncodeFailed, fmt.Errorf("account %q: %w", acc.Name, err))
		}
		b = protowire.AppendTag(b, fieldOTPParameters, protowire.BytesType)
		b = protowire.AppendBytes(b, rec)
	}

	b = appendVarintField(b, fieldVersion, formatVersion)
	b = appendVarintField(b, fieldBatchSize, uint64(opts.Size))
	b = appendVarintField(b, fieldBatchIndex, uint64(opts.Index))
	b = appendVarintField(b, fieldBatchID, uint64(int64(opts.ID)))

	return b, nil
}

func encodeRecord(acc account.Account) ([]byte, error) {
	secret, err := codec.DecodeBase32(acc.Secret)
	if err != nil {
		return nil, err
	}

	var b []byte
	b = protowire.AppendTag(b, fieldSecret, protowire.BytesType)
	b = protowire.AppendBytes(b, secret)
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, acc.Name)
	if acc.Note != "" {
		b = protowire.AppendTag(b, fieldIssuerGoogle, protowire.BytesType)
		b = protowire.AppendString(b, acc.Note)
	}
	b = appendVarintField(b, fieldAlgorithm, algorithmSHA1)
	b = appendVarintField(b, fieldDigits, digitsSix)
	b = appendVarintField(b, fieldType, typeTOTP)

	return b, nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
