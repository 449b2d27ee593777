package codec

import (
	"encoding/base32"
	"encoding/base64"
	"errors"
	"strings"
)

var rawBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeBase32 decodes a human-entered Base32 secret.
// Whitespace around and inside the text is dropped, letters are upper-cased
// and padding is rebuilt, so "jbsw y3dp ehpk 3pxp" and "JBSWY3DPEHPK3PXP"
// decode to the same bytes.
func DecodeBase32(text string) ([]byte, error) {
	clean := cleanBase32(text)
	if clean == "" {
		return nil, ErrInvalidSecretEncoding
	}

	for i := 0; i < len(clean); i++ {
		if !isBase32Char(clean[i]) {
			return nil, ErrInvalidSecretEncoding
		}
	}

	padded := clean + strings.Repeat("=", -len(clean)&7)
	key, err := base32.StdEncoding.DecodeString(padded)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecretEncoding, err)
	}
	if len(key) == 0 {
		return nil, ErrInvalidSecretEncoding
	}

	return key, nil
}

// EncodeBase32 returns the canonical form of a secret: upper-case Base32 with
// the padding stripped.
func EncodeBase32(b []byte) string {
	return rawBase32.EncodeToString(b)
}

// NormalizeBase32 validates a Base32 secret and returns its canonical form.
func NormalizeBase32(text string) (string, error) {
	key, err := DecodeBase32(text)
	if err != nil {
		return "", err
	}
	return EncodeBase32(key), nil
}

// IsBase32 reports whether text decodes as a non-empty Base32 secret.
func IsBase32(text string) bool {
	_, err := DecodeBase32(text)
	return err == nil
}

// DecodeBase64URL decodes the payload of a migration envelope.
// Padding is normalized before decoding: surplus '=' is dropped and the
// missing ones are appended.
func DecodeBase64URL(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidEnvelope
	}

	text = strings.NewReplacer("+", "-", "/", "_").Replace(text)
	text = strings.TrimRight(text, "=")
	if text == "" {
		return nil, ErrInvalidEnvelope
	}
	text += strings.Repeat("=", -len(text)&3)
	if len(text)%4 != 0 {
		return nil, ErrInvalidEnvelope
	}

	payload, err := base64.URLEncoding.DecodeString(text)
	if err != nil {
		return nil, errors.Join(ErrInvalidEnvelope, err)
	}

	return payload, nil
}

// EncodeBase64URL is the inverse of DecodeBase64URL. The output keeps its
// padding, matching what authenticator apps put into export QR codes.
func EncodeBase64URL(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

func cleanBase32(text string) string {
	text = strings.ToUpper(strings.Join(strings.Fields(text), ""))
	return strings.TrimRight(text, "=")
}

func isBase32Char(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7')
}
