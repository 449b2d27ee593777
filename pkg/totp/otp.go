package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math"
	"strings"
	"time"

	"github.com/dmitrymomot/otpvault/pkg/codec"
)

const (
	DefaultDigits    = 6    // Standard 6-digit TOTP codes
	DefaultPeriod    = 30   // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = SHA1 // HMAC-SHA1 algorithm (RFC 6238 standard)

	maxDigits = 10 // a 31-bit truncated value has at most 10 decimal digits
)

// Algorithm names the HMAC hash used to derive codes.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

func (a Algorithm) hash() (func() hash.Hash, bool) {
	switch Algorithm(strings.ToUpper(string(a))) {
	case SHA1:
		return sha1.New, true
	case SHA256:
		return sha256.New, true
	case SHA512:
		return sha512.New, true
	}
	return nil, false
}

// Params controls code generation. Zero fields fall back to the defaults.
type Params struct {
	Period    int       // seconds per time step
	Digits    int       // length of the code
	Algorithm Algorithm // HMAC hash
}

// GetDefaults returns a copy with RFC 6238 standard defaults applied to zero-valued fields
func (p Params) GetDefaults() Params {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// Validate checks the parameters after defaults are applied.
func (p Params) Validate() error {
	p = p.GetDefaults()
	if p.Period <= 0 {
		return ErrInvalidPeriod
	}
	if p.Digits < 1 || p.Digits > maxDigits {
		return ErrInvalidDigits
	}
	if _, ok := p.Algorithm.hash(); !ok {
		return ErrInvalidAlgorithm
	}
	return nil
}

// Code is a generated one-time password.
type Code struct {
	Value            string // zero-padded to the configured digit count
	SecondsRemaining int    // seconds until the next step, in [1, Period]
	Period           int
}

func (c Code) String() string { return c.Value }

// GenerateSecretKey generates a new Base32-encoded secret key for TOTP.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, 20) // 160-bit secret (RFC 4226 recommendation for cryptographic strength)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return codec.EncodeBase32(secret), nil
}

// GenerateHOTP implements RFC 4226 HMAC-based One-Time Password algorithm.
// An unknown algorithm falls back to SHA1; digits is not range checked.
func GenerateHOTP(key []byte, counter uint64, digits int, alg Algorithm) int {
	newHash, ok := alg.hash()
	if !ok {
		newHash = sha1.New
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(newHash, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226): use last 4 bits as offset into hash
	offset := sum[len(sum)-1] & 0x0f
	code := int(binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff)

	return code % int(math.Pow10(digits))
}

// Generate computes the code for key at unix seconds.
func Generate(key []byte, unix int64, p Params) (Code, error) {
	if len(key) == 0 {
		return Code{}, ErrInvalidSecret
	}
	if unix < 0 {
		return Code{}, ErrInvalidTime
	}
	if err := p.Validate(); err != nil {
		return Code{}, err
	}
	p = p.GetDefaults()

	period := int64(p.Period)
	value := GenerateHOTP(key, uint64(unix/period), p.Digits, p.Algorithm)

	return Code{
		Value:            fmt.Sprintf("%0*d", p.Digits, value),
		SecondsRemaining: int(period - unix%period),
		Period:           p.Period,
	}, nil
}

// GenerateAt decodes a Base32 secret and computes the code for the step
// containing t.
func GenerateAt(secret string, t time.Time, p Params) (Code, error) {
	key, err := codec.DecodeBase32(secret)
	if err != nil {
		return Code{}, err
	}
	return Generate(key, t.Unix(), p)
}

// Validate reports whether code matches secret within skew steps around t.
func Validate(secret, code string, t time.Time, skew uint, p Params) (bool, error) {
	key, err := codec.DecodeBase32(secret)
	if err != nil {
		return false, err
	}
	if err := p.Validate(); err != nil {
		return false, err
	}
	p = p.GetDefaults()

	code = strings.TrimSpace(code)
	if len(code) != p.Digits || strings.Trim(code, "0123456789") != "" {
		return false, ErrInvalidOTP
	}

	unix := t.Unix()
	if unix < 0 {
		return false, ErrInvalidTime
	}

	period := int64(p.Period)
	for i := -int64(skew); i <= int64(skew); i++ {
		at := unix + i*period
		if at < 0 {
			continue
		}
		c, err := Generate(key, at, p)
		if err != nil {
			return false, err
		}
		if hmac.Equal([]byte(c.Value), []byte(code)) {
			return true, nil
		}
	}

	return false, nil
}
