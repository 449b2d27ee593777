package totp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	pqtotp "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/codec"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

var rfcSecret = []byte("12345678901234567890")

func TestGenerateHOTP_RFC4226(t *testing.T) {
	t.Parallel()

	want := []int{755224, 287082, 359152, 969429, 338314, 254676, 287922, 162583, 399871, 520489}
	for counter, code := range want {
		assert.Equal(t, code, totp.GenerateHOTP(rfcSecret, uint64(counter), 6, totp.SHA1), "counter %d", counter)
	}
}

func TestGenerate_RFC6238(t *testing.T) {
	t.Parallel()

	keys := map[totp.Algorithm][]byte{
		totp.SHA1:   rfcSecret,
		totp.SHA256: []byte("12345678901234567890123456789012"),
		totp.SHA512: []byte(strings.Repeat("1234567890", 6) + "1234"),
	}

	tests := []struct {
		unix int64
		want map[totp.Algorithm]string
	}{
		{59, map[totp.Algorithm]string{totp.SHA1: "94287082", totp.SHA256: "46119246", totp.SHA512: "90693936"}},
		{1111111109, map[totp.Algorithm]string{totp.SHA1: "07081804", totp.SHA256: "68084774", totp.SHA512: "25091201"}},
		{1111111111, map[totp.Algorithm]string{totp.SHA1: "14050471", totp.SHA256: "67062674", totp.SHA512: "99943326"}},
		{1234567890, map[totp.Algorithm]string{totp.SHA1: "89005924", totp.SHA256: "91819424", totp.SHA512: "93441116"}},
		{2000000000, map[totp.Algorithm]string{totp.SHA1: "69279037", totp.SHA256: "90698825", totp.SHA512: "38618901"}},
		{20000000000, map[totp.Algorithm]string{totp.SHA1: "65353130", totp.SHA256: "77737706", totp.SHA512: "47863826"}},
	}

	for _, tt := range tests {
		for alg, want := range tt.want {
			code, err := totp.Generate(keys[alg], tt.unix, totp.Params{Digits: 8, Algorithm: alg})
			require.NoError(t, err)
			assert.Equal(t, want, code.Value, "%s at %d", alg, tt.unix)
		}
	}
}

func TestGenerate_Countdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unix int64
		want int
	}{
		{0, 30},
		{1, 29},
		{29, 1},
		{30, 30},
		{59, 1},
		{1111111109, 1},
	}

	for _, tt := range tests {
		code, err := totp.Generate(rfcSecret, tt.unix, totp.Params{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, code.SecondsRemaining, "unix %d", tt.unix)
		assert.Equal(t, 30, code.Period)
	}
}

func TestGenerate_StableWithinStep(t *testing.T) {
	t.Parallel()

	first, err := totp.Generate(rfcSecret, 60, totp.Params{})
	require.NoError(t, err)

	for unix := int64(61); unix < 90; unix++ {
		code, err := totp.Generate(rfcSecret, unix, totp.Params{})
		require.NoError(t, err)
		assert.Equal(t, first.Value, code.Value)
	}

	next, err := totp.Generate(rfcSecret, 90, totp.Params{})
	require.NoError(t, err)
	assert.Equal(t, 30, next.SecondsRemaining)
}

func TestGenerate_ZeroPadding(t *testing.T) {
	t.Parallel()

	// Counter 1111111109/30 yields 07081804 at 8 digits, so 081804 at 6.
	code, err := totp.Generate(rfcSecret, 1111111109, totp.Params{})
	require.NoError(t, err)
	assert.Equal(t, "081804", code.Value)

	for digits := 1; digits <= 10; digits++ {
		code, err := totp.Generate(rfcSecret, 1111111109, totp.Params{Digits: digits})
		require.NoError(t, err)
		assert.Len(t, code.Value, digits)
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		key    []byte
		unix   int64
		params totp.Params
		err    error
	}{
		{"empty key", nil, 0, totp.Params{}, totp.ErrInvalidSecret},
		{"negative time", rfcSecret, -1, totp.Params{}, totp.ErrInvalidTime},
		{"negative period", rfcSecret, 0, totp.Params{Period: -30}, totp.ErrInvalidPeriod},
		{"too many digits", rfcSecret, 0, totp.Params{Digits: 11}, totp.ErrInvalidDigits},
		{"negative digits", rfcSecret, 0, totp.Params{Digits: -1}, totp.ErrInvalidDigits},
		{"unknown algorithm", rfcSecret, 0, totp.Params{Algorithm: "MD5"}, totp.ErrInvalidAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := totp.Generate(tt.key, tt.unix, tt.params)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGenerateAt(t *testing.T) {
	t.Parallel()

	secret := codec.EncodeBase32(rfcSecret)
	at := time.Unix(59, 0)

	code, err := totp.GenerateAt(strings.ToLower(secret), at, totp.Params{Digits: 8})
	require.NoError(t, err)
	assert.Equal(t, "94287082", code.Value)

	_, err = totp.GenerateAt("not base32!", at, totp.Params{})
	assert.ErrorIs(t, err, codec.ErrInvalidSecretEncoding)

	_, err = totp.GenerateAt("", at, totp.Params{})
	assert.ErrorIs(t, err, codec.ErrInvalidSecretEncoding)
}

func TestGenerateAt_MatchesReferenceImplementation(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	algorithms := map[totp.Algorithm]otp.Algorithm{
		totp.SHA1:   otp.AlgorithmSHA1,
		totp.SHA256: otp.AlgorithmSHA256,
		totp.SHA512: otp.AlgorithmSHA512,
	}

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for alg, pqAlg := range algorithms {
		for i := range 20 {
			at := start.Add(time.Duration(i) * 17 * time.Second)

			want, err := pqtotp.GenerateCodeCustom(secret, at, pqtotp.ValidateOpts{
				Period:    30,
				Digits:    otp.DigitsSix,
				Algorithm: pqAlg,
			})
			require.NoError(t, err)

			got, err := totp.GenerateAt(secret, at, totp.Params{Algorithm: alg})
			require.NoError(t, err)
			assert.Equal(t, want, got.Value, "%s at %s", alg, at)
		}
	}
}

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.Len(t, secret, 32)
	assert.True(t, codec.IsBase32(secret))

	other, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	secret := codec.EncodeBase32(rfcSecret)
	now := time.Unix(1111111109, 0)

	current, err := totp.GenerateAt(secret, now, totp.Params{})
	require.NoError(t, err)
	previous, err := totp.GenerateAt(secret, now.Add(-30*time.Second), totp.Params{})
	require.NoError(t, err)
	stale, err := totp.GenerateAt(secret, now.Add(-90*time.Second), totp.Params{})
	require.NoError(t, err)

	tests := []struct {
		name string
		code string
		skew uint
		want bool
	}{
		{"current window", current.Value, 0, true},
		{"previous window without skew", previous.Value, 0, previous.Value == current.Value},
		{"previous window with skew", previous.Value, 1, true},
		{"stale code", stale.Value, 1, stale.Value == current.Value || stale.Value == previous.Value},
		{"surrounding whitespace", " " + current.Value + "\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := totp.Validate(secret, tt.code, now, tt.skew, totp.Params{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	secret := codec.EncodeBase32(rfcSecret)
	now := time.Unix(1111111109, 0)

	_, err := totp.Validate(secret, "12345", now, 1, totp.Params{})
	assert.ErrorIs(t, err, totp.ErrInvalidOTP)

	_, err = totp.Validate(secret, "12a456", now, 1, totp.Params{})
	assert.ErrorIs(t, err, totp.ErrInvalidOTP)

	_, err = totp.Validate("@@@", "123456", now, 1, totp.Params{})
	assert.ErrorIs(t, err, codec.ErrInvalidSecretEncoding)

	_, err = totp.Validate(secret, "123456", now, 1, totp.Params{Digits: 12})
	assert.ErrorIs(t, err, totp.ErrInvalidDigits)
}

func TestConfigParams(t *testing.T) {
	t.Parallel()

	p := totp.Config{Period: 60, Digits: 8, Algorithm: "sha256"}.Params()
	assert.NoError(t, p.Validate())
	assert.Equal(t, 60, p.Period)
	assert.Equal(t, 8, p.Digits)
}
