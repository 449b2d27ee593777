package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/codec"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		accName    string
		secret     string
		note       string
		want       account.Account
		wantErr    bool
		badEncoded bool
	}{
		{
			name:    "normalizes secret and trims input",
			accName: "  alice@example.com ",
			secret:  "jbsw y3dp ehpk 3pxp",
			note:    " Example ",
			want:    account.Account{Name: "alice@example.com", Secret: "JBSWY3DPEHPK3PXP", Note: "Example"},
		},
		{
			name:    "empty note allowed",
			accName: "bob",
			secret:  "MZXW6===",
			want:    account.Account{Name: "bob", Secret: "MZXW6"},
		},
		{name: "missing name", accName: "   ", secret: "MZXW6", wantErr: true},
		{name: "name too long", accName: strings.Repeat("x", 257), secret: "MZXW6", wantErr: true},
		{name: "missing secret", accName: "bob", secret: "", wantErr: true, badEncoded: false},
		{name: "bad secret characters", accName: "bob", secret: "hello-world!", wantErr: true, badEncoded: true},
		{name: "bad secret digits", accName: "bob", secret: "ABC18", wantErr: true, badEncoded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := account.New(tt.accName, tt.secret, tt.note)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, account.ErrInvalidAccount)
				if tt.badEncoded {
					assert.ErrorIs(t, err, codec.ErrInvalidSecretEncoding)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountSame(t *testing.T) {
	t.Parallel()

	a := account.Account{Name: "alice", Secret: "MZXW6", Note: "one"}
	assert.True(t, a.Same(account.Account{Name: "alice", Secret: "MZXW6", Note: "two"}))
	assert.False(t, a.Same(account.Account{Name: "alice", Secret: "MZXW7"}))
	assert.False(t, a.Same(account.Account{Name: "bob", Secret: "MZXW6"}))
}

func TestAccountKey(t *testing.T) {
	t.Parallel()

	key, err := account.Account{Secret: "MZXW6"}.Key()
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), key)

	_, err = account.Account{Secret: "!!"}.Key()
	assert.ErrorIs(t, err, codec.ErrInvalidSecretEncoding)
}
