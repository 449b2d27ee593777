package migration_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/codec"
	"github.com/dmitrymomot/otpvault/pkg/migration"
	"github.com/dmitrymomot/otpvault/pkg/wire"
)

// record builds one account record from field appenders.
func record(parts ...func([]byte) []byte) []byte {
	var b []byte
	for _, p := range parts {
		b = p(b)
	}
	return b
}

func bytesField(num protowire.Number, v string) func([]byte) []byte {
	return func(b []byte) []byte {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendString(b, v)
	}
}

func varintField(num protowire.Number, v uint64) func([]byte) []byte {
	return func(b []byte) []byte {
		b = protowire.AppendTag(b, num, protowire.VarintType)
		return protowire.AppendVarint(b, v)
	}
}

func fixed32Field(num protowire.Number, v uint32) func([]byte) []byte {
	return func(b []byte) []byte {
		b = protowire.AppendTag(b, num, protowire.Fixed32Type)
		return protowire.AppendFixed32(b, v)
	}
}

func fixed64Field(num protowire.Number, v uint64) func([]byte) []byte {
	return func(b []byte) []byte {
		b = protowire.AppendTag(b, num, protowire.Fixed64Type)
		return protowire.AppendFixed64(b, v)
	}
}

func payload(records ...[]byte) []byte {
	var b []byte
	for _, r := range records {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, r)
	}
	return b
}

func TestDecodePayloadLiteral(t *testing.T) {
	t.Parallel()

	raw, err := hex.DecodeString("0a120a054142434445120474657374" + "2a03497373")
	require.NoError(t, err)

	got := migration.DecodePayload(raw)
	require.Len(t, got, 1)
	assert.Equal(t, account.Account{
		Name:   "test",
		Secret: codec.EncodeBase32([]byte{0x41, 0x42, 0x43, 0x44, 0x45}),
		Note:   "Iss",
	}, got[0])
}

func TestDecodePayloadDropsRecordsWithoutSecret(t *testing.T) {
	t.Parallel()

	p := payload(
		record(bytesField(2, "no-secret"), bytesField(5, "Issuer")),
		record(bytesField(1, ""), bytesField(2, "empty-secret")),
		record(bytesField(1, "foo"), bytesField(2, "kept")),
	)

	res := migration.Inspect(p)
	assert.Equal(t, 3, res.Records)
	assert.NoError(t, res.Err)
	assert.Equal(t, []account.Account{{Name: "kept", Secret: "MZXW6"}}, res.Accounts)
}

func TestDecodePayloadSkipsUnknownFields(t *testing.T) {
	t.Parallel()

	p := payload(record(
		varintField(4, 1),
		bytesField(1, "foo"),
		bytesField(9, "ignored"),
		bytesField(2, "alice"),
		varintField(6, 2),
		varintField(7, 1234567),
		bytesField(5, "Example"),
	))
	p = protowire.AppendTag(p, 2, protowire.VarintType)
	p = protowire.AppendVarint(p, 1)
	p = protowire.AppendTag(p, 7, protowire.BytesType)
	p = protowire.AppendString(p, "unknown top-level blob")

	got := migration.DecodePayload(p)
	assert.Equal(t, []account.Account{{Name: "alice", Secret: "MZXW6", Note: "Example"}}, got)
}

func TestDecodePayloadUnsupportedWireTypeInRecord(t *testing.T) {
	t.Parallel()

	for _, field := range []func([]byte) []byte{fixed32Field(8, 0xdeadbeef), fixed64Field(8, 42)} {
		p := payload(
			record(bytesField(1, "foo"), field, bytesField(2, "never-read")),
			record(bytesField(2, "second"), bytesField(1, "bar"), bytesField(5, "Corp")),
		)

		got := migration.DecodePayload(p)
		require.Len(t, got, 2)
		assert.Equal(t, account.Account{Name: "", Secret: "MZXW6"}, got[0], "fields before the abort are kept")
		assert.Equal(t, account.Account{Name: "second", Secret: "MJQXE", Note: "Corp"}, got[1], "following records are unaffected")
	}
}

func TestDecodePayloadTopLevelAbortKeepsCollectedRecords(t *testing.T) {
	t.Parallel()

	p := payload(record(bytesField(1, "foo"), bytesField(2, "first")))
	p = fixed64Field(9, 1)(p)
	p = append(p, payload(record(bytesField(1, "bar"), bytesField(2, "after-abort")))...)

	res := migration.Inspect(p)
	assert.ErrorIs(t, res.Err, wire.ErrParseAbort)
	assert.Equal(t, []account.Account{{Name: "first", Secret: "MZXW6"}}, res.Accounts)
}

func TestDecodePayloadTruncation(t *testing.T) {
	t.Parallel()

	t.Run("truncated top-level record", func(t *testing.T) {
		t.Parallel()
		p := payload(record(bytesField(1, "foo"), bytesField(2, "ok")))
		p = append(p, 0x0a, 0x20, 0x0a)

		res := migration.Inspect(p)
		assert.ErrorIs(t, res.Err, wire.ErrTruncatedField)
		assert.Equal(t, []account.Account{{Name: "ok", Secret: "MZXW6"}}, res.Accounts)
	})

	t.Run("truncated field inside record", func(t *testing.T) {
		t.Parallel()
		rec := record(bytesField(1, "foo"))
		rec = append(rec, 0x12, 0x09, 'a')
		got := migration.DecodePayload(payload(rec))
		assert.Equal(t, []account.Account{{Secret: "MZXW6"}}, got)
	})

	t.Run("dangling varint tag", func(t *testing.T) {
		t.Parallel()
		res := migration.Inspect([]byte{0x80})
		assert.ErrorIs(t, res.Err, wire.ErrTruncatedVarint)
		assert.Empty(t, res.Accounts)
	})
}

func TestDecodePayloadOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	a := record(bytesField(1, "foo"), bytesField(2, "a"))
	b := record(bytesField(1, "bar"), bytesField(2, "b"))

	got := migration.DecodePayload(payload(b, a, b))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "b"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestDecodePayloadGoogleIssuerField(t *testing.T) {
	t.Parallel()

	p := payload(
		record(bytesField(1, "foo"), bytesField(2, "alice"), bytesField(3, "Google"), varintField(5, 1)),
		record(bytesField(1, "foo"), bytesField(2, "bob"), bytesField(3, "Label"), bytesField(5, "Preferred")),
	)

	got := migration.DecodePayload(p)
	require.Len(t, got, 2)
	assert.Equal(t, "Google", got[0].Note)
	assert.Equal(t, "Preferred", got[1].Note)
}

func TestDecodePayloadInvalidUTF8(t *testing.T) {
	t.Parallel()

	p := payload(record(bytesField(1, "foo"), bytesField(2, "bad\xffname"), bytesField(5, "\xc3")))

	got := migration.DecodePayload(p)
	require.Len(t, got, 1)
	assert.Equal(t, "bad�name", got[0].Name)
	assert.Equal(t, "�", got[0].Note)
}

func TestDecodeEnvelope(t *testing.T) {
	t.Parallel()

	raw, err := hex.DecodeString("0a120a0541424344451204746573742a03497373")
	require.NoError(t, err)
	data := codec.EncodeBase64URL(raw)

	tests := []struct {
		name     string
		envelope string
		want     int
	}{
		{name: "padded data", envelope: "otpauth-migration://offline?data=" + data, want: 1},
		{name: "unpadded data", envelope: "otpauth-migration://offline?data=" + trimPad(data), want: 1},
		{name: "escaped padding", envelope: "otpauth-migration://offline?data=" + trimPad(data) + "%3D%3D", want: 1},
		{name: "missing data", envelope: "otpauth-migration://offline", want: 0},
		{name: "empty data", envelope: "otpauth-migration://offline?data=", want: 0},
		{name: "not base64", envelope: "otpauth-migration://offline?data=%21%21%21", want: 0},
		{name: "unparsable uri", envelope: "otpauth-migration://offline?data=%zz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := migration.Decode(tt.envelope)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDecodeStandardAlphabetWithLiteralPlus(t *testing.T) {
	t.Parallel()

	// Encodes to "CgsKA/j4+BIEcGx1cw==" in the standard alphabet.
	p := payload(record(bytesField(1, "\xf8\xf8\xf8"), bytesField(2, "plus")))
	data := toStd(codec.EncodeBase64URL(p))
	require.Contains(t, data, "+")

	got := migration.Decode("otpauth-migration://offline?data=" + data)
	require.Len(t, got, 1)
	assert.Equal(t, codec.EncodeBase32([]byte("\xf8\xf8\xf8")), got[0].Secret)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	accounts := []account.Account{
		{Name: "alice@example.com", Secret: "JBSWY3DPEHPK3PXP", Note: "Example"},
		{Name: "bob", Secret: "MZXW6"},
		{Name: "Zoë", Secret: "IFBEGRCF", Note: "Ünïcode"},
	}

	uri, err := migration.Encode(accounts, migration.BatchOptions{ID: -7})
	require.NoError(t, err)
	assert.Contains(t, uri, "otpauth-migration://offline?data=")
	assert.Equal(t, accounts, migration.Decode(uri))
}

func TestEncodePayloadRecordLayout(t *testing.T) {
	t.Parallel()

	p, err := migration.EncodePayload([]account.Account{
		{Name: "alice", Secret: "MZXW6", Note: "Example"},
		{Name: "bob", Secret: "MZXW6"},
	}, migration.BatchOptions{})
	require.NoError(t, err)

	want := payload(
		record(bytesField(1, "foo"), bytesField(2, "alice"), bytesField(3, "Example"),
			varintField(4, 1), varintField(5, 1), varintField(6, 2)),
		record(bytesField(1, "foo"), bytesField(2, "bob"),
			varintField(4, 1), varintField(5, 1), varintField(6, 2)),
	)
	want = varintField(2, 1)(want)
	want = varintField(3, 1)(want)
	want = varintField(4, 0)(want)
	want = varintField(5, 0)(want)

	assert.Equal(t, want, p)
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	_, err := migration.Encode(nil, migration.BatchOptions{})
	assert.ErrorIs(t, err, migration.ErrEmptyBatch)

	_, err = migration.Encode([]account.Account{{Name: "x", Secret: "!!"}}, migration.BatchOptions{})
	assert.ErrorIs(t, err, migration.ErrEncodeFailed)
	assert.ErrorIs(t, err, codec.ErrInvalidSecretEncoding)

	_, err = migration.Encode([]account.Account{{Name: "x", Secret: "MZXW6"}}, migration.BatchOptions{Size: 2, Index: 2})
	assert.ErrorIs(t, err, migration.ErrInvalidBatchID)
}

func trimPad(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}

func toStd(s string) string {
	out := []byte(s)
	for i, c := range out {
		switch c {
		case '-':
			out[i] = '+'
		case '_':
			out[i] = '/'
		}
	}
	return string(out)
}
