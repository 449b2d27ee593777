package qrcode

import (
	"errors"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/migration"
	"github.com/dmitrymomot/otpvault/pkg/otpauth"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// MigrationBatchSize is the number of accounts per migration QR code.
// Larger batches produce codes phone cameras struggle to read.
const MigrationBatchSize = 10

// Account renders the otpauth:// URI of acc as a PNG QR code.
func Account(acc account.Account, p totp.Params, size int) ([]byte, error) {
	uri, err := otpauth.BuildURI(acc, p)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return Generate(uri, size)
}

// Migration renders accounts as a series of migration QR codes sharing one
// batch id, MigrationBatchSize accounts per code.
func Migration(accounts []account.Account, size int) ([][]byte, error) {
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	chunks := lo.Chunk(accounts, MigrationBatchSize)
	id := rand.Int32()

	images := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		uri, err := migration.Encode(chunk, migration.BatchOptions{Size: len(chunks), Index: i, ID: id})
		if err != nil {
			return nil, errors.Join(ErrFailedToGenerateQRCode, err)
		}
		png, err := Generate(uri, size)
		if err != nil {
			return nil, err
		}
		images = append(images, png)
	}
	return images, nil
}
