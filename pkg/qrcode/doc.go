// Package qrcode renders QR codes as PNG images with
// github.com/skip2/go-qrcode.
//
// Generate and GenerateBase64Image encode arbitrary text. Account encodes
// the otpauth:// URI of one account, and Migration splits a list of accounts
// into otpauth-migration:// codes that authenticator apps import in bulk.
//
//	png, err := qrcode.Account(acc, totp.Params{}, 256)
//	if err != nil {
//	    return err
//	}
//
// Empty content fails with ErrEmptyContent; encoder failures wrap
// ErrFailedToGenerateQRCode.
package qrcode
