// Package otpauth handles single-account otpauth:// URIs and tells them apart
// from migration batches.
//
// Parse reads the Key URI Format used by authenticator apps:
//
//	otpauth://totp/Issuer:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Issuer
//
// The account name is the label after the first colon, or the whole label
// when there is none. The issuer query parameter becomes the account note.
// Only the first value of a repeated query parameter counts. The secret is
// normalized and rejected when it is not valid Base32.
//
// Classify routes decoded QR text:
//
//	switch p := otpauth.Classify(text); p.Kind {
//	case otpauth.KindSingleAccount:
//	    acc, ok := otpauth.Parse(p.Text)
//	case otpauth.KindMigrationBatch:
//	    accounts := migration.Decode(p.Text)
//	}
//
// BuildURI goes the other way and is what QR exports encode.
package otpauth
