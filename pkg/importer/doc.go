// Package importer turns decoded QR content into stored accounts.
//
// Text is routed by otpauth.Classify: single-account URIs go through
// otpauth.Parse and migration batches through migration.Decode. Whatever
// comes out is handed to account.Keeper.Import, which skips accounts that are
// already stored. Images are first read by a Scanner.
//
//	imp := importer.New(keeper, scanner.New())
//	res, err := imp.FromImage(ctx, file)
//	if errors.Is(err, importer.ErrNoCode) {
//	    // no QR code in the picture
//	}
package importer
