package importer

import "errors"

var (
	ErrUnsupportedContent = errors.New("content is not a TOTP or migration URI")
	ErrNoCode             = errors.New("no QR code found in image")
	ErrNoScanner          = errors.New("image import needs a scanner")
)
