package scanner

import (
	"context"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	_ "golang.org/x/image/bmp" // register BMP decoder
)

// QR decodes QR codes with gozxing.
type QR struct {
	hints []map[gozxing.DecodeHintType]any
}

// New returns a QR scanner that first tries hard on noisy or rotated photos
// and then falls back to reading the image as an unrotated generated code.
// The detector can mis-sample clean generated images that the pure-barcode
// path reads without trouble.
func New() *QR {
	return &QR{
		hints: []map[gozxing.DecodeHintType]any{
			{gozxing.DecodeHintType_TRY_HARDER: true},
			{gozxing.DecodeHintType_PURE_BARCODE: true},
		},
	}
}

// Scan returns the text of the QR code in r. It reports false when r is not a
// supported image or holds no readable code.
func (q *QR) Scan(ctx context.Context, r io.Reader) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return "", false
	}

	return q.ScanImage(img)
}

// ScanImage is Scan for an already decoded image.
func (q *QR) ScanImage(img image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false
	}

	reader := qrcode.NewQRCodeReader()
	for _, hints := range q.hints {
		res, err := reader.Decode(bmp, hints)
		if err == nil && res.GetText() != "" {
			return res.GetText(), true
		}
		reader.Reset()
	}
	return "", false
}
