// Package scanner reads QR codes from images.
//
// QR decodes PNG, JPEG, GIF and BMP input and returns the text of the first
// QR code it finds. It satisfies importer.Scanner.
//
//	text, ok := scanner.New().Scan(ctx, f)
//	if !ok {
//	    // not an image, or no QR code in it
//	}
package scanner
