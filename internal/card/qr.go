package card

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultQRSize is the edge length of exported QR images in pixels.
const DefaultQRSize = 256

// QRImage encodes payload at error-correction level L and scales it to size x size.
func QRImage(payload string, size int) (image.Image, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	code, err := qr.Encode(payload, qr.L, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("scale qr: %w", err)
	}
	return scaled, nil
}

// Encodable reports whether payload fits in a QR code at level L.
func Encodable(payload string) bool {
	_, err := qr.Encode(payload, qr.L, qr.Auto)
	return err == nil
}

// QRCode returns payload as a PNG QR image.
func QRCode(payload string, size int) ([]byte, error) {
	img, err := QRImage(payload, size)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// EncodePNG exports img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
