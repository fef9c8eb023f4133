package qrcode

import (
	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// GenerateQRCode encodes data as a PNG image of size x size pixels.
func GenerateQRCode(data string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}
