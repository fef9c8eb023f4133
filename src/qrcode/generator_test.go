package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRCode(t *testing.T) {
	img, err := GenerateQRCode("http://localhost:5173/fill/65f0c0ffee0000000000abcd", 0)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, decoded.Bounds().Dx())

	_, err = GenerateQRCode("", 128)
	assert.Error(t, err)
}
