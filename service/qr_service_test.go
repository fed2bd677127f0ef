package service

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRServiceGeneratePNG(t *testing.T) {
	svc := NewQRService()

	data, err := svc.GeneratePNG("hello")
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	// version 1 symbol: 21 modules plus a 4 module border on each side
	bounds := img.Bounds()
	assert.Equal(t, 290, bounds.Dx())
	assert.Equal(t, 290, bounds.Dy())

	white := color.GrayModel.Convert(img.At(5, 5)).(color.Gray)
	assert.Equal(t, uint8(255), white.Y)

	// top-left corner of the finder pattern
	dark := color.GrayModel.Convert(img.At(45, 45)).(color.Gray)
	assert.Equal(t, uint8(0), dark.Y)
}

func TestQRServiceEmptyText(t *testing.T) {
	svc := NewQRService()

	_, err := svc.GeneratePNG("")
	assert.ErrorIs(t, err, ErrEmptyQRText)

	_, err = svc.GenerateDataURI("")
	assert.ErrorIs(t, err, ErrEmptyQRText)
}

func TestQRServiceDataURI(t *testing.T) {
	svc := NewQRService()

	uri, err := svc.GenerateDataURI("https://example.com/asset/21H001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
