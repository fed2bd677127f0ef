package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// qrBoxSize is the number of pixels per QR module
	qrBoxSize = 10
)

// ErrEmptyQRText is returned when there is nothing to encode
var ErrEmptyQRText = errors.New("qr text is empty")

// QRService renders QR codes as PNG images
type QRService struct {
	boxSize int
}

// NewQRService creates a new QRService
func NewQRService() *QRService {
	return &QRService{boxSize: qrBoxSize}
}

// Ensure QRService implements QRServiceInterface
var _ QRServiceInterface = (*QRService)(nil)

// GeneratePNG encodes text as a QR code with a 4 module border.
// Each module is drawn as a boxSize x boxSize square.
func (s *QRService) GeneratePNG(text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyQRText
	}

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	// Bitmap includes the quiet zone
	bitmap := code.Bitmap()
	modules := len(bitmap)
	img := image.NewGray(image.Rect(0, 0, modules, modules))
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	scaled := imaging.Resize(img, modules*s.boxSize, modules*s.boxSize, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, scaled, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	log.Printf("✓ QR code generated: %d modules, %d bytes", modules, buf.Len())
	return buf.Bytes(), nil
}

// GenerateDataURI returns the QR code PNG as a data URI for inline <img> tags
func (s *QRService) GenerateDataURI(text string) (string, error) {
	png, err := s.GeneratePNG(text)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
