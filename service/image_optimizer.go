package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
)

// Snapshot sizes (max dimension)
const (
	SnapshotThumb  = "thumb"
	SnapshotMedium = "medium"

	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ErrUnknownSnapshotSize is returned for a size other than thumb, medium or empty
var ErrUnknownSnapshotSize = errors.New("unknown snapshot size")

// ScaleSnapshot shrinks a PNG screenshot so its larger side fits the named size.
// An empty size returns the image unchanged; smaller images are never enlarged.
func ScaleSnapshot(pngData []byte, size string) ([]byte, error) {
	var maxDim int
	switch size {
	case "":
		return pngData, nil
	case SnapshotThumb:
		maxDim = maxSizeThumb
	case SnapshotMedium:
		maxDim = maxSizeMedium
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSnapshotSize, size)
	}

	img, format, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return pngData, nil
	}

	// Keep the aspect ratio; imaging derives the missing side from a zero dimension
	newWidth, newHeight := maxDim, 0
	if height > width {
		newWidth, newHeight = 0, maxDim
	}
	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	log.Printf("🔄 Resizing snapshot (%s): %dx%d -> %dx%d", format, width, height, resized.Bounds().Dx(), resized.Bounds().Dy())

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
