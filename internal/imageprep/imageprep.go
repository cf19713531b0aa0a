// Package imageprep checks and downscales images before they are uploaded.
package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
)

// ErrNotImage is returned for input that does not decode as an image.
var ErrNotImage = errors.New("file must be an image")

// Result is a prepared image ready for upload.
type Result struct {
	Data     []byte
	Filename string
	Width    int
	Height   int
	Resized  bool
	// OriginalSize is the input size in bytes.
	OriginalSize int
}

// Preparer downscales images that exceed a bounding box.
type Preparer struct {
	maxWidth  int
	maxHeight int
	quality   int
}

// New creates a Preparer for the given bounding box and JPEG quality.
func New(maxWidth, maxHeight, quality int) *Preparer {
	if quality < 1 || quality > 100 {
		quality = 85
	}
	return &Preparer{maxWidth: maxWidth, maxHeight: maxHeight, quality: quality}
}

// Check reads the image header and returns its dimensions and format name.
func Check(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

// Prepare reads an image and shrinks it to fit the bounding box, keeping the
// aspect ratio. Images that already fit are passed through byte for byte;
// nothing is ever upscaled.
func (p *Preparer) Prepare(r io.Reader, filename string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	width, height, _, err := Check(data)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Data:         data,
		Filename:     filepath.Base(filename),
		Width:        width,
		Height:       height,
		OriginalSize: len(data),
	}
	if width <= p.maxWidth && height <= p.maxHeight {
		return res, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	bounds := img.Bounds()
	newWidth, newHeight := p.calculateScaledDimensions(bounds.Dx(), bounds.Dy())
	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	format, name := outputFormat(res.Filename)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(p.quality), imaging.PNGCompressionLevel(6)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	log.Debugf("Resized image from %dx%d to %dx%d for: %s", bounds.Dx(), bounds.Dy(), newWidth, newHeight, filename)

	res.Data = buf.Bytes()
	res.Filename = name
	res.Width = resized.Bounds().Dx()
	res.Height = resized.Bounds().Dy()
	res.Resized = true
	return res, nil
}

// calculateScaledDimensions fits width x height into the bounding box.
func (p *Preparer) calculateScaledDimensions(width, height int) (int, int) {
	widthRatio := float64(p.maxWidth) / float64(width)
	heightRatio := float64(p.maxHeight) / float64(height)

	ratio := min(widthRatio, heightRatio, 1)

	newWidth := max(int(float64(width)*ratio), 1)
	newHeight := max(int(float64(height)*ratio), 1)
	return newWidth, newHeight
}

// outputFormat keeps the input format when imaging can write it and falls
// back to JPEG otherwise, fixing up the extension.
func outputFormat(filename string) (imaging.Format, string) {
	format, err := imaging.FormatFromFilename(filename)
	if err == nil {
		return format, filename
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "image"
	}
	return imaging.JPEG, base + ".jpg"
}
