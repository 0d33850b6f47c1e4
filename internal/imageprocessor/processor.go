package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Result is a re-encoded image.
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// Processor shrinks avatars before they are stored.
type Processor struct {
	quality int // JPEG quality (1-100)
	maxSide int
}

func NewProcessor(quality, maxSide int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxSide <= 0 {
		maxSide = 512
	}
	return &Processor{
		quality: quality,
		maxSide: maxSide,
	}
}

// Downscale fits the image into a maxSide square keeping its aspect ratio.
// Images already small enough are returned untouched. Only JPEG and PNG are
// decoded; anything else yields ErrUnsupportedFormat.
func (p *Processor) Downscale(data []byte) (*Result, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, ErrUnsupportedFormat
	}

	contentType := "image/" + format
	if cfg.Width <= p.maxSide && cfg.Height <= p.maxSide {
		return &Result{Data: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := fit(img, p.maxSide)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	}

	b := resized.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Resized:     true,
	}, nil
}

func fit(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := maxSide, maxSide
	if width >= height {
		newHeight = max(1, height*maxSide/width)
	} else {
		newWidth = max(1, width*maxSide/height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
