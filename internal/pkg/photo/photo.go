package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedMimeTypes lists the upload formats the pipeline accepts.
var SupportedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// DetectMimeType sniffs the content type from the first 512 bytes.
func DetectMimeType(data []byte) string {
	mimeType := http.DetectContentType(data)
	return strings.Split(mimeType, ";")[0]
}

// Decode parses JPEG, PNG or WebP bytes into an image.
func Decode(data []byte) (image.Image, error) {
	switch DetectMimeType(data) {
	case "image/jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		return png.Decode(bytes.NewReader(data))
	case "image/webp":
		return webp.Decode(bytes.NewReader(data), &decoder.Options{})
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NormalizeSquare fits the image onto a size x size transparent canvas,
// padding rather than cropping so no image content is lost, and returns
// the result as PNG.
func NormalizeSquare(data []byte, size int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	result := imaging.PasteCenter(canvas, fitted)

	return encodePNG(result)
}

// PrepareMask resizes a foreground/background mask to the canvas size and
// feathers its edge with a 1px blur to avoid halos around the subject.
func PrepareMask(data []byte, size int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, size, size, imaging.Lanczos)
	feathered := imaging.Blur(resized, 1.0)

	return encodePNG(feathered)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
