package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeSquarePadsWideImage(t *testing.T) {
	src := pngBytes(t, 400, 100)

	out, err := NormalizeSquare(src, 256)
	if err != nil {
		t.Fatalf("NormalizeSquare returned error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not valid png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 256 || bounds.Dy() != 256 {
		t.Fatalf("expected 256x256 canvas, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// A 4:1 image fitted into a square leaves transparent padding at the top.
	_, _, _, a := img.At(128, 2).RGBA()
	if a != 0 {
		t.Fatalf("expected transparent padding, got alpha %d", a)
	}
	// The center belongs to the pasted image and must be opaque.
	_, _, _, a = img.At(128, 128).RGBA()
	if a == 0 {
		t.Fatal("expected opaque center pixel")
	}
}

func TestNormalizeSquareAcceptsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}

	out, err := NormalizeSquare(buf.Bytes(), 128)
	if err != nil {
		t.Fatalf("NormalizeSquare returned error: %v", err)
	}
	if DetectMimeType(out) != "image/png" {
		t.Fatalf("expected png output, got %s", DetectMimeType(out))
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPrepareMaskResizes(t *testing.T) {
	src := pngBytes(t, 100, 100)

	out, err := PrepareMask(src, 256)
	if err != nil {
		t.Fatalf("PrepareMask returned error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("mask output is not valid png: %v", err)
	}
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Fatalf("expected 256x256 mask, got %v", img.Bounds())
	}
}
