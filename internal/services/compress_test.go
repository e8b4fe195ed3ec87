package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

// testPNG renders a noisy gradient so the PNG does not collapse to a
// few bytes.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 7 % 256),
				G: uint8(y * 13 % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestCompressImageShrinksLarge(t *testing.T) {
	original := testPNG(t, 2400, 1800)

	compressed, err := CompressImage(original)
	if err != nil {
		t.Fatalf("CompressImage failed: %v", err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("decode compressed output failed: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() > 1600 || bounds.Dy() > 1600 {
		t.Errorf("Compressed image is %dx%d, want both dimensions <= 1600", bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio preserved: 2400x1800 fits to 1600x1200.
	if bounds.Dx() != 1600 || bounds.Dy() != 1200 {
		t.Errorf("Compressed image is %dx%d, want 1600x1200", bounds.Dx(), bounds.Dy())
	}
}

func TestCompressImageKeepsSmallDimensions(t *testing.T) {
	original := testPNG(t, 300, 200)

	compressed, err := CompressImage(original)
	if err != nil {
		t.Fatalf("CompressImage failed: %v", err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("decode compressed output failed: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 300 || bounds.Dy() != 200 {
		t.Errorf("Small image resized to %dx%d, should stay 300x200", bounds.Dx(), bounds.Dy())
	}
}

func TestCompressImageRejectsGarbage(t *testing.T) {
	if _, err := CompressImage([]byte("definitely not an image")); err == nil {
		t.Error("Expected error for non-image input")
	}
}
