package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// makeImage encodes a solid-color test image with the given encoder.
func makeImage(t *testing.T, w, h int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 128, 255, 255})
		}
	}

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func TestNormalizeJPEG(t *testing.T) {
	photo, err := Normalize(makeImage(t, 120, 80, encodeJPEG))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", photo.MIME)
	}
	if len(photo.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestNormalizePNGOutputsJPEG(t *testing.T) {
	photo, err := Normalize(makeImage(t, 120, 80, encodePNG))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected re-encoded JPEG, got %s", photo.MIME)
	}
}

func TestNormalizeDownscales(t *testing.T) {
	photo, err := Normalize(makeImage(t, 1600, 900, encodeJPEG))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != MaxDim {
		t.Errorf("expected width %d, got %d", MaxDim, bounds.Dx())
	}
	if bounds.Dy() > MaxDim {
		t.Errorf("expected height within %d, got %d", MaxDim, bounds.Dy())
	}
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	photo, err := Normalize(makeImage(t, 60, 40, encodeJPEG))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 40 {
		t.Errorf("small image should keep its size, got %v", img.Bounds())
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("definitely not a photo")); err == nil {
		t.Error("expected error for non-image input")
	}
}

func TestNormalizeRejectsGIF(t *testing.T) {
	if _, err := Normalize([]byte("GIF89a\x01\x00\x01\x00")); err == nil {
		t.Error("expected error for GIF input")
	}
}
