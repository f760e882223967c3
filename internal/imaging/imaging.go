// Package imaging normalizes photos attached to collateral items. Input is
// sniffed for a supported format, downscaled to a card-sized bound and
// re-encoded as JPEG so the database never stores oversized blobs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"

	_ "image/png"

	"golang.org/x/image/draw"
)

// MaxDim is the maximum width or height of a stored photo. Collateral photos
// are reference shots, not print assets, so the bound is small.
const MaxDim = 640

// quality is the JPEG compression quality for stored photos.
const quality = 80

// supported lists the accepted input MIME types, as detected from the bytes.
var supported = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is a normalized photo ready for storage.
type Photo struct {
	Data []byte
	MIME string
}

// Normalize validates raw photo bytes, scales them down to fit MaxDim if
// needed, and re-encodes as JPEG. The detected format comes from the bytes
// themselves, never from a caller-supplied content type.
func Normalize(data []byte) (*Photo, error) {
	detected := http.DetectContentType(data)
	if !supported[detected] {
		return nil, fmt.Errorf("unsupported photo format %s (JPEG or PNG expected)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	if fit := fitBounds(img.Bounds()); fit != img.Bounds() {
		scaled := image.NewRGBA(fit)
		draw.CatmullRom.Scale(scaled, fit, img, img.Bounds(), draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}

	return &Photo{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// fitBounds returns the target rectangle for an image so that neither
// dimension exceeds MaxDim, preserving aspect ratio. Images already within
// bounds keep their rectangle unchanged.
func fitBounds(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= MaxDim && h <= MaxDim {
		return bounds
	}

	if w >= h {
		h = h * MaxDim / w
		w = MaxDim
	} else {
		w = w * MaxDim / h
		h = MaxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(0, 0, w, h)
}
