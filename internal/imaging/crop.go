package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math/rand/v2"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/textsynth/internal/rng"
)

// Crop extracts a rectangular region from an image as a new NRGBA copy.
func Crop(img image.Image, x1, y1, x2, y2 int) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 > x2 || y1 > y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be <= x2, y1 must be <= y2")
	}

	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// RandomCrop takes a uniformly placed w x h window out of src.
//
// The source must be strictly larger than the window in both dimensions;
// otherwise ok is false and no crop is produced. The window origin is drawn
// from [0, srcW-w) x [0, srcH-h).
func RandomCrop(r *rand.Rand, src image.Image, w, h int) (crop *image.NRGBA, ok bool) {
	b := src.Bounds()
	if h >= b.Dy() || w >= b.Dx() {
		return nil, false
	}
	x := rng.Int(r, 0, b.Dx()-w)
	y := rng.Int(r, 0, b.Dy()-h)
	origin := b.Min.Add(image.Pt(x, y))
	return imaging.Crop(src, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}), true
}

// EncodePNGBase64 encodes img as PNG and returns it base64 encoded.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
