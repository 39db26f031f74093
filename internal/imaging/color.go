package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
)

// Luma weights used for grayscale conversion (ITU-R BT.601, as in MATLAB's rgb2gray).
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// Luma converts 8-bit RGB components to a gray level in the range 0-255.
//
// The conversion uses 0.2989*R + 0.5870*G + 0.1140*B. Alpha is ignored: a
// transparent pixel whose color channels were zeroed reads as black.
func Luma(r, g, b uint8) float64 {
	return lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
}

// GrayLevels returns the luma of every pixel of img in row-major order,
// normalized to [0, 1].
func GrayLevels(img *image.NRGBA) []float64 {
	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			out = append(out, Luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])/255.0)
		}
	}
	return out
}

// AlphaMask reports, in row-major order, which pixels of img are visible
// (alpha > 0).
func AlphaMask(img *image.NRGBA) []bool {
	b := img.Bounds()
	out := make([]bool, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, img.Pix[img.PixOffset(x, y)+3] > 0)
		}
	}
	return out
}

// SetAlpha copies the alpha channel of src into dst. Both images must have
// the same dimensions.
func SetAlpha(dst, src *image.NRGBA) error {
	db, sb := dst.Bounds(), src.Bounds()
	if db.Dx() != sb.Dx() || db.Dy() != sb.Dy() {
		return fmt.Errorf("alpha source %dx%d does not match destination %dx%d",
			sb.Dx(), sb.Dy(), db.Dx(), db.Dy())
	}
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			dst.Pix[dst.PixOffset(db.Min.X+x, db.Min.Y+y)+3] = src.Pix[src.PixOffset(sb.Min.X+x, sb.Min.Y+y)+3]
		}
	}
	return nil
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
// Six-digit colors are fully opaque.
func ParseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// ClampUint8 rounds v to the nearest integer and clamps it into 0-255.
func ClampUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
