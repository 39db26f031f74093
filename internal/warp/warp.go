package warp

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Perspective warps src through the forward homography h into a new
// width x height canvas using bicubic sampling. Destination pixels whose
// preimage falls outside src are transparent.
func Perspective(src *image.NRGBA, h Matrix3, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid warp canvas %dx%d", width, height)
	}
	inv, ok := h.Inverse()
	if !ok {
		return nil, fmt.Errorf("homography is singular")
	}

	sb := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx, sy := inv.Apply(float64(x), float64(y))
			if math.IsNaN(sx) || math.IsNaN(sy) {
				continue
			}
			// Skip points whose whole 4x4 neighborhood is outside the source.
			if sx < -2 || sy < -2 || sx > float64(sb.Dx()+1) || sy > float64(sb.Dy()+1) {
				continue
			}
			store(dst, x, y, sampleCubic(src, sx, sy, BorderConstant))
		}
	}
	return dst, nil
}

// Remap builds a width x height image whose pixel (x, y) is src sampled
// bilinearly at (mapX[i], mapY[i]) with i = y*width + x. NaN coordinates
// produce transparent pixels.
func Remap(src *image.NRGBA, mapX, mapY []float64, width, height int, border Border) (*image.NRGBA, error) {
	if len(mapX) != width*height || len(mapY) != width*height {
		return nil, fmt.Errorf("remap maps have %d/%d entries, want %d", len(mapX), len(mapY), width*height)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			sx, sy := mapX[i], mapY[i]
			if math.IsNaN(sx) || math.IsNaN(sy) {
				continue
			}
			store(dst, x, y, sampleBilinear(src, sx, sy, border))
		}
	}
	return dst, nil
}

// Affine warps src through the forward affine part of m into a canvas of the
// same size as src. Uncovered pixels stay transparent.
func Affine(src *image.NRGBA, m Matrix3) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.BiLinear.Transform(dst, m.Aff3(), src, b, draw.Src, nil)
	return dst
}
