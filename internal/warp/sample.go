package warp

import (
	"image"
	"math"

	"github.com/ironsheep/textsynth/internal/imaging"
)

// Border selects how samples outside the source image are read.
type Border int

const (
	// BorderConstant reads outside pixels as fully transparent.
	BorderConstant Border = iota
	// BorderNearest replicates the closest edge pixel.
	BorderNearest
	// BorderReflect mirrors the image around its edge pixel (gfedcb|abcdefgh|gfedcba).
	BorderReflect
	// BorderWrap tiles the image.
	BorderWrap
)

// ParseBorder maps the configuration names constant, nearest, reflect and wrap
// to a Border.
func ParseBorder(name string) (Border, bool) {
	switch name {
	case "constant", "":
		return BorderConstant, true
	case "nearest", "edge":
		return BorderNearest, true
	case "reflect":
		return BorderReflect, true
	case "wrap":
		return BorderWrap, true
	}
	return BorderConstant, false
}

func (b Border) String() string {
	switch b {
	case BorderNearest:
		return "nearest"
	case BorderReflect:
		return "reflect"
	case BorderWrap:
		return "wrap"
	default:
		return "constant"
	}
}

// resolve maps coordinate v into [0, n) according to b. ok is false when the
// sample should read as transparent.
func (b Border) resolve(v, n int) (int, bool) {
	if v >= 0 && v < n {
		return v, true
	}
	switch b {
	case BorderNearest:
		if v < 0 {
			return 0, true
		}
		return n - 1, true
	case BorderReflect:
		if n == 1 {
			return 0, true
		}
		period := 2 * (n - 1)
		v = ((v % period) + period) % period
		if v >= n {
			v = period - v
		}
		return v, true
	case BorderWrap:
		return ((v % n) + n) % n, true
	default:
		return 0, false
	}
}

// pixelAt accumulates weight*pixel(x, y) into acc.
func pixelAt(src *image.NRGBA, x, y int, weight float64, border Border, acc *[4]float64) {
	b := src.Bounds()
	px, okX := border.resolve(x, b.Dx())
	py, okY := border.resolve(y, b.Dy())
	if !okX || !okY {
		return
	}
	i := src.PixOffset(b.Min.X+px, b.Min.Y+py)
	for c := 0; c < 4; c++ {
		acc[c] += weight * float64(src.Pix[i+c])
	}
}

// cubicA is the Keys cubic convolution parameter used for bicubic sampling.
const cubicA = -0.75

func cubicWeight(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t <= 1:
		return ((cubicA+2)*t-(cubicA+3))*t*t + 1
	case t < 2:
		return ((cubicA*t-5*cubicA)*t+8*cubicA)*t - 4*cubicA
	}
	return 0
}

// sampleCubic interpolates src at (x, y) from its 4x4 neighborhood.
func sampleCubic(src *image.NRGBA, x, y float64, border Border) [4]float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx, fy := x-float64(x0), y-float64(y0)

	var wx, wy [4]float64
	for i := 0; i < 4; i++ {
		wx[i] = cubicWeight(fx - float64(i-1))
		wy[i] = cubicWeight(fy - float64(i-1))
	}

	var acc [4]float64
	for j := 0; j < 4; j++ {
		if wy[j] == 0 {
			continue
		}
		for i := 0; i < 4; i++ {
			if wx[i] == 0 {
				continue
			}
			pixelAt(src, x0+i-1, y0+j-1, wx[i]*wy[j], border, &acc)
		}
	}
	return acc
}

// sampleBilinear interpolates src at (x, y) from its 2x2 neighborhood.
func sampleBilinear(src *image.NRGBA, x, y float64, border Border) [4]float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx, fy := x-float64(x0), y-float64(y0)

	var acc [4]float64
	pixelAt(src, x0, y0, (1-fx)*(1-fy), border, &acc)
	pixelAt(src, x0+1, y0, fx*(1-fy), border, &acc)
	pixelAt(src, x0, y0+1, (1-fx)*fy, border, &acc)
	pixelAt(src, x0+1, y0+1, fx*fy, border, &acc)
	return acc
}

func store(dst *image.NRGBA, x, y int, v [4]float64) {
	i := dst.PixOffset(x, y)
	for c := 0; c < 4; c++ {
		dst.Pix[i+c] = imaging.ClampUint8(v[c])
	}
}
