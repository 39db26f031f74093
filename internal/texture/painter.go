package texture

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// Painter modes.
const (
	// ModeUniform draws R, G and B independently from [0, 255).
	ModeUniform = "uniform"
	// ModeHSV draws a hue uniformly and saturation and value from ranges.
	ModeHSV = "hsv"
)

// Painter gives a word image one random ink color.
type Painter struct {
	P    float64
	Mode string

	// Saturation and Value bound the HSV draws as [min, max).
	Saturation [2]float64
	Value      [2]float64
}

// NewPainter validates and returns a painter.
func NewPainter(p float64, mode string, saturation, value [2]float64) (*Painter, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("painter probability %v outside [0, 1]", p)
	}
	switch mode {
	case ModeUniform, ModeHSV:
	default:
		return nil, fmt.Errorf("unknown painter mode %q", mode)
	}
	for _, rg := range [][2]float64{saturation, value} {
		if rg[0] < 0 || rg[1] > 1 || rg[0] > rg[1] {
			return nil, fmt.Errorf("invalid painter range %v", rg)
		}
	}
	return &Painter{P: p, Mode: mode, Saturation: saturation, Value: value}, nil
}

// Color draws an opaque ink color.
func (p *Painter) Color(r *rand.Rand) color.NRGBA {
	if p.Mode == ModeHSV {
		c := colorful.Hsv(
			rng.Uniform(r, 0, 360),
			rng.Uniform(r, p.Saturation[0], p.Saturation[1]),
			rng.Uniform(r, p.Value[0], p.Value[1]),
		).Clamped()
		cr, cg, cb := c.RGB255()
		return color.NRGBA{cr, cg, cb, 255}
	}
	return color.NRGBA{
		R: uint8(rng.Int(r, 0, 255)),
		G: uint8(rng.Int(r, 0, 255)),
		B: uint8(rng.Int(r, 0, 255)),
		A: 255,
	}
}

// Paint sets the RGB of every pixel of a copy of img to one random color,
// keeping alpha. When the painter does not fire img is returned as is.
func (p *Painter) Paint(r *rand.Rand, img *image.NRGBA) *image.NRGBA {
	if !rng.Chance(r, p.P) {
		return img
	}
	c := p.Color(r)
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = c.R
		out.Pix[i+1] = c.G
		out.Pix[i+2] = c.B
	}
	return out
}
