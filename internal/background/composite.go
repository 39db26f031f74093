package background

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// Composite places fg over bg using fg's alpha as the blend mask.
//
// Fully transparent foreground pixels contribute nothing, whatever color
// they carry. The result is opaque.
func Composite(fg, bg *image.NRGBA) (*image.NRGBA, error) {
	fb, bb := fg.Bounds(), bg.Bounds()
	if fb.Dx() != bb.Dx() || fb.Dy() != bb.Dy() {
		return nil, fmt.Errorf("background %dx%d does not match foreground %dx%d", bb.Dx(), bb.Dy(), fb.Dx(), fb.Dy())
	}

	out := imaging.Transparent(fb.Dx(), fb.Dy())
	for y := 0; y < fb.Dy(); y++ {
		for x := 0; x < fb.Dx(); x++ {
			fi := fg.PixOffset(fb.Min.X+x, fb.Min.Y+y)
			bi := bg.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			oi := out.PixOffset(x, y)

			a := float64(fg.Pix[fi+3]) / 255
			for c := 0; c < 3; c++ {
				f := float64(fg.Pix[fi+c])
				if fg.Pix[fi+3] == 0 {
					f = 0
				}
				out.Pix[oi+c] = imaging.ClampUint8(f*a + float64(bg.Pix[bi+c])*(1-a))
			}
			out.Pix[oi+3] = 255
		}
	}
	return out, nil
}

// Blender composites word images onto compatible backgrounds.
type Blender struct {
	P      float64
	Scorer *Scorer
}

// NewBlender validates and returns a blender.
func NewBlender(p float64, scorer *Scorer) (*Blender, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("background probability %v outside [0, 1]", p)
	}
	if scorer == nil {
		return nil, fmt.Errorf("background blender needs a scorer")
	}
	return &Blender{P: p, Scorer: scorer}, nil
}

// Blend composites fg onto a background when the blender fires and a
// compatible background is found; otherwise fg is returned unchanged.
func (b *Blender) Blend(r *rand.Rand, fg *image.NRGBA) (*image.NRGBA, error) {
	if !rng.Chance(r, b.P) {
		return fg, nil
	}
	bg, ok := b.Scorer.Find(r, fg)
	if !ok {
		b.Scorer.Logger.Debug("no compatible background, keeping foreground")
		return fg, nil
	}
	return Composite(fg, bg)
}
