package augment

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// PadLeftRight adds transparent columns on both sides of an image.
// Pad sizes are fractions of the image width.
type PadLeftRight struct {
	base
	MinPad float64
	MaxPad float64
}

// NewPadLeftRight requires 0 <= minPad < maxPad.
func NewPadLeftRight(p, minPad, maxPad float64) (*PadLeftRight, error) {
	const name = "PadLeftRight"
	if err := checkP(name, p); err != nil {
		return nil, err
	}
	if minPad < 0 || minPad >= maxPad {
		return nil, invalid(name, "need 0 <= min_pad < max_pad, got [%v, %v]", minPad, maxPad)
	}
	return &PadLeftRight{base: base{P: p}, MinPad: minPad, MaxPad: maxPad}, nil
}

// Name implements Op.
func (*PadLeftRight) Name() string { return "PadLeftRight" }

// Sizes draws the left and right pad widths for an image of width w, each
// uniformly from [ceil(MinPad*w), ceil(MaxPad*w)].
func (o *PadLeftRight) Sizes(r *rand.Rand, w int) (left, right int) {
	lo := int(math.Ceil(o.MinPad * float64(w)))
	hi := int(math.Ceil(o.MaxPad * float64(w)))
	left = rng.Int(r, lo, hi+1)
	right = rng.Int(r, lo, hi+1)
	return left, right
}

func (o *PadLeftRight) apply(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	b := img.Bounds()
	left, right := o.Sizes(r, b.Dx())
	if left == 0 || right == 0 {
		return nil, fmt.Errorf("%w: left=%d right=%d for width %d", ErrZeroPad, left, right, b.Dx())
	}
	out := imaging.Transparent(b.Dx()+left+right, b.Dy())
	imaging.Paste(out, img, left, 0)
	return out, nil
}
