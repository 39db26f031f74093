package augment

import (
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/rng"
	"github.com/ironsheep/textsynth/internal/warp"
)

// AffineTransform skews and shifts an image inside its own frame.
//
// The skew components are drawn in hundredths from [-MaxRotate, MaxRotate)
// and the shifts in pixels from [-MaxTranslate, MaxTranslate). Scale stays 1.
type AffineTransform struct {
	base
	MaxRotate    int
	MaxTranslate int
}

// NewAffineTransform requires non-negative bounds and maxRotate < 100.
func NewAffineTransform(p float64, maxRotate, maxTranslate int) (*AffineTransform, error) {
	const name = "AffineTransform"
	if err := checkP(name, p); err != nil {
		return nil, err
	}
	if maxRotate < 0 || maxTranslate < 0 {
		return nil, invalid(name, "bounds must not be negative, got rotate=%d translate=%d", maxRotate, maxTranslate)
	}
	if maxRotate >= 100 {
		// A skew of 1 on both axes makes the transform singular.
		return nil, invalid(name, "max_rotate must be below 100, got %d", maxRotate)
	}
	return &AffineTransform{base: base{P: p}, MaxRotate: maxRotate, MaxTranslate: maxTranslate}, nil
}

// Name implements Op.
func (*AffineTransform) Name() string { return "AffineTransform" }

// Matrix draws the forward transform
//
//	x' = x + ry*y + tx
//	y' = rx*x + y + ty
func (o *AffineTransform) Matrix(r *rand.Rand) warp.Matrix3 {
	rx := float64(rng.Int(r, -o.MaxRotate, o.MaxRotate)) / 100
	ry := float64(rng.Int(r, -o.MaxRotate, o.MaxRotate)) / 100
	tx := float64(rng.Int(r, -o.MaxTranslate, o.MaxTranslate))
	ty := float64(rng.Int(r, -o.MaxTranslate, o.MaxTranslate))
	return warp.Matrix3{
		1, ry, tx,
		rx, 1, ty,
		0, 0, 1,
	}
}

func (o *AffineTransform) apply(r *rand.Rand, img *image.NRGBA) *image.NRGBA {
	return warp.Affine(img, o.Matrix(r))
}
