package augment

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/rng"
)

var (
	// ErrUnknownAugmentation is returned for a primitive name that does not
	// exist or is not allowed in a pipeline stage.
	ErrUnknownAugmentation = errors.New("unknown augmentation")

	// ErrInvalidParams is returned by constructors for out-of-range parameters.
	ErrInvalidParams = errors.New("invalid augmentation parameters")

	// ErrZeroPad is returned when PadLeftRight draws an empty padding.
	ErrZeroPad = errors.New("pad draw is zero")

	// ErrProjection is returned when a perspective projection degenerates.
	ErrProjection = errors.New("degenerate projection")
)

// Op is one augmentation primitive. Only the types of this package
// implement it.
type Op interface {
	// Name returns the primitive's configuration name.
	Name() string
	// Probability returns the activation probability.
	Probability() float64

	sealed()
}

// IsRun reports whether a primitive with activation probability p fires.
// It consumes exactly one uniform draw.
func IsRun(r *rand.Rand, p float64) bool {
	return rng.Chance(r, p)
}

// Apply runs op on img if it fires and returns img unchanged otherwise.
func Apply(r *rand.Rand, op Op, img *image.NRGBA) (*image.NRGBA, error) {
	if !IsRun(r, op.Probability()) {
		return img, nil
	}
	switch o := op.(type) {
	case *PadLeftRight:
		return o.apply(r, img)
	case *ResizeChar:
		return o.apply(r, img), nil
	case *AffineTransform:
		return o.apply(r, img), nil
	case *WrapText:
		return o.apply(r, img)
	case *Transformation3D:
		return o.apply(r, img)
	case *ElasticTransformation:
		return o.apply(r, img)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAugmentation, op)
	}
}

func invalid(name, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", name, ErrInvalidParams, fmt.Sprintf(format, args...))
}

func checkP(name string, p float64) error {
	if p < 0 || p > 1 {
		return invalid(name, "p must be in [0, 1], got %v", p)
	}
	return nil
}

// base holds the activation probability shared by all primitives.
type base struct {
	P float64
}

func (b base) Probability() float64 { return b.P }
func (base) sealed()                 {}
