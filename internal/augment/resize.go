package augment

import (
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// ResizeChar rescales an image by a random ratio with nearest-neighbor
// sampling.
//
// The ratio bounds are truncated to integers and the ratio is drawn in
// hundredths from [int(MinRatio), int(MaxRatio)). A draw that would shrink
// the image below MinW x MinH leaves it unchanged.
type ResizeChar struct {
	base
	MinRatio float64
	MaxRatio float64
	MinW     int
	MinH     int
}

// NewResizeChar requires the truncated ratio bounds to form a non-empty range.
func NewResizeChar(p, minRatio, maxRatio float64, minW, minH int) (*ResizeChar, error) {
	const name = "ResizeChar"
	if err := checkP(name, p); err != nil {
		return nil, err
	}
	if minRatio < 0 || int(minRatio) >= int(maxRatio) {
		return nil, invalid(name, "ratio bounds [%v, %v] truncate to an empty range", minRatio, maxRatio)
	}
	if minW < 0 || minH < 0 {
		return nil, invalid(name, "minimum size must not be negative")
	}
	return &ResizeChar{base: base{P: p}, MinRatio: minRatio, MaxRatio: maxRatio, MinW: minW, MinH: minH}, nil
}

// Name implements Op.
func (*ResizeChar) Name() string { return "ResizeChar" }

// Ratio draws a scale ratio.
func (o *ResizeChar) Ratio(r *rand.Rand) float64 {
	lo := int(o.MinRatio) * 100
	hi := int(o.MaxRatio) * 100
	return float64(rng.Int(r, lo, hi)) / 100
}

// Size returns the target size for a w x h image at ratio, or (w, h) when
// the target falls below the minimum size.
func (o *ResizeChar) Size(w, h int, ratio float64) (int, int) {
	newW := int(float64(w) * ratio)
	newH := int(float64(h) * ratio)
	if newW < o.MinW || newH < o.MinH || newW < 1 || newH < 1 {
		return w, h
	}
	return newW, newH
}

func (o *ResizeChar) apply(r *rand.Rand, img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := o.Size(b.Dx(), b.Dy(), o.Ratio(r))
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return imaging.ResizeNearest(img, w, h)
}
