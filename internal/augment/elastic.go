package augment

import (
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
	"github.com/ironsheep/textsynth/internal/warp"
)

// ElasticTransformation displaces every pixel by a smooth random field.
//
// Two fields of uniform noise in [-1, 1) are smoothed with a Gaussian of
// standard deviation sigma and scaled by alpha. Both are drawn from their
// ranges on every call. Border selects how samples leaving the image read.
type ElasticTransformation struct {
	base
	MinAlpha float64
	MaxAlpha float64
	MinSigma float64
	MaxSigma float64
	Border   warp.Border
}

// NewElasticTransformation requires 0 <= minAlpha <= maxAlpha,
// 0 < minSigma <= maxSigma and a known border mode.
func NewElasticTransformation(p, minAlpha, maxAlpha, minSigma, maxSigma float64, mode string) (*ElasticTransformation, error) {
	const name = "ElasticTransformation"
	if err := checkP(name, p); err != nil {
		return nil, err
	}
	if minAlpha < 0 || minAlpha > maxAlpha {
		return nil, invalid(name, "alpha range [%v, %v] is invalid", minAlpha, maxAlpha)
	}
	if minSigma <= 0 || minSigma > maxSigma {
		return nil, invalid(name, "sigma range [%v, %v] is invalid", minSigma, maxSigma)
	}
	border, ok := warp.ParseBorder(mode)
	if !ok {
		return nil, invalid(name, "unknown mode %q", mode)
	}
	return &ElasticTransformation{
		base:     base{P: p},
		MinAlpha: minAlpha,
		MaxAlpha: maxAlpha,
		MinSigma: minSigma,
		MaxSigma: maxSigma,
		Border:   border,
	}, nil
}

// Name implements Op.
func (*ElasticTransformation) Name() string { return "ElasticTransformation" }

func (o *ElasticTransformation) apply(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	alpha := rng.Uniform(r, o.MinAlpha, o.MaxAlpha)
	sigma := rng.Uniform(r, o.MinSigma, o.MaxSigma)
	return Elastic(r, img, alpha, sigma, o.Border)
}

// Elastic displaces img by alpha-scaled Gaussian-smoothed noise. The output
// has the size of img.
func Elastic(r *rand.Rand, img *image.NRGBA, alpha, sigma float64, border warp.Border) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	dx := noiseField(r, w*h)
	dy := noiseField(r, w*h)
	dx = imaging.GaussianBlur(dx, w, h, sigma)
	dy = imaging.GaussianBlur(dy, w, h, sigma)

	mapX := make([]float64, w*h)
	mapY := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			mapX[i] = float64(x) + alpha*dx[i]
			mapY[i] = float64(y) + alpha*dy[i]
		}
	}
	return warp.Remap(img, mapX, mapY, w, h, border)
}

func noiseField(r *rand.Rand, n int) []float64 {
	field := make([]float64, n)
	for i := range field {
		field[i] = r.Float64()*2 - 1
	}
	return field
}
