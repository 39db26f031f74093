package background

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/textsynth/internal/corpus"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// Comparison thumbnail size.
const (
	CompareWidth  = 128
	CompareHeight = 32
)

// noiseAmplitude bounds the per-channel noise of solid-color candidates.
const noiseAmplitude = 10

// Scorer selects backgrounds that are distinguishable from a word image.
type Scorer struct {
	DistanceThreshold float64
	NumColor          int
	OneColorP         float64

	// Picker supplies corpus images. It may be nil when OneColorP is 1.
	Picker corpus.Picker
	Logger *log.Logger
}

// NewScorer validates and returns a scorer.
func NewScorer(threshold float64, numColor int, oneColorP float64, picker corpus.Picker, logger *log.Logger) (*Scorer, error) {
	if numColor < 1 {
		return nil, fmt.Errorf("num color must be positive, got %d", numColor)
	}
	if threshold < 0 {
		return nil, fmt.Errorf("distance threshold must not be negative, got %v", threshold)
	}
	if oneColorP < 0 || oneColorP > 1 {
		return nil, fmt.Errorf("one color probability %v outside [0, 1]", oneColorP)
	}
	if picker == nil && oneColorP < 1 {
		return nil, fmt.Errorf("background corpus is required unless one color probability is 1")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scorer{
		DistanceThreshold: threshold,
		NumColor:          numColor,
		OneColorP:         oneColorP,
		Picker:            picker,
		Logger:            logger,
	}, nil
}

// Find returns a background of fg's size that passes the compatibility test,
// or ok == false after corpus.MaxAttempts candidates.
func (s *Scorer) Find(r *rand.Rand, fg *image.NRGBA) (bg *image.NRGBA, ok bool) {
	w, h := fg.Bounds().Dx(), fg.Bounds().Dy()
	fgSmall := thumbnail(fg)

	for attempt := 0; attempt < corpus.MaxAttempts; attempt++ {
		candidate, err := s.candidate(r, w, h)
		if err != nil {
			s.Logger.Debug("background candidate unavailable", "attempt", attempt, "err", err)
			continue
		}
		d := s.distance(fgSmall, thumbnail(candidate))
		if d >= s.DistanceThreshold {
			s.Logger.Debug("background accepted", "attempt", attempt, "distance", d)
			return candidate, true
		}
		s.Logger.Debug("background rejected", "attempt", attempt, "distance", d)
	}
	return nil, false
}

// Distance returns the histogram distance between fg and bg after both are
// scaled to the comparison thumbnail.
func (s *Scorer) Distance(fg, bg *image.NRGBA) float64 {
	return s.distance(thumbnail(fg), thumbnail(bg))
}

// candidate produces one w x h background: a noisy solid color with
// probability OneColorP, otherwise a random crop of a corpus image.
func (s *Scorer) candidate(r *rand.Rand, w, h int) (*image.NRGBA, error) {
	if rng.Chance(r, s.OneColorP) {
		return SolidNoise(r, w, h), nil
	}
	src, err := s.Picker.Pick(r)
	if err != nil {
		return nil, err
	}
	crop, ok := imaging.RandomCrop(r, src, w, h)
	if !ok {
		b := src.Bounds()
		return nil, fmt.Errorf("corpus image %dx%d too small for %dx%d", b.Dx(), b.Dy(), w, h)
	}
	return crop, nil
}

// SolidNoise returns an opaque w x h image of one random color with
// independent per-channel noise in [-10, 10].
func SolidNoise(r *rand.Rand, w, h int) *image.NRGBA {
	base := color.NRGBA{
		R: uint8(rng.Int(r, 0, 255)),
		G: uint8(rng.Int(r, 0, 255)),
		B: uint8(rng.Int(r, 0, 255)),
		A: 255,
	}
	img := imaging.New(w, h, base)
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := int(img.Pix[i+c]) + rng.Int(r, -noiseAmplitude, noiseAmplitude+1)
			img.Pix[i+c] = uint8(min(max(v, 0), 255))
		}
	}
	return img
}

func thumbnail(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == CompareWidth && b.Dy() == CompareHeight && b.Min == (image.Point{}) {
		return img
	}
	return imaging.ResizeCubic(img, CompareWidth, CompareHeight)
}

// distance compares two thumbnails of equal size.
//
// Ink pixels of fgSmall and non-ink pixels of bgSmall are binned into
// 1..NumColor; all other pixels fall into bin 0, which is left out. Both
// histograms are divided by the largest bin count of either histogram.
func (s *Scorer) distance(fgSmall, bgSmall *image.NRGBA) float64 {
	mask := imaging.AlphaMask(fgSmall)
	fgGray := imaging.GrayLevels(fgSmall)
	bgGray := imaging.GrayLevels(bgSmall)

	n := s.NumColor
	fgHist := make([]float64, n+1)
	bgHist := make([]float64, n+1)
	for i, ink := range mask {
		if ink {
			fgHist[s.bin(fgGray[i])]++
			bgHist[0]++
		} else {
			fgHist[0]++
			bgHist[s.bin(bgGray[i])]++
		}
	}

	var denom float64
	for i := 1; i <= n; i++ {
		denom = math.Max(denom, math.Max(fgHist[i], bgHist[i]))
	}
	if denom == 0 {
		return 0
	}

	var d float64
	for i := 1; i <= n; i++ {
		d += math.Abs(fgHist[i]-bgHist[i]) / denom
	}
	return d
}

// bin maps a gray level in [0, 1] to 1..NumColor.
func (s *Scorer) bin(g float64) int {
	b := int(math.Floor(g * float64(s.NumColor)))
	return 1 + min(max(b, 0), s.NumColor-1)
}
