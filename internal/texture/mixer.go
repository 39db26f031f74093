package texture

import (
	"fmt"
	"image"
	"io"
	"math"
	"math/rand/v2"

	"github.com/anthonynsimon/bild/blend"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/textsynth/internal/corpus"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// BlendFunc combines a background layer with a foreground layer.
type BlendFunc func(bg, fg image.Image) *image.RGBA

// Mode is a named blend function.
type Mode struct {
	Name string
	Fn   BlendFunc
}

// Modes are the blend functions a Mixer chooses from.
var Modes = []Mode{
	{"addition", blend.Add},
	{"divide", blend.Divide},
	{"subtract", blend.Subtract},
	{"difference", blend.Difference},
	{"darken_only", blend.Darken},
	{"lighten_only", blend.Lighten},
}

// minOpacityPct is the lower bound of the opacity draw, in percent.
const minOpacityPct = 60

// Mixer blends texture crops into word images.
type Mixer struct {
	P          float64
	MaxOpacity float64
	Picker     corpus.Picker
	Logger     *log.Logger
}

// NewMixer validates and returns a mixer drawing textures from picker.
func NewMixer(p, maxOpacity float64, picker corpus.Picker, logger *log.Logger) (*Mixer, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("texture probability %v outside [0, 1]", p)
	}
	if maxOpacity < 0 || maxOpacity > 1 {
		return nil, fmt.Errorf("texture max opacity %v outside [0, 1]", maxOpacity)
	}
	if picker == nil {
		return nil, fmt.Errorf("texture mixer needs a picker")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Mixer{P: p, MaxOpacity: maxOpacity, Picker: picker, Logger: logger}, nil
}

// Opacity draws the layer opacity: an integer percentage in
// [60, maxOpacity*100], or maxOpacity itself when that is below 60%.
func (m *Mixer) Opacity(r *rand.Rand) float64 {
	hi := int(math.Round(m.MaxOpacity * 100))
	lo := minOpacityPct
	if hi < lo {
		lo = hi
	}
	return float64(rng.Int(r, lo, hi+1)) / 100
}

// Mix blends a random texture crop into img when the mixer fires.
//
// If no texture of exactly img's size can be cut within corpus.MaxAttempts
// picks, img is returned unchanged. The result always carries img's alpha.
func (m *Mixer) Mix(r *rand.Rand, img *image.NRGBA) *image.NRGBA {
	if !rng.Chance(r, m.P) {
		return img
	}
	b := img.Bounds()
	tex, ok := m.crop(r, b.Dx(), b.Dy())
	if !ok {
		m.Logger.Debug("no texture fits", "width", b.Dx(), "height", b.Dy())
		return img
	}
	mode := Modes[rng.Int(r, 0, len(Modes))]
	out, err := Blend(tex, img, mode.Fn, m.Opacity(r))
	if err != nil {
		m.Logger.Warn("texture blend failed", "mode", mode.Name, "err", err)
		return img
	}
	return out
}

func (m *Mixer) crop(r *rand.Rand, w, h int) (*image.NRGBA, bool) {
	for attempt := 0; attempt < corpus.MaxAttempts; attempt++ {
		src, err := m.Picker.Pick(r)
		if err != nil {
			m.Logger.Debug("texture pick failed", "attempt", attempt, "err", err)
			continue
		}
		if crop, ok := imaging.RandomCrop(r, src, w, h); ok {
			return crop, true
		}
	}
	return nil, false
}

// Blend layers fg over the texture with fn, mixes the result back into the
// texture at the given opacity and restores fg's alpha channel.
//
// Both images are handed to the blend functions as straight-alpha buffers so
// no premultiplication darkens antialiased glyph edges.
func Blend(texture, fg *image.NRGBA, fn BlendFunc, opacity float64) (*image.NRGBA, error) {
	tb, fb := texture.Bounds(), fg.Bounds()
	if tb.Dx() != fb.Dx() || tb.Dy() != fb.Dy() {
		return nil, fmt.Errorf("texture %dx%d does not match image %dx%d", tb.Dx(), tb.Dy(), fb.Dx(), fb.Dy())
	}
	tex := asRGBA(texture)
	blended := fn(tex, asRGBA(fg))
	mixed := blend.Opacity(tex, blended, opacity)

	out := &image.NRGBA{Pix: mixed.Pix, Stride: mixed.Stride, Rect: mixed.Rect}
	if err := imaging.SetAlpha(out, fg); err != nil {
		return nil, err
	}
	return out, nil
}

// asRGBA reinterprets the NRGBA buffer without converting it.
func asRGBA(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	if b.Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	return &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
}
