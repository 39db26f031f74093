package texture

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/ironsheep/textsynth/internal/corpus"
	"github.com/ironsheep/textsynth/internal/rng"
)

func createTexture(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 3), uint8(y * 5), 128, 255})
		}
	}
	return img
}

type failingPicker struct{ calls int }

func (p *failingPicker) Pick(*rand.Rand) (image.Image, error) {
	p.calls++
	return nil, errors.New("unreadable")
}

func newTestMixer(t *testing.T, p float64, textures ...image.Image) *Mixer {
	t.Helper()
	picker, err := corpus.NewMemoryPicker(textures...)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMixer(p, 0.9, picker, nil)
	if err != nil {
		t.Fatalf("NewMixer failed: %v", err)
	}
	return m
}

func TestNewMixer_Validation(t *testing.T) {
	picker, _ := corpus.NewMemoryPicker(createTexture(4, 4))
	if _, err := NewMixer(1.5, 0.9, picker, nil); err == nil {
		t.Error("expected error for p > 1")
	}
	if _, err := NewMixer(1, 1.2, picker, nil); err == nil {
		t.Error("expected error for opacity > 1")
	}
	if _, err := NewMixer(1, 0.9, nil, nil); err == nil {
		t.Error("expected error for nil picker")
	}
}

func TestMixer_PreservesAlpha(t *testing.T) {
	m := newTestMixer(t, 1, createTexture(80, 60))
	src := createGlyphImage(30, 20)
	r := rng.New(21)

	for i := 0; i < 50; i++ {
		out := m.Mix(r, src)
		for y := 0; y < 20; y++ {
			for x := 0; x < 30; x++ {
				if out.NRGBAAt(x, y).A != src.NRGBAAt(x, y).A {
					t.Fatalf("iteration %d: alpha changed at (%d,%d)", i, x, y)
				}
			}
		}
	}
}

func TestBlend_AllModesPreserveAlpha(t *testing.T) {
	tex := createTexture(30, 20)
	fg := createGlyphImage(30, 20)
	for _, mode := range Modes {
		t.Run(mode.Name, func(t *testing.T) {
			out, err := Blend(tex, fg, mode.Fn, 0.75)
			if err != nil {
				t.Fatal(err)
			}
			for i := 3; i < len(out.Pix); i += 4 {
				if out.Pix[i] != fg.Pix[i] {
					t.Fatalf("alpha differs at byte %d", i)
				}
			}
		})
	}
}

func TestBlend_DarkenFullOpacity(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{100, 100, 100, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{100, 100, 100, 255})
	fg := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	fg.SetNRGBA(0, 0, color.NRGBA{50, 200, 50, 255})

	out, err := Blend(tex, fg, Modes[4].Fn, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := out.NRGBAAt(0, 0)
	if absDiff(got.R, 50) > 1 || absDiff(got.G, 100) > 1 {
		t.Errorf("darken: got %v, want ~{50 100 50}", got)
	}
	// Transparent foreground pixels show the texture in RGB but stay transparent.
	if got := out.NRGBAAt(1, 0); got.A != 0 || absDiff(got.R, 100) > 1 {
		t.Errorf("transparent pixel: got %v", got)
	}
}

func TestBlend_SizeMismatch(t *testing.T) {
	if _, err := Blend(createTexture(3, 3), createTexture(4, 3), Modes[0].Fn, 1); err == nil {
		t.Error("expected size error")
	}
}

func TestMixer_NoFittingTexture(t *testing.T) {
	m := newTestMixer(t, 1, createTexture(10, 10))
	src := createGlyphImage(30, 20)
	if out := m.Mix(rng.New(2), src); out != src {
		t.Error("image should pass through when no texture fits")
	}
}

func TestMixer_PickErrorsConsumeAttempts(t *testing.T) {
	picker := &failingPicker{}
	m, err := NewMixer(1, 0.9, picker, nil)
	if err != nil {
		t.Fatal(err)
	}
	src := createGlyphImage(8, 8)
	if out := m.Mix(rng.New(2), src); out != src {
		t.Error("image should pass through when every pick fails")
	}
	if picker.calls != corpus.MaxAttempts {
		t.Errorf("picks: got %d, want %d", picker.calls, corpus.MaxAttempts)
	}
}

func TestMixer_Opacity(t *testing.T) {
	m := newTestMixer(t, 1, createTexture(4, 4))
	r := rng.New(9)
	for i := 0; i < 500; i++ {
		o := m.Opacity(r)
		if o < 0.6 || o > 0.9 {
			t.Fatalf("opacity %v outside [0.6, 0.9]", o)
		}
	}

	m.MaxOpacity = 0.4
	if o := m.Opacity(r); o != 0.4 {
		t.Errorf("low max opacity: got %v, want 0.4", o)
	}
}

func TestMixer_NeverFires(t *testing.T) {
	m := newTestMixer(t, 0, createTexture(80, 60))
	src := createGlyphImage(30, 20)
	if out := m.Mix(rng.New(1), src); out != src {
		t.Error("mixer with p=0 should return its input")
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
