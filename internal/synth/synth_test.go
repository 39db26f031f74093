package synth

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/textsynth/internal/augment"
	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/rng"
)

// createGlyph returns a w x h glyph whose ink fills its box.
func createGlyph(t *testing.T, r rune, w, h, top int) glyph.Glyph {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := top; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, uint8(100 + (x+y)%150)})
		}
	}
	return glyph.Glyph{Rune: r, Image: img, Box: image.Rect(0, top, w, h)}
}

// zeroConfig disables every random stage.
func zeroConfig() config.Config {
	cfg := config.Default()
	cfg.Text.Painter.P = 0
	cfg.Text.Texture.P = 0
	cfg.Background.P = 0
	return cfg
}

func buildZeroStages(t *testing.T) *Stages {
	t.Helper()
	stages, err := BuildStages(zeroConfig(), nil, nil)
	if err != nil {
		t.Fatalf("BuildStages failed: %v", err)
	}
	return stages
}

func TestTextImage_DisabledStagesKeepGlyph(t *testing.T) {
	g := createGlyph(t, 'A', 40, 50, 5)
	stages := buildZeroStages(t)

	ti, err := NewTextImage([]glyph.Glyph{g}, stages.Char, stages.Text, stages.Background)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := ti.Samples(rng.New(1), [3]int{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	s := samples[0]
	if s.Bounds() != g.Image.Bounds() {
		t.Fatalf("sample bounds %v, want %v", s.Bounds(), g.Image.Bounds())
	}
	for y := 0; y < 50; y++ {
		for x := 0; x < 40; x++ {
			want := g.Image.NRGBAAt(x, y)
			if want.A == 0 {
				continue
			}
			if got := s.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if s == g.Image {
		t.Error("sample must not alias the rendered glyph")
	}
}

func TestTextImage_RenderedGlyph(t *testing.T) {
	face := newTestFace(t)
	glyphs, err := face.RenderText("A", Ink)
	if err != nil {
		t.Fatal(err)
	}
	stages := buildZeroStages(t)
	ti, err := NewTextImage(glyphs, stages.Char, stages.Text, stages.Background)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := ti.Samples(rng.New(2), [3]int{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := glyphs[0].Image
	if len(samples) != 1 || samples[0].Bounds() != want.Bounds() {
		t.Fatalf("unexpected samples %d", len(samples))
	}
	for i := range want.Pix {
		if samples[0].Pix[i] != want.Pix[i] {
			t.Fatalf("byte %d differs", i)
		}
	}
}

func TestTextImage_FanOut(t *testing.T) {
	glyphs := []glyph.Glyph{createGlyph(t, 'a', 8, 12, 2), createGlyph(t, 'b', 6, 12, 2)}
	cfg := config.Default()
	cfg.Text.Layout = []config.Augmentation{{Type: "AffineTransform", P: 1, MaxRotate: 10, MaxTranslate: 1}}
	stages, err := BuildStages(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ti, err := NewTextImage(glyphs, stages.Char, stages.Text, stages.Background)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := ti.Samples(rng.New(3), [3]int{2, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 12 {
		t.Fatalf("expected 12 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s.Bounds().Dx() != 14 || s.Bounds().Dy() != 12 {
			t.Errorf("sample %d has size %v", i, s.Bounds())
		}
	}
}

func TestTextImage_Errors(t *testing.T) {
	if _, err := NewTextImage(nil, nil, nil, nil); err == nil {
		t.Error("expected layout error for no glyphs")
	}

	pad, err := augment.NewPadLeftRight(1, 0, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	char := &augment.CharAugmenter{Custom: augment.Pipeline{Ops: []augment.Op{pad}}}
	ti, err := NewTextImage([]glyph.Glyph{createGlyph(t, 'x', 10, 10, 0)}, char, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var sampleErr error
	for seed := uint64(0); seed < 20 && sampleErr == nil; seed++ {
		_, sampleErr = ti.Samples(rng.New(seed), [3]int{1, 1, 1})
	}
	if !errors.Is(sampleErr, augment.ErrZeroPad) {
		t.Errorf("expected ErrZeroPad to propagate, got %v", sampleErr)
	}
}

type fixedTexts []string

func (f *fixedTexts) Text(*rand.Rand) string {
	s := (*f)[0]
	*f = (*f)[1:]
	return s
}

type testFonts struct{}

func (f testFonts) Random(*rand.Rand) (*glyph.Face, error) {
	font, err := glyph.ParseFont(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return glyph.NewFace(font, 24, "goregular")
}

type recordingWriter struct {
	texts   []string
	samples int
	err     error
}

func (w *recordingWriter) WriteSamples(_ context.Context, text string, samples []*image.NRGBA) error {
	if w.err != nil {
		return w.err
	}
	w.texts = append(w.texts, text)
	w.samples += len(samples)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func newTestFace(t *testing.T) *glyph.Face {
	t.Helper()
	face, err := testFonts{}.Random(nil)
	if err != nil {
		t.Fatalf("failed to create face: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func TestGenerator_Run(t *testing.T) {
	stages := buildZeroStages(t)
	texts := fixedTexts{"kedi", "\U0001F600", "42"}
	w := &recordingWriter{}
	g := &Generator{
		Texts:      &texts,
		Fonts:      testFonts{},
		Char:       stages.Char,
		Text:       stages.Text,
		Background: stages.Background,
		Writer:     w,
		NumTexts:   3,
		Samples:    [3]int{1, 2, 1},
	}

	stats, err := g.Run(context.Background(), rng.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Texts != 3 || stats.Failed != 1 || stats.Samples != 4 {
		t.Errorf("stats = %+v, want 3 texts, 1 failed, 4 samples", stats)
	}
	if len(w.texts) != 2 || w.texts[0] != "kedi" || w.texts[1] != "42" {
		t.Errorf("written texts = %v", w.texts)
	}
}

func TestGenerator_WriterErrorsAreCounted(t *testing.T) {
	stages := buildZeroStages(t)
	texts := fixedTexts{"a", "b"}
	g := &Generator{
		Texts:    &texts,
		Fonts:    testFonts{},
		Char:     stages.Char,
		Writer:   &recordingWriter{err: errors.New("disk full")},
		NumTexts: 2,
		Samples:  [3]int{1, 1, 1},
	}
	stats, err := g.Run(context.Background(), rng.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 2 || stats.Samples != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGenerator_Canceled(t *testing.T) {
	texts := fixedTexts{"a"}
	g := &Generator{Texts: &texts, Fonts: testFonts{}, Writer: &recordingWriter{}, NumTexts: 1, Samples: [3]int{1, 1, 1}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := g.Run(ctx, rng.New(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if stats.Texts != 0 {
		t.Errorf("no text should be drawn after cancellation, got %d", stats.Texts)
	}
}
