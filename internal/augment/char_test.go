package augment

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/layout"
	"github.com/ironsheep/textsynth/internal/rng"
)

func createWord(t *testing.T, widths []int, h int) *layout.Word {
	t.Helper()
	total := 0
	for _, w := range widths {
		total += w
	}
	img := imaging.New(total, h, color.NRGBA{0, 0, 0, 255})
	boxes := make([]image.Rectangle, 0, len(widths))
	x := 0
	for _, w := range widths {
		boxes = append(boxes, image.Rect(x, 2, x+w, h))
		x += w
	}
	return &layout.Word{Image: img, Boxes: boxes}
}

func TestCharAugmenter_EmptyPipelinesKeepWord(t *testing.T) {
	word := createWord(t, []int{5, 7, 4}, 12)
	c := &CharAugmenter{}
	out, err := c.Apply(rng.New(1), word)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != word.Image.Bounds() {
		t.Fatalf("bounds %v, want %v", out.Bounds(), word.Image.Bounds())
	}
	for i := range out.Pix {
		if out.Pix[i] != word.Image.Pix[i] {
			t.Fatal("pixels changed with empty pipelines")
		}
	}
	if out == word.Image {
		t.Error("expected a new image")
	}
}

func TestCharAugmenter_PadWidensEveryChar(t *testing.T) {
	pad, _ := NewPadLeftRight(1, 0.5, 0.6)
	c := &CharAugmenter{Custom: Pipeline{Ops: []Op{pad}}}
	word := createWord(t, []int{10, 10}, 8)
	out, err := c.Apply(rng.New(2), word)
	if err != nil {
		t.Fatal(err)
	}
	// Each char gains 5 or 6 columns per side.
	if w := out.Bounds().Dx(); w < 40 || w > 44 {
		t.Errorf("width %d, want [40, 44]", w)
	}
	if out.Bounds().Dy() != 8 {
		t.Errorf("height %d, want 8", out.Bounds().Dy())
	}
}

func TestMergeCrops_MixedHeights(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	crops := []*image.NRGBA{
		imaging.New(3, 10, black),
		imaging.New(4, 6, black),
		imaging.New(2, 6, black),
	}
	out := mergeCrops(rng.New(5), crops)
	if out.Bounds().Dx() != 9 || out.Bounds().Dy() != 10 {
		t.Fatalf("merged size %v, want 9x10", out.Bounds())
	}
	// Crops of equal height share one vertical offset.
	top := func(x int) int {
		for y := 0; y < 10; y++ {
			if out.NRGBAAt(x, y).A != 0 {
				return y
			}
		}
		return -1
	}
	if top(3) != top(7) {
		t.Errorf("equal-height crops placed at %d and %d", top(3), top(7))
	}
	if top(3) < 0 || top(3) >= 4 {
		t.Errorf("offset %d outside [0, 4)", top(3))
	}
}

func TestCharAugmenter_NoBoxes(t *testing.T) {
	word := &layout.Word{Image: imaging.Transparent(4, 4)}
	if _, err := (&CharAugmenter{}).Apply(rng.New(1), word); !errors.Is(err, layout.ErrEmpty) {
		t.Errorf("expected layout.ErrEmpty, got %v", err)
	}
}

func TestTextAugmenter_NilStages(t *testing.T) {
	src := createPatternImage(t, 8, 8)
	ta := &TextAugmenter{}
	out, err := ta.Apply(rng.New(1), src)
	if err != nil {
		t.Fatal(err)
	}
	if out != src {
		t.Error("expected the input back with no stages")
	}
}
