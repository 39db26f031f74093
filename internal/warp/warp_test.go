package warp

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func patternImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 11), uint8(x + y), 255})
		}
	}
	return img
}

func TestPerspective_Identity(t *testing.T) {
	src := patternImage(12, 8)
	out, err := Perspective(src, Identity(), 12, 8)
	if err != nil {
		t.Fatalf("Perspective failed: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			if out.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, out.NRGBAAt(x, y), src.NRGBAAt(x, y))
			}
		}
	}
}

func TestPerspective_Translate(t *testing.T) {
	src := patternImage(6, 6)
	out, err := Perspective(src, Translate(3, 2), 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.NRGBAAt(4, 3), src.NRGBAAt(1, 1); got != want {
		t.Errorf("shifted pixel: got %v, want %v", got, want)
	}
	if got := out.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("uncovered pixel should be transparent, got %v", got)
	}
}

func TestPerspective_Errors(t *testing.T) {
	src := patternImage(4, 4)
	if _, err := Perspective(src, Identity(), 0, 4); err == nil {
		t.Error("expected error for empty canvas")
	}
	if _, err := Perspective(src, Matrix3{}, 4, 4); err == nil {
		t.Error("expected error for singular homography")
	}
}

func TestRemap_IdentityAndBorders(t *testing.T) {
	src := patternImage(5, 3)
	w, h := 5, 3
	mapX := make([]float64, w*h)
	mapY := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mapX[y*w+x] = float64(x)
			mapY[y*w+x] = float64(y)
		}
	}
	out, err := Remap(src, mapX, mapY, w, h, BorderConstant)
	if err != nil {
		t.Fatal(err)
	}
	if out.NRGBAAt(3, 2) != src.NRGBAAt(3, 2) {
		t.Error("identity remap changed pixels")
	}

	// Sample one pixel left of the image.
	mapX[0] = -1
	tests := []struct {
		border Border
		want   color.NRGBA
	}{
		{BorderConstant, color.NRGBA{}},
		{BorderNearest, src.NRGBAAt(0, 0)},
		{BorderReflect, src.NRGBAAt(1, 0)},
		{BorderWrap, src.NRGBAAt(4, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.border.String(), func(t *testing.T) {
			out, err := Remap(src, mapX, mapY, w, h, tt.border)
			if err != nil {
				t.Fatal(err)
			}
			if got := out.NRGBAAt(0, 0); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemap_NaNAndSizeMismatch(t *testing.T) {
	src := patternImage(2, 2)
	out, err := Remap(src, []float64{math.NaN()}, []float64{0}, 1, 1, BorderNearest)
	if err != nil {
		t.Fatal(err)
	}
	if out.NRGBAAt(0, 0).A != 0 {
		t.Error("NaN coordinate should leave a transparent pixel")
	}
	if _, err := Remap(src, []float64{0}, []float64{0}, 2, 2, BorderConstant); err == nil {
		t.Error("expected error for short maps")
	}
}

func TestParseBorder(t *testing.T) {
	for _, name := range []string{"constant", "nearest", "reflect", "wrap"} {
		b, ok := ParseBorder(name)
		if !ok || b.String() != name {
			t.Errorf("ParseBorder(%q) = %v, %v", name, b, ok)
		}
	}
	if _, ok := ParseBorder("mirror-ish"); ok {
		t.Error("unknown border accepted")
	}
}

func TestAffine_IdentityKeepsSize(t *testing.T) {
	src := patternImage(9, 7)
	out := Affine(src, Identity())
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds: got %v", out.Bounds())
	}
	if got, want := out.NRGBAAt(4, 3), src.NRGBAAt(4, 3); got != want {
		t.Errorf("center pixel: got %v, want %v", got, want)
	}
}

func TestAffine_TranslateLeavesTransparentEdge(t *testing.T) {
	src := patternImage(9, 7)
	out := Affine(src, Translate(3, 0))
	if got := out.NRGBAAt(0, 3); got.A != 0 {
		t.Errorf("uncovered column should be transparent, got %v", got)
	}
	if got, want := out.NRGBAAt(6, 3), src.NRGBAAt(3, 3); got != want {
		t.Errorf("shifted pixel: got %v, want %v", got, want)
	}
}

func TestCubicWeight(t *testing.T) {
	if cubicWeight(0) != 1 || cubicWeight(1) != 0 || cubicWeight(2) != 0 {
		t.Error("cubic kernel must interpolate integer samples")
	}
	var sum float64
	for i := -1; i <= 2; i++ {
		sum += cubicWeight(0.3 - float64(i))
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %f", sum)
	}
}

func TestStore_ClampsAndRounds(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	store(dst, 0, 0, [4]float64{-3, 300, 127.4, 127.6})

	want := []uint8{0, 255, 127, 128}
	for c, v := range want {
		if dst.Pix[c] != v {
			t.Errorf("channel %d: got %d, want %d", c, dst.Pix[c], v)
		}
	}
}
