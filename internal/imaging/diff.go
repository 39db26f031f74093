package imaging

import (
	"fmt"
	"image"
	"math"
)

// DiffResult summarizes how far two equally sized images are apart.
type DiffResult struct {
	// MeanAbsDiff is the mean absolute per-channel difference (0-255) over
	// all four channels.
	MeanAbsDiff float64 `json:"mean_abs_diff"`

	// PixelsDifferent counts pixels whose mean channel difference exceeds the
	// tolerance given to Compare.
	PixelsDifferent int `json:"pixels_different"`

	// TotalPixels is width * height.
	TotalPixels int `json:"total_pixels"`

	// Similarity is 1 - PixelsDifferent/TotalPixels.
	Similarity float64 `json:"similarity"`
}

// Compare measures the pixel difference between a and b.
// A pixel counts as different when the mean of its four channel differences
// exceeds tolerance.
func Compare(a, b *image.NRGBA, tolerance float64) (*DiffResult, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, fmt.Errorf("size mismatch: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	total := ab.Dx() * ab.Dy()
	if total == 0 {
		return &DiffResult{Similarity: 1}, nil
	}

	different := 0
	var sum float64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ai := a.PixOffset(ab.Min.X+x, ab.Min.Y+y)
			bi := b.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			var d int
			for c := 0; c < 4; c++ {
				d += absDiff(a.Pix[ai+c], b.Pix[bi+c])
			}
			sum += float64(d)
			if float64(d)/4.0 > tolerance {
				different++
			}
		}
	}

	return &DiffResult{
		MeanAbsDiff:     math.Round(sum/float64(total*4)*100) / 100,
		PixelsDifferent: different,
		TotalPixels:     total,
		Similarity:      math.Round((1.0-float64(different)/float64(total))*1000) / 1000,
	}, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
