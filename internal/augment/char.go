package augment

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/layout"
	"github.com/ironsheep/textsynth/internal/rng"
)

// CharAugmenter distorts each character of a word separately.
type CharAugmenter struct {
	// Geometric runs first on every character, in random order.
	Geometric Pipeline
	// Custom runs afterwards, in declared order.
	Custom Pipeline
}

// Apply cuts word into full-height character crops at its box columns,
// augments every crop and lays the crops back out left to right.
//
// When the augmented crops differ in height, each is placed on a transparent
// canvas of the tallest height at a random vertical offset in [0, maxH-h).
// Crops of equal height share one offset. The word itself is not modified.
func (c *CharAugmenter) Apply(r *rand.Rand, word *layout.Word) (*image.NRGBA, error) {
	if len(word.Boxes) == 0 {
		return nil, layout.ErrEmpty
	}
	height := word.Height()

	crops := make([]*image.NRGBA, 0, len(word.Boxes))
	for i, box := range word.Boxes {
		crop, err := imaging.Crop(word.Image, box.Min.X, 0, box.Max.X, height)
		if err != nil {
			return nil, fmt.Errorf("char %d: %w", i, err)
		}
		if crop, err = c.Geometric.Run(r, crop); err != nil {
			return nil, fmt.Errorf("char %d: %w", i, err)
		}
		if crop, err = c.Custom.Run(r, crop); err != nil {
			return nil, fmt.Errorf("char %d: %w", i, err)
		}
		crops = append(crops, crop)
	}
	return mergeCrops(r, crops), nil
}

func mergeCrops(r *rand.Rand, crops []*image.NRGBA) *image.NRGBA {
	maxH := 0
	uniform := true
	for i, c := range crops {
		h := c.Bounds().Dy()
		if i > 0 && h != crops[0].Bounds().Dy() {
			uniform = false
		}
		if h > maxH {
			maxH = h
		}
	}
	if uniform {
		return imaging.ConcatHorizontal(crops)
	}

	offsets := make(map[int]int)
	placed := make([]*image.NRGBA, len(crops))
	for i, c := range crops {
		b := c.Bounds()
		off, ok := offsets[b.Dy()]
		if !ok {
			off = rng.Int(r, 0, maxH-b.Dy())
			offsets[b.Dy()] = off
		}
		canvas := imaging.Transparent(b.Dx(), maxH)
		imaging.Paste(canvas, c, 0, off)
		placed[i] = canvas
	}
	return imaging.ConcatHorizontal(placed)
}
