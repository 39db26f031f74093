package synth

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/augment"
	"github.com/ironsheep/textsynth/internal/background"
	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/layout"
)

// TextImage is one laid-out word and the stages that turn it into samples.
// Any stage may be nil, in which case it passes images through.
type TextImage struct {
	Word       *layout.Word
	Char       *augment.CharAugmenter
	Text       *augment.TextAugmenter
	Background *background.Blender
}

// NewTextImage lays glyphs out into a word.
func NewTextImage(glyphs []glyph.Glyph, char *augment.CharAugmenter, text *augment.TextAugmenter, bg *background.Blender) (*TextImage, error) {
	word, err := layout.Merge(glyphs)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return &TextImage{Word: word, Char: char, Text: text, Background: bg}, nil
}

// Samples returns n[0]*n[1]*n[2] samples in stage order.
func (t *TextImage) Samples(r *rand.Rand, n [3]int) ([]*image.NRGBA, error) {
	for i, v := range n {
		if v < 0 {
			return nil, fmt.Errorf("sample count %d is negative: %d", i, v)
		}
	}

	samples := make([]*image.NRGBA, 0, n[0]*n[1]*n[2])
	for i := 0; i < n[0]; i++ {
		charImg, err := t.charStage(r)
		if err != nil {
			return nil, fmt.Errorf("char augmentation: %w", err)
		}
		for j := 0; j < n[1]; j++ {
			textImg, err := t.textStage(r, imaging.Clone(charImg))
			if err != nil {
				return nil, err
			}
			for k := 0; k < n[2]; k++ {
				sample, err := t.backgroundStage(r, imaging.Clone(textImg))
				if err != nil {
					return nil, fmt.Errorf("background: %w", err)
				}
				samples = append(samples, sample)
			}
		}
	}
	return samples, nil
}

func (t *TextImage) charStage(r *rand.Rand) (*image.NRGBA, error) {
	word := t.Word.Copy()
	if t.Char == nil {
		return word.Image, nil
	}
	return t.Char.Apply(r, word)
}

func (t *TextImage) textStage(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	if t.Text == nil {
		return img, nil
	}
	return t.Text.Apply(r, img)
}

func (t *TextImage) backgroundStage(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	if t.Background == nil {
		return img, nil
	}
	return t.Background.Blend(r, img)
}
