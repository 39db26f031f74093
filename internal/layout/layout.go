// Package layout merges rendered glyphs into a single word image while
// keeping track of where each character sits.
package layout

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/imaging"
)

var (
	// ErrEmpty is returned when there is nothing to lay out.
	ErrEmpty = errors.New("no glyphs to lay out")

	// ErrGlyphOffset is returned when a glyph box does not start at x = 0.
	ErrGlyphOffset = errors.New("glyph box must start at x=0")

	// ErrHeightMismatch is returned when glyph canvases of one word differ in height.
	ErrHeightMismatch = errors.New("glyph canvas heights differ")
)

// Word is a horizontally concatenated run of glyphs.
//
// Boxes holds one box per glyph in reading order, in word coordinates. Each
// box's y-range lies within the image height.
type Word struct {
	Image *image.NRGBA
	Boxes []image.Rectangle
}

// Merge lays glyphs out left to right.
//
// Glyph canvases are concatenated at their full widths, so the font's side
// bearings survive as spacing. Box i is glyph i's box shifted right by the sum
// of the box widths of the glyphs before it. Merge is deterministic.
func Merge(glyphs []glyph.Glyph) (*Word, error) {
	if len(glyphs) == 0 {
		return nil, ErrEmpty
	}

	height := glyphs[0].Image.Bounds().Dy()
	images := make([]*image.NRGBA, 0, len(glyphs))
	boxes := make([]image.Rectangle, 0, len(glyphs))
	wordWidth := 0

	for i, g := range glyphs {
		if g.Box.Min.X != 0 {
			return nil, fmt.Errorf("glyph %d (%q): %w, got %d", i, g.Rune, ErrGlyphOffset, g.Box.Min.X)
		}
		if h := g.Image.Bounds().Dy(); h != height {
			return nil, fmt.Errorf("glyph %d (%q): %w: %d != %d", i, g.Rune, ErrHeightMismatch, h, height)
		}
		boxes = append(boxes, g.Box.Add(image.Pt(wordWidth, 0)))
		wordWidth += g.Box.Dx()
		images = append(images, g.Image)
	}

	return &Word{
		Image: imaging.ConcatHorizontal(images),
		Boxes: boxes,
	}, nil
}

// Copy returns a deep copy of w.
func (w *Word) Copy() *Word {
	return &Word{
		Image: imaging.Clone(w.Image),
		Boxes: append([]image.Rectangle(nil), w.Boxes...),
	}
}

// Width returns the word image width.
func (w *Word) Width() int { return w.Image.Bounds().Dx() }

// Height returns the word image height.
func (w *Word) Height() int { return w.Image.Bounds().Dy() }
