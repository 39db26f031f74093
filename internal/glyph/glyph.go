package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrMissingGlyph is returned when a face has no glyph for a rune.
var ErrMissingGlyph = errors.New("font has no glyph for rune")

// Glyph is one rendered character.
type Glyph struct {
	Rune rune

	// Image is the full glyph canvas, bounds starting at (0,0).
	Image *image.NRGBA

	// Box is the glyph's box in canvas coordinates: x from 0 to the advance
	// width, y from height-ascent to height.
	Box image.Rectangle
}

// Face is an OpenType face at a fixed pixel size.
type Face struct {
	face    font.Face
	name    string
	size    float64
	ascent  int
	descent int
}

// ParseFont parses TrueType or OpenType data. For font collections the
// first font is used.
func ParseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return coll.Font(0)
}

// LoadFont reads and parses a font file.
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Fallback returns Go Regular, the font used when no font file is named.
var Fallback = sync.OnceValues(func() (*opentype.Font, error) {
	return ParseFont(goregular.TTF)
})

// Open loads the font at path, or Fallback when path is empty.
func Open(path string) (*opentype.Font, error) {
	if path == "" {
		return Fallback()
	}
	return LoadFont(path)
}

// NewFace creates a face of f at size pixels (72 DPI). name is only used for
// logging and may be empty.
func NewFace(f *opentype.Font, size float64, name string) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	m := face.Metrics()
	return &Face{
		face:    face,
		name:    name,
		size:    size,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}, nil
}

// Name returns the name the face was created with.
func (f *Face) Name() string { return f.name }

// Size returns the face size in pixels.
func (f *Face) Size() float64 { return f.size }

// Ascent returns the distance from the top of the canvas to the baseline.
func (f *Face) Ascent() int { return f.ascent }

// Descent returns the distance from the baseline to the bottom of the canvas.
func (f *Face) Descent() int { return f.descent }

// Height returns the canvas height shared by all glyphs of the face.
func (f *Face) Height() int { return f.ascent + f.descent }

// Close releases the face.
func (f *Face) Close() error { return f.face.Close() }

// Render draws r in fill on a transparent canvas.
//
// The canvas is advance-width wide (at least one pixel) and Height() tall.
// The glyph's box starts at x = 0, as the layout engine requires.
func (f *Face) Render(r rune, fill color.NRGBA) (Glyph, error) {
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
	}
	width := adv.Ceil()
	if width < 1 {
		width = 1
	}
	height := f.Height()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: f.face,
		Dot:  fixed.P(0, f.ascent),
	}
	d.DrawString(string(r))

	return Glyph{
		Rune:  r,
		Image: img,
		Box:   image.Rect(0, height-f.ascent, width, height),
	}, nil
}

// RenderText renders every rune of text with f.
func (f *Face) RenderText(text string, fill color.NRGBA) ([]Glyph, error) {
	if text == "" {
		return nil, errors.New("empty text")
	}
	glyphs := make([]Glyph, 0, len(text))
	for _, r := range text {
		g, err := f.Render(r, fill)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}
