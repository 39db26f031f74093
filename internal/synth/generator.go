package synth

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/textsynth/internal/augment"
	"github.com/ironsheep/textsynth/internal/background"
	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/writer"
)

// TextSource draws label texts.
type TextSource interface {
	Text(r *rand.Rand) string
}

// FontSource draws a font face for each text.
type FontSource interface {
	Random(r *rand.Rand) (*glyph.Face, error)
}

// Ink is the color glyphs are rendered in before augmentation.
var Ink = color.NRGBA{0, 0, 0, 255}

// Generator produces and stores samples for a number of texts.
type Generator struct {
	Texts      TextSource
	Fonts      FontSource
	Char       *augment.CharAugmenter
	Text       *augment.TextAugmenter
	Background *background.Blender
	Writer     writer.Writer

	// NumTexts is the number of texts drawn by Run.
	NumTexts int
	// Samples is the per-stage fan-out passed to TextImage.Samples.
	Samples [3]int

	Logger *log.Logger
}

// Stats summarizes a run.
type Stats struct {
	Texts   int
	Failed  int
	Samples int
}

// Run generates NumTexts texts. Failures of single texts are logged and
// counted; Run only returns early when ctx is done.
func (g *Generator) Run(ctx context.Context, r *rand.Rand) (Stats, error) {
	logger := g.logger()
	var stats Stats
	for i := 0; i < g.NumTexts; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		text := g.Texts.Text(r)
		stats.Texts++

		samples, err := g.Generate(r, text)
		if err == nil {
			err = g.Writer.WriteSamples(ctx, text, samples)
		}
		if err != nil {
			stats.Failed++
			logger.Error("text failed", "text", text, "err", err)
			continue
		}
		stats.Samples += len(samples)
		logger.Debug("text done", "index", i, "text", text, "samples", len(samples))
	}
	return stats, nil
}

// Generate renders text with a random font and returns its samples.
func (g *Generator) Generate(r *rand.Rand, text string) ([]*image.NRGBA, error) {
	face, err := g.Fonts.Random(r)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	defer face.Close()

	g.logger().Debug("rendering", "text", text, "font", face.Name(), "size", face.Size())
	glyphs, err := face.RenderText(text, Ink)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	ti, err := NewTextImage(glyphs, g.Char, g.Text, g.Background)
	if err != nil {
		return nil, err
	}
	return ti.Samples(r, g.Samples)
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		return log.New(io.Discard)
	}
	return g.Logger
}
