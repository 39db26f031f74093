package augment

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/texture"
)

// TextAugmenter distorts and colors a whole word image.
type TextAugmenter struct {
	// Layout runs in declared order.
	Layout Pipeline
	// Painter and Mixer run after the layout pipeline. Either may be nil.
	Painter *texture.Painter
	Mixer   *texture.Mixer
}

// Apply runs the layout pipeline, the painter and the texture mixer on img.
func (t *TextAugmenter) Apply(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	out, err := t.Layout.Run(r, img)
	if err != nil {
		return nil, fmt.Errorf("text layout: %w", err)
	}
	if t.Painter != nil {
		out = t.Painter.Paint(r, out)
	}
	if t.Mixer != nil {
		out = t.Mixer.Mix(r, out)
	}
	return out, nil
}
