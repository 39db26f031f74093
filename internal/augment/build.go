package augment

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/corpus"
	"github.com/ironsheep/textsynth/internal/texture"
)

// Primitives accepted by each pipeline stage.
var (
	CharGeometricOps = []string{"ElasticTransformation"}
	CharCustomOps    = []string{"PadLeftRight", "ResizeChar"}
	TextLayoutOps    = []string{"WrapText", "AffineTransform", "Transformation3D"}
)

// FromConfig builds the primitive named by a.Type.
func FromConfig(a config.Augmentation) (Op, error) {
	switch a.Type {
	case "PadLeftRight":
		return NewPadLeftRight(a.P, a.MinPad, a.MaxPad)
	case "ResizeChar":
		return NewResizeChar(a.P, a.MinRatio, a.MaxRatio, a.MinW, a.MinH)
	case "AffineTransform":
		return NewAffineTransform(a.P, a.MaxRotate, a.MaxTranslate)
	case "WrapText":
		return NewWrapText(a.P, a.MinArcAngle, a.MaxArcAngle, a.MinRotateAngle, a.MaxRotateAngle)
	case "Transformation3D":
		return NewTransformation3D(a.P, a.MaxTheta, a.MaxPhi, a.MaxGamma)
	case "ElasticTransformation":
		return NewElasticTransformation(a.P, a.MinAlpha, a.MaxAlpha, a.MinSigma, a.MaxSigma, a.Mode)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAugmentation, a.Type)
}

// BuildPipeline builds a pipeline from entries, accepting only the
// primitive names in allowed.
func BuildPipeline(stage string, entries []config.Augmentation, allowed []string, randomOrder bool) (Pipeline, error) {
	p := Pipeline{Ops: make([]Op, 0, len(entries)), RandomOrder: randomOrder}
	for i, a := range entries {
		if !slices.Contains(allowed, a.Type) {
			return Pipeline{}, fmt.Errorf("%s[%d]: %w: %q not allowed here", stage, i, ErrUnknownAugmentation, a.Type)
		}
		op, err := FromConfig(a)
		if err != nil {
			return Pipeline{}, fmt.Errorf("%s[%d]: %w", stage, i, err)
		}
		p.Ops = append(p.Ops, op)
	}
	return p, nil
}

// BuildChar builds the per-character augmenter.
func BuildChar(cfg config.Char) (*CharAugmenter, error) {
	geometric, err := BuildPipeline("char.geometric", cfg.Geometric, CharGeometricOps, true)
	if err != nil {
		return nil, err
	}
	custom, err := BuildPipeline("char.custom", cfg.Custom, CharCustomOps, false)
	if err != nil {
		return nil, err
	}
	return &CharAugmenter{Geometric: geometric, Custom: custom}, nil
}

// BuildText builds the word-level augmenter. A nil textures picker disables
// the texture mixer.
func BuildText(cfg config.Text, textures corpus.Picker, logger *log.Logger) (*TextAugmenter, error) {
	layout, err := BuildPipeline("text.layout", cfg.Layout, TextLayoutOps, false)
	if err != nil {
		return nil, err
	}

	pc := cfg.Painter
	painter, err := texture.NewPainter(pc.P, pc.Mode,
		[2]float64{pc.MinSaturation, pc.MaxSaturation},
		[2]float64{pc.MinValue, pc.MaxValue})
	if err != nil {
		return nil, fmt.Errorf("text.painter: %w", err)
	}

	t := &TextAugmenter{Layout: layout, Painter: painter}
	if textures != nil {
		mixer, err := texture.NewMixer(cfg.Texture.P, cfg.Texture.MaxOpacity, textures, logger)
		if err != nil {
			return nil, fmt.Errorf("text.texture: %w", err)
		}
		t.Mixer = mixer
	}
	return t, nil
}
