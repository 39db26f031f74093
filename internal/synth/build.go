package synth

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/textsynth/internal/augment"
	"github.com/ironsheep/textsynth/internal/background"
	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/corpus"
	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/textgen"
	"github.com/ironsheep/textsynth/internal/writer"
)

// Stages holds the augmentation stages built from a configuration.
type Stages struct {
	Char       *augment.CharAugmenter
	Text       *augment.TextAugmenter
	Background *background.Blender
}

// BuildStages builds the char, text and background stages of cfg. Texture
// and background corpora share cache.
func BuildStages(cfg config.Config, cache *imaging.ImageCache, logger *log.Logger) (*Stages, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cache == nil {
		cache = imaging.NewImageCache()
	}

	char, err := augment.BuildChar(cfg.Char)
	if err != nil {
		return nil, err
	}

	var textures corpus.Picker
	if tc := cfg.Text.Texture; tc.Root != "" {
		p, err := corpus.Open(tc.Root, tc.Listing, cache)
		if err != nil {
			return nil, fmt.Errorf("texture corpus: %w", err)
		}
		logger.Debug("loaded texture corpus", "root", tc.Root, "images", p.Len())
		textures = p
	}
	text, err := augment.BuildText(cfg.Text, textures, logger)
	if err != nil {
		return nil, err
	}

	bc := cfg.Background
	var backgrounds corpus.Picker
	if bc.Root != "" {
		p, err := corpus.Open(bc.Root, bc.Listing, cache)
		if err != nil {
			return nil, fmt.Errorf("background corpus: %w", err)
		}
		logger.Debug("loaded background corpus", "root", bc.Root, "images", p.Len())
		backgrounds = p
	}
	scorer, err := background.NewScorer(bc.DistanceThreshold, bc.NumColor, bc.OneColorP, backgrounds, logger)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	blender, err := background.NewBlender(bc.P, scorer)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	return &Stages{Char: char, Text: text, Background: blender}, nil
}

// Build assembles a Generator from cfg, including its font pool, text
// producer and sample writer. The caller closes the writer.
func Build(ctx context.Context, cfg config.Config, logger *log.Logger) (*Generator, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fonts, err := glyph.NewPool(cfg.Base.Font.Dir, cfg.Base.Font.MinSize, cfg.Base.Font.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("fonts: %w", err)
	}
	logger.Debug("loaded font pool", "dir", cfg.Base.Font.Dir, "fonts", len(fonts.Paths()))

	pc := cfg.Producer
	texts, err := textgen.Load(pc.Datasets, textgen.Options{
		MaxLength:           pc.MaxLength,
		PWord:               pc.PWord,
		PLower10:            pc.PLower10,
		PAllUpperCase:       pc.PAllUpperCase,
		PFirstUpperCase:     pc.PFirstUpperCase,
		PAddNonAlphanumeric: pc.PAddNonAlphanumeric,
	})
	if err != nil {
		return nil, fmt.Errorf("producer: %w", err)
	}
	logger.Debug("loaded word lists", "lists", len(pc.Datasets), "words", texts.Len())

	stages, err := BuildStages(cfg, imaging.NewImageCache(), logger)
	if err != nil {
		return nil, err
	}

	w, err := writer.New(ctx, cfg.Base, logger)
	if err != nil {
		return nil, err
	}

	return &Generator{
		Texts:      texts,
		Fonts:      fonts,
		Char:       stages.Char,
		Text:       stages.Text,
		Background: stages.Background,
		Writer:     w,
		NumTexts:   cfg.Base.NumUniqueText,
		Samples:    cfg.Base.Samples,
		Logger:     logger,
	}, nil
}
