package augment

import (
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/corpus"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		in   config.Augmentation
		want string
	}{
		{config.Augmentation{Type: "PadLeftRight", P: 0.5, MinPad: 0.1, MaxPad: 0.2}, "PadLeftRight"},
		{config.Augmentation{Type: "ResizeChar", P: 0.5, MinRatio: 1, MaxRatio: 2}, "ResizeChar"},
		{config.Augmentation{Type: "AffineTransform", P: 0.5, MaxRotate: 10, MaxTranslate: 2}, "AffineTransform"},
		{config.Augmentation{Type: "WrapText", P: 0.5, MinArcAngle: 10, MaxArcAngle: 30, MinRotateAngle: -5, MaxRotateAngle: 5}, "WrapText"},
		{config.Augmentation{Type: "Transformation3D", P: 0.5, MaxTheta: 10, MaxPhi: 10, MaxGamma: 5}, "Transformation3D"},
		{config.Augmentation{Type: "ElasticTransformation", P: 0.5, MinAlpha: 1, MaxAlpha: 2, MinSigma: 1, MaxSigma: 2, Mode: "nearest"}, "ElasticTransformation"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			op, err := FromConfig(tt.in)
			if err != nil {
				t.Fatalf("FromConfig failed: %v", err)
			}
			if op.Name() != tt.want || op.Probability() != 0.5 {
				t.Errorf("got %s p=%v", op.Name(), op.Probability())
			}
		})
	}

	if _, err := FromConfig(config.Augmentation{Type: "Blur"}); !errors.Is(err, ErrUnknownAugmentation) {
		t.Errorf("expected ErrUnknownAugmentation, got %v", err)
	}
}

func TestBuildChar_StageRestrictions(t *testing.T) {
	ok := config.Char{
		Geometric: []config.Augmentation{{Type: "ElasticTransformation", P: 1, MinAlpha: 1, MaxAlpha: 2, MinSigma: 1, MaxSigma: 2}},
		Custom:    []config.Augmentation{{Type: "PadLeftRight", P: 1, MinPad: 0.1, MaxPad: 0.2}},
	}
	c, err := BuildChar(ok)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Geometric.RandomOrder || c.Custom.RandomOrder {
		t.Error("geometric ops run in random order, custom ops in declared order")
	}

	bad := config.Char{Custom: []config.Augmentation{{Type: "WrapText", P: 1, MinArcAngle: 1, MaxArcAngle: 2, MaxRotateAngle: 1}}}
	if _, err := BuildChar(bad); !errors.Is(err, ErrUnknownAugmentation) {
		t.Errorf("expected ErrUnknownAugmentation, got %v", err)
	}
}

func TestBuildText(t *testing.T) {
	cfg := config.Default().Text
	cfg.Layout = []config.Augmentation{{Type: "AffineTransform", P: 1, MaxRotate: 5, MaxTranslate: 1}}

	ta, err := BuildText(cfg, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ta.Mixer != nil || ta.Painter == nil || ta.Layout.Len() != 1 {
		t.Errorf("unexpected augmenter %+v", ta)
	}

	picker, err := corpus.NewMemoryPicker(image.Image(imaging.Transparent(50, 50)))
	if err != nil {
		t.Fatal(err)
	}
	ta, err = BuildText(cfg, picker, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ta.Mixer == nil {
		t.Error("expected a mixer when textures are given")
	}

	cfg.Layout = []config.Augmentation{{Type: "PadLeftRight", P: 1, MinPad: 0.1, MaxPad: 0.2}}
	if _, err := BuildText(cfg, nil, nil); !errors.Is(err, ErrUnknownAugmentation) {
		t.Errorf("expected ErrUnknownAugmentation, got %v", err)
	}

	cfg.Layout = []config.Augmentation{{Type: "AffineTransform", P: 1, MaxRotate: -1}}
	if _, err := BuildText(cfg, nil, nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestBuild_ExampleConfig(t *testing.T) {
	cfg, err := config.Load("../../configs/textsynth.toml")
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}

	char, err := BuildChar(cfg.Char)
	if err != nil {
		t.Fatalf("BuildChar failed: %v", err)
	}
	if char.Geometric.Len() != 1 || char.Custom.Len() != 2 {
		t.Errorf("char pipelines: got %d geometric and %d custom ops", char.Geometric.Len(), char.Custom.Len())
	}

	// Every char op in the example must be able to run on narrow crops.
	word := createWord(t, []int{20, 20, 20, 20, 20, 20}, 40)
	r := rng.New(7)
	failed := 0
	for i := 0; i < 500; i++ {
		if _, err := char.Apply(r, word); err != nil {
			if !errors.Is(err, ErrZeroPad) {
				t.Fatalf("run %d: unexpected error: %v", i, err)
			}
			failed++
		}
	}
	if failed != 0 {
		t.Errorf("zero-pad failures: %d of 500 words", failed)
	}

	text, err := BuildText(cfg.Text, nil, nil)
	if err != nil {
		t.Fatalf("BuildText failed: %v", err)
	}
	if text.Layout.Len() != 3 {
		t.Errorf("text layout: got %d ops, want 3", text.Layout.Len())
	}
}
