// Package config defines the TOML configuration of a synthesis run.
//
// A configuration file has five sections: [base] for the run itself,
// [char] and [text] for the augmentation pipelines, [background] for the
// background blender and [producer] for the text source. Augmentation
// pipelines are arrays of tables whose order is the pipeline order:
//
//	[[char.custom]]
//	type = "PadLeftRight"
//	p = 0.5
//	min_pad = 0.05
//	max_pad = 0.2
//
// Load decodes a file over Default, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration of a run.
type Config struct {
	Base       Base       `toml:"base"`
	Char       Char       `toml:"char"`
	Text       Text       `toml:"text"`
	Background Background `toml:"background"`
	Producer   Producer   `toml:"producer"`
}

// Base configures the generation loop and the sample sink.
type Base struct {
	// Root is the output directory for the dir sink and the preview
	// directory for the redis sink.
	Root string `toml:"root"`

	// Sink is "dir" or "redis".
	Sink        string `toml:"sink"`
	Format      string `toml:"format"`
	JPEGQuality int    `toml:"jpeg_quality"`

	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`

	NumUniqueText int    `toml:"num_unique_text"`
	Samples       [3]int `toml:"samples"`
	Seed          uint64 `toml:"seed"`

	Font Font `toml:"font"`
}

// Font selects the font pool.
type Font struct {
	Dir     string `toml:"dir"`
	MinSize int    `toml:"min_size"`
	MaxSize int    `toml:"max_size"`
}

// Augmentation is one pipeline entry. Type selects the primitive; only the
// keys of that primitive are read.
type Augmentation struct {
	Type string  `toml:"type"`
	P    float64 `toml:"p"`

	// PadLeftRight
	MinPad float64 `toml:"min_pad"`
	MaxPad float64 `toml:"max_pad"`

	// ResizeChar
	MinRatio float64 `toml:"min_ratio"`
	MaxRatio float64 `toml:"max_ratio"`
	MinW     int     `toml:"min_w"`
	MinH     int     `toml:"min_h"`

	// AffineTransform
	MaxRotate    int `toml:"max_rotate"`
	MaxTranslate int `toml:"max_translate"`

	// WrapText
	MinArcAngle    int `toml:"min_arc_angle"`
	MaxArcAngle    int `toml:"max_arc_angle"`
	MinRotateAngle int `toml:"min_rotate_angle"`
	MaxRotateAngle int `toml:"max_rotate_angle"`

	// Transformation3D
	MaxTheta int `toml:"max_theta"`
	MaxPhi   int `toml:"max_phi"`
	MaxGamma int `toml:"max_gamma"`

	// ElasticTransformation
	MinAlpha float64 `toml:"min_alpha"`
	MaxAlpha float64 `toml:"max_alpha"`
	MinSigma float64 `toml:"min_sigma"`
	MaxSigma float64 `toml:"max_sigma"`
	Mode     string  `toml:"mode"`
}

// Char configures the per-character pipelines.
type Char struct {
	// Geometric ops run in random order on every character crop.
	Geometric []Augmentation `toml:"geometric"`
	// Custom ops run afterwards in declared order.
	Custom []Augmentation `toml:"custom"`
}

// Text configures the word-level stages.
type Text struct {
	Layout  []Augmentation `toml:"layout"`
	Painter Painter        `toml:"painter"`
	Texture Texture        `toml:"texture"`
}

// Painter configures the glyph recoloring stage.
type Painter struct {
	P    float64 `toml:"p"`
	Mode string  `toml:"mode"`

	MinSaturation float64 `toml:"min_saturation"`
	MaxSaturation float64 `toml:"max_saturation"`
	MinValue      float64 `toml:"min_value"`
	MaxValue      float64 `toml:"max_value"`
}

// Texture configures the texture mixer. An empty Root disables it.
type Texture struct {
	P          float64 `toml:"p"`
	Root       string  `toml:"root"`
	Listing    string  `toml:"listing"`
	MaxOpacity float64 `toml:"max_opacity"`
}

// Background configures the background blender.
type Background struct {
	P                 float64 `toml:"p"`
	Root              string  `toml:"root"`
	Listing           string  `toml:"listing"`
	DistanceThreshold float64 `toml:"distance_threshold"`
	NumColor          int     `toml:"num_color"`
	OneColorP         float64 `toml:"one_color_p"`
}

// Producer configures the text source.
type Producer struct {
	Datasets            []string `toml:"datasets"`
	MaxLength           int      `toml:"max_length"`
	PWord               float64  `toml:"p_word"`
	PLower10            float64  `toml:"p_lower10"`
	PAllUpperCase       float64  `toml:"p_all_upper_case"`
	PFirstUpperCase     float64  `toml:"p_first_upper_case"`
	PAddNonAlphanumeric float64  `toml:"p_add_non_alphanumeric"`
}

// Default returns a configuration that runs without any corpus: no texture,
// solid-color backgrounds only and no augmentations.
func Default() Config {
	return Config{
		Base: Base{
			Root:          "out",
			Sink:          "dir",
			Format:        "jpg",
			JPEGQuality:   95,
			RedisAddr:     "localhost:6379",
			RedisPrefix:   "textsynth:",
			NumUniqueText: 100,
			Samples:       [3]int{1, 1, 1},
			Seed:          1,
			Font: Font{
				MinSize: 32,
				MaxSize: 64,
			},
		},
		Text: Text{
			Painter: Painter{
				P:             1,
				Mode:          "uniform",
				MinSaturation: 0.2,
				MaxSaturation: 1,
				MinValue:      0,
				MaxValue:      0.8,
			},
			Texture: Texture{
				P:          0.5,
				Listing:    "two-level",
				MaxOpacity: 0.9,
			},
		},
		Background: Background{
			P:                 1,
			Listing:           "flat",
			DistanceThreshold: 0.5, // on the 1..NumColor ink-bin scale
			NumColor:          8,
			OneColorP:         1,
		},
		Producer: Producer{
			MaxLength:           12,
			PWord:               0.8,
			PLower10:            0.3,
			PAllUpperCase:       0.2,
			PFirstUpperCase:     0.3,
			PAddNonAlphanumeric: 0.1,
		},
	}
}

// Load reads the TOML file at path over Default and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text over Default and validates the result.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
