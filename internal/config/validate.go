package config

import "fmt"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func checkP(name string, p float64) error {
	if p < 0 || p > 1 {
		return invalid("%s must be in [0, 1], got %v", name, p)
	}
	return nil
}

// Validate checks probabilities, ranges and enumerations. Augmentation
// parameters are checked by the pipeline builders, which know each primitive.
func (c Config) Validate() error {
	b := c.Base
	switch b.Sink {
	case "dir", "redis":
	default:
		return invalid("base.sink must be dir or redis, got %q", b.Sink)
	}
	switch b.Format {
	case "jpg", "png":
	default:
		return invalid("base.format must be jpg or png, got %q", b.Format)
	}
	if b.JPEGQuality < 1 || b.JPEGQuality > 100 {
		return invalid("base.jpeg_quality must be in [1, 100], got %d", b.JPEGQuality)
	}
	if b.NumUniqueText < 0 {
		return invalid("base.num_unique_text must not be negative")
	}
	for i, n := range b.Samples {
		if n < 1 {
			return invalid("base.samples[%d] must be positive, got %d", i, n)
		}
	}
	if b.Font.MinSize < 1 || b.Font.MaxSize <= b.Font.MinSize {
		return invalid("base.font size range [%d, %d) is empty", b.Font.MinSize, b.Font.MaxSize)
	}

	for _, list := range [][]Augmentation{c.Char.Geometric, c.Char.Custom, c.Text.Layout} {
		for i, a := range list {
			if a.Type == "" {
				return invalid("augmentation %d has no type", i)
			}
			if err := checkP(a.Type+".p", a.P); err != nil {
				return err
			}
		}
	}

	p := c.Text.Painter
	if err := checkP("text.painter.p", p.P); err != nil {
		return err
	}
	switch p.Mode {
	case "uniform", "hsv":
	default:
		return invalid("text.painter.mode must be uniform or hsv, got %q", p.Mode)
	}
	if p.MinSaturation < 0 || p.MaxSaturation > 1 || p.MinSaturation > p.MaxSaturation {
		return invalid("text.painter saturation range [%v, %v] is invalid", p.MinSaturation, p.MaxSaturation)
	}
	if p.MinValue < 0 || p.MaxValue > 1 || p.MinValue > p.MaxValue {
		return invalid("text.painter value range [%v, %v] is invalid", p.MinValue, p.MaxValue)
	}

	t := c.Text.Texture
	if err := checkP("text.texture.p", t.P); err != nil {
		return err
	}
	if err := checkP("text.texture.max_opacity", t.MaxOpacity); err != nil {
		return err
	}
	if err := checkListing("text.texture.listing", t.Listing); err != nil {
		return err
	}

	bg := c.Background
	if err := checkP("background.p", bg.P); err != nil {
		return err
	}
	if err := checkP("background.one_color_p", bg.OneColorP); err != nil {
		return err
	}
	if err := checkListing("background.listing", bg.Listing); err != nil {
		return err
	}
	if bg.NumColor < 1 {
		return invalid("background.num_color must be positive, got %d", bg.NumColor)
	}
	if bg.DistanceThreshold < 0 {
		return invalid("background.distance_threshold must not be negative")
	}
	if bg.Root == "" && bg.OneColorP < 1 {
		return invalid("background.root is required unless one_color_p is 1")
	}

	pr := c.Producer
	if pr.MaxLength < 1 {
		return invalid("producer.max_length must be positive, got %d", pr.MaxLength)
	}
	for name, v := range map[string]float64{
		"producer.p_word":                 pr.PWord,
		"producer.p_lower10":              pr.PLower10,
		"producer.p_all_upper_case":       pr.PAllUpperCase,
		"producer.p_first_upper_case":     pr.PFirstUpperCase,
		"producer.p_add_non_alphanumeric": pr.PAddNonAlphanumeric,
	} {
		if err := checkP(name, v); err != nil {
			return err
		}
	}
	return nil
}

func checkListing(name, listing string) error {
	switch listing {
	case "flat", "two-level":
		return nil
	}
	return invalid("%s must be flat or two-level, got %q", name, listing)
}
