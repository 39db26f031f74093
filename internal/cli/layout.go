package cli

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/textsynth/internal/glyph"
	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/layout"
	"github.com/ironsheep/textsynth/internal/synth"
)

type layoutOpts struct {
	font      string
	size      float64
	text      string
	out       string
	showIndex bool
	boxColor  string
}

// newLayoutCmd creates the layout command, a debugging aid that writes the
// merged word with its char boxes drawn on.
func newLayoutCmd() *cobra.Command {
	opts := layoutOpts{size: 48}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Render a text and draw its char boxes",
		Example: `  textsynth layout --text "Merhaba" --out merhaba.png
  textsynth layout --font fonts/DejaVuSans.ttf --size 64 --text "ILIK" --out ilik.png --index`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.font, "font", "f", "", "font file (default Go Regular)")
	cmd.Flags().Float64VarP(&opts.size, "size", "s", opts.size, "font size in pixels")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "text to render")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output image (.png or .jpg)")
	cmd.Flags().BoolVar(&opts.showIndex, "index", false, "label each box with its index")
	cmd.Flags().StringVar(&opts.boxColor, "box-color", "#FF0000C8", "box outline color")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runLayout(cmd *cobra.Command, opts layoutOpts) error {
	logger := loggerFromContext(cmd.Context())

	f, err := glyph.Open(opts.font)
	if err != nil {
		return err
	}
	face, err := glyph.NewFace(f, opts.size, opts.font)
	if err != nil {
		return err
	}
	defer face.Close()

	glyphs, err := face.RenderText(opts.text, synth.Ink)
	if err != nil {
		return err
	}
	word, err := layout.Merge(glyphs)
	if err != nil {
		return err
	}
	for i, b := range word.Boxes {
		logger.Debug("box", "index", i, "rune", string(glyphs[i].Rune), "x1", b.Min.X, "y1", b.Min.Y, "x2", b.Max.X, "y2", b.Max.Y)
	}

	overlay := imaging.BoxOverlay(word.Image, word.Boxes, opts.showIndex, opts.boxColor)
	if err := writeImage(opts.out, overlay); err != nil {
		return err
	}
	logger.Info("Wrote layout", "path", opts.out, "width", word.Width(), "height", word.Height(), "boxes", len(word.Boxes))
	return nil
}

// writeImage encodes img to path in the format named by its extension.
// JPEG output is flattened onto white.
func writeImage(path string, img *image.NRGBA) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "jpg" || format == "jpeg" {
		img = imaging.Flatten(img, color.White)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := imaging.Encode(f, img, format, 95); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
