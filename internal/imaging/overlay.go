package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// BoxOverlay draws char bounding boxes over a copy of img.
//
// Each box is outlined with boxColorHex (default semi-transparent red when the
// color cannot be parsed) and, when showIndex is set, labelled with its
// position in the slice using a tiny built-in digit font. The source image is
// not modified.
func BoxOverlay(img image.Image, boxes []image.Rectangle, showIndex bool, boxColorHex string) *image.NRGBA {
	boxColor, err := ParseHexColor(boxColorHex)
	if err != nil {
		boxColor = color.NRGBA{255, 0, 0, 200}
	}

	bounds := img.Bounds()
	result := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	for _, box := range boxes {
		drawRect(result, box, boxColor)
	}

	if showIndex {
		labelColor := color.NRGBA{255, 255, 255, 255}
		bgColor := color.NRGBA{0, 0, 0, 180}
		for i, box := range boxes {
			drawLabel(result, box.Min.X+1, box.Min.Y+1, strconv.Itoa(i), labelColor, bgColor)
		}
	}

	return result
}

// drawRect outlines r (exclusive max) with a one pixel border, clipped to img.
func drawRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	bounds := img.Bounds()
	set := func(x, y int) {
		if image.Pt(x, y).In(bounds) {
			img.SetNRGBA(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}

// drawLabel draws a simple text label at the given position
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	// Simple 3x5 pixel font for digits and comma
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 6

	for dy := 0; dy < labelHeight; dy++ {
		for dx := 0; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(bounds) {
				img.SetNRGBA(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if image.Pt(px, py).In(bounds) {
						img.SetNRGBA(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
