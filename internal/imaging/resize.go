package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Clone returns a deep NRGBA copy of img with bounds starting at (0,0).
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// New returns a w x h canvas filled with fill.
func New(w, h int, fill color.Color) *image.NRGBA {
	return imaging.New(w, h, fill)
}

// Transparent returns a fully transparent w x h canvas.
func Transparent(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// ResizeNearest scales img to w x h using nearest-neighbor sampling.
func ResizeNearest(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.NearestNeighbor)
}

// ResizeCubic scales img to w x h using Catmull-Rom cubic sampling.
func ResizeCubic(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.CatmullRom)
}

// ConcatHorizontal places images side by side from left to right.
// All images must share the same height; the result has that height and the
// summed width.
func ConcatHorizontal(images []*image.NRGBA) *image.NRGBA {
	width, height := 0, 0
	for _, img := range images {
		width += img.Bounds().Dx()
		if h := img.Bounds().Dy(); h > height {
			height = h
		}
	}

	dst := Transparent(width, height)
	x := 0
	for _, img := range images {
		Paste(dst, img, x, 0)
		x += img.Bounds().Dx()
	}
	return dst
}

// Paste copies src into dst with its top-left corner at (x, y), replacing the
// destination pixels (no blending). Pixels falling outside dst are dropped.
func Paste(dst *image.NRGBA, src *image.NRGBA, x, y int) {
	sb := src.Bounds()
	db := dst.Bounds()
	for sy := 0; sy < sb.Dy(); sy++ {
		dy := y + sy
		if dy < db.Min.Y || dy >= db.Max.Y {
			continue
		}
		for sx := 0; sx < sb.Dx(); sx++ {
			dx := x + sx
			if dx < db.Min.X || dx >= db.Max.X {
				continue
			}
			si := src.PixOffset(sb.Min.X+sx, sb.Min.Y+sy)
			di := dst.PixOffset(dx, dy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
}
