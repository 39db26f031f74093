package augment

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/rng"
	"github.com/ironsheep/textsynth/internal/warp"
)

// WrapText bends an image along a circular arc and rotates the result.
// Both angles are integer degrees drawn from half-open ranges.
type WrapText struct {
	base
	MinArcAngle    int
	MaxArcAngle    int
	MinRotateAngle int
	MaxRotateAngle int
}

// NewWrapText requires both ranges to be non-empty.
func NewWrapText(p float64, minArc, maxArc, minRotate, maxRotate int) (*WrapText, error) {
	const name = "WrapText"
	if err := checkP(name, p); err != nil {
		return nil, err
	}
	if minArc >= maxArc {
		return nil, invalid(name, "arc range [%d, %d) is empty", minArc, maxArc)
	}
	if minRotate >= maxRotate {
		return nil, invalid(name, "rotate range [%d, %d) is empty", minRotate, maxRotate)
	}
	return &WrapText{
		base:           base{P: p},
		MinArcAngle:    minArc,
		MaxArcAngle:    maxArc,
		MinRotateAngle: minRotate,
		MaxRotateAngle: maxRotate,
	}, nil
}

// Name implements Op.
func (*WrapText) Name() string { return "WrapText" }

// Angles draws the arc and rotate angles in degrees.
func (o *WrapText) Angles(r *rand.Rand) (arc, rotate int) {
	arc = rng.Int(r, o.MinArcAngle, o.MaxArcAngle)
	rotate = rng.Int(r, o.MinRotateAngle, o.MaxRotateAngle)
	return arc, rotate
}

func (o *WrapText) apply(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	arc, rotate := o.Angles(r)
	return Arc(img, float64(arc), float64(rotate))
}

// Arc bends src around a circle so that its width spans arcDeg degrees.
//
// The arc is centered at the top of the circle and then rotated clockwise by
// rotateDeg. The top edge of src lies on the outer radius w/arc + h/2, so the
// horizontal middle line keeps its length. The output is sized to the bent
// shape. A non-positive arc returns src unchanged; arcs beyond 360 degrees
// are capped.
func Arc(src *image.NRGBA, arcDeg, rotateDeg float64) (*image.NRGBA, error) {
	if arcDeg <= 0 {
		return src, nil
	}
	arcDeg = math.Min(arcDeg, 360)

	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	arc := arcDeg * math.Pi / 180
	center := -math.Pi/2 + rotateDeg*math.Pi/180
	rTop := w/arc + h/2
	rBottom := math.Max(rTop-h, 0)

	const steps = 64
	outline := make([][2]float64, 0, 2*(steps+1))
	for i := 0; i <= steps; i++ {
		a := center - arc/2 + arc*float64(i)/steps
		cos, sin := math.Cos(a), math.Sin(a)
		outline = append(outline,
			[2]float64{rTop * cos, rTop * sin},
			[2]float64{rBottom * cos, rBottom * sin})
	}
	box := warp.BoundingRect(outline).Inset(-1)
	ow, oh := box.Dx(), box.Dy()

	mapX := make([]float64, ow*oh)
	mapY := make([]float64, ow*oh)
	for y := 0; y < oh; y++ {
		for x := 0; x < ow; x++ {
			i := y*ow + x
			px := float64(box.Min.X+x) + 0.5
			py := float64(box.Min.Y+y) + 0.5

			d := math.Remainder(math.Atan2(py, px)-center, 2*math.Pi)
			u := (d/arc + 0.5) * w
			v := rTop - math.Hypot(px, py)
			if u < -1 || u > w+1 || v < -1 || v > h+1 {
				mapX[i], mapY[i] = math.NaN(), math.NaN()
				continue
			}
			mapX[i], mapY[i] = u-0.5, v-0.5
		}
	}
	return warp.Remap(src, mapX, mapY, ow, oh, warp.BorderConstant)
}
