package augment

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/ironsheep/textsynth/internal/rng"
	"github.com/ironsheep/textsynth/internal/warp"
)

// maxProjectionScale caps the projected canvas relative to the source
// diagonal. Rotations that bring a corner close to the camera plane blow
// the canvas up and are rejected instead.
const maxProjectionScale = 8

// Transformation3D rotates an image in 3D and projects it back onto the
// image plane.
//
// Angles are integer degrees in [-max, max). Each axis is independently held
// at 0 when a uniform draw falls at or below sqrt(p)/2.
type Transformation3D struct {
	base
	MaxTheta int
	MaxPhi   int
	MaxGamma int
}

// NewTransformation3D requires non-negative bounds below 90 degrees.
func NewTransformation3D(p float64, maxTheta, maxPhi, maxGamma int) (*Transformation3D, error) {
	const name = "Transformation3D"
	if err := checkP(name, p); err != nil {
		return nil, err
	}
	for _, m := range []int{maxTheta, maxPhi, maxGamma} {
		if m < 0 || m >= 90 {
			return nil, invalid(name, "angle bounds must be in [0, 90), got %d", m)
		}
	}
	return &Transformation3D{base: base{P: p}, MaxTheta: maxTheta, MaxPhi: maxPhi, MaxGamma: maxGamma}, nil
}

// Name implements Op.
func (*Transformation3D) Name() string { return "Transformation3D" }

// Angles draws the rotations about the X, Y and Z axes in degrees.
func (o *Transformation3D) Angles(r *rand.Rand) (theta, phi, gamma int) {
	gate := math.Sqrt(o.P) / 2
	draw := func(max int) int {
		if r.Float64() <= gate {
			return 0
		}
		return rng.Int(r, -max, max)
	}
	theta = draw(o.MaxTheta)
	phi = draw(o.MaxPhi)
	gamma = draw(o.MaxGamma)
	return theta, phi, gamma
}

func (o *Transformation3D) apply(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	theta, phi, gamma := o.Angles(r)
	return Rotate3D(img, radians(theta), radians(phi), radians(gamma))
}

func radians(deg int) float64 {
	return float64(deg) * math.Pi / 180
}

// Focal returns the focal length for a w x h image rotated by gamma radians
// about the optical axis: d / (2 sin gamma), or d / 2 when sin gamma is 0,
// where d is the image diagonal.
func Focal(w, h int, gamma float64) float64 {
	d := math.Hypot(float64(h), float64(w))
	if s := math.Sin(gamma); s != 0 {
		return d / (2 * s)
	}
	return d / 2
}

// Homography returns H = A2 · T · R · A1 for a w x h image.
//
// A1 lifts pixel coordinates onto the z = 0 plane centered on the image
// middle, R = RX · RY · RZ rotates by theta, phi and gamma radians, T moves
// the plane dz along the optical axis and A2 projects back with focal length
// f and the image middle as principal point. With all angles zero and
// dz == f, H is the identity.
func Homography(w, h int, theta, phi, gamma, f, dz float64) warp.Matrix3 {
	cx, cy := float64(w)/2, float64(h)/2

	a1 := [][]float64{
		{1, 0, -cx},
		{0, 1, -cy},
		{0, 0, 0},
		{0, 0, 1},
	}
	st, ct := math.Sincos(theta)
	rx := [][]float64{
		{1, 0, 0, 0},
		{0, ct, -st, 0},
		{0, st, ct, 0},
		{0, 0, 0, 1},
	}
	sp, cp := math.Sincos(phi)
	ry := [][]float64{
		{cp, 0, -sp, 0},
		{0, 1, 0, 0},
		{sp, 0, cp, 0},
		{0, 0, 0, 1},
	}
	sg, cg := math.Sincos(gamma)
	rz := [][]float64{
		{cg, -sg, 0, 0},
		{sg, cg, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	t := [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, dz},
		{0, 0, 0, 1},
	}
	a2 := [][]float64{
		{f, 0, cx, 0},
		{0, f, cy, 0},
		{0, 0, 1, 0},
	}

	r := matmul(matmul(rx, ry), rz)
	m := matmul(a2, matmul(t, matmul(r, a1)))

	var out warp.Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i*3+j] = m[i][j]
		}
	}
	return out
}

func matmul(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(b[0]))
		for j := range b[0] {
			var sum float64
			for k := range b {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Rotate3D rotates img by theta, phi and gamma radians about the X, Y and Z
// axes and re-crops the projection to its bounding rectangle.
func Rotate3D(img *image.NRGBA, theta, phi, gamma float64) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := Focal(w, h, gamma)
	return Project(img, Homography(w, h, theta, phi, gamma, f, f))
}

// Project warps img through hm into a canvas sized to the bounding rectangle
// of its projected corners, shifted so that rectangle starts at the origin.
func Project(img *image.NRGBA, hm warp.Matrix3) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	corners := [][2]float64{{0, 0}, {0, h - 1}, {w - 1, h - 1}, {w - 1, 0}}
	for i, c := range corners {
		x, y := hm.Apply(c[0], c[1])
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: corner %d maps to infinity", ErrProjection, i)
		}
		corners[i] = [2]float64{x, y}
	}
	box := warp.BoundingRect(corners)

	limit := maxProjectionScale * math.Hypot(w, h)
	if float64(box.Dx()) > limit || float64(box.Dy()) > limit {
		return nil, fmt.Errorf("%w: projected size %dx%d", ErrProjection, box.Dx(), box.Dy())
	}

	shifted := warp.Translate(-float64(box.Min.X), -float64(box.Min.Y)).Mul(hm)
	out, err := warp.Perspective(img, shifted, box.Dx(), box.Dy())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjection, err)
	}
	return out, nil
}
