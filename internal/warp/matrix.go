package warp

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix3 is a row-major 3x3 matrix acting on homogeneous 2D points.
type Matrix3 [9]float64

// Identity returns the identity matrix.
func Identity() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Translate returns a matrix that shifts points by (tx, ty).
func Translate(tx, ty float64) Matrix3 {
	return Matrix3{1, 0, tx, 0, 1, ty, 0, 0, 1}
}

// Mul returns m·n, i.e. n is applied first.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var out Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[r*3+k] * n[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

// Det returns the determinant of m.
func (m Matrix3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse of m. ok is false when m is singular.
func (m Matrix3) Inverse() (inv Matrix3, ok bool) {
	det := m.Det()
	if math.Abs(det) < 1e-12 {
		return Matrix3{}, false
	}
	inv = Matrix3{
		m[4]*m[8] - m[5]*m[7], m[2]*m[7] - m[1]*m[8], m[1]*m[5] - m[2]*m[4],
		m[5]*m[6] - m[3]*m[8], m[0]*m[8] - m[2]*m[6], m[2]*m[3] - m[0]*m[5],
		m[3]*m[7] - m[4]*m[6], m[1]*m[6] - m[0]*m[7], m[0]*m[4] - m[1]*m[3],
	}
	for i := range inv {
		inv[i] /= det
	}
	return inv, true
}

// Apply maps the point (x, y) through m, including the perspective divide.
// Points mapped to infinity come back as NaN.
func (m Matrix3) Apply(x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	if w == 0 {
		return math.NaN(), math.NaN()
	}
	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// Aff3 returns the top two rows of m in the form used by golang.org/x/image/draw.
func (m Matrix3) Aff3() f64.Aff3 {
	return f64.Aff3{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// snap absorbs floating point noise so that a corner landing on w-1 does not
// floor to w-2.
const snap = 1e-6

// BoundingRect returns the integer rectangle enclosing pts.
//
// The origin is the floor of the minimum coordinates and the size is
// floor(max) - floor(min) + 1 in each direction, so a set of points spanning
// pixel centers 0..w-1 yields a rectangle of width w.
func BoundingRect(pts [][2]float64) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	x0 := int(math.Floor(minX + snap))
	y0 := int(math.Floor(minY + snap))
	x1 := int(math.Floor(maxX + snap))
	y1 := int(math.Floor(maxY + snap))
	return image.Rect(x0, y0, x1+1, y1+1)
}
