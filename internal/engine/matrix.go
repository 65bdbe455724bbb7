package engine

import (
	"math"

	"github.com/inamate/vecdraw/internal/geom"
)

// Matrix2D is an affine transform in Canvas2D setTransform order
// [a, b, c, d, e, f]:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix2D [6]float64

func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// RotateAbout returns the rotation by degrees around pivot, the transform
// applied to a widget's local path at render time.
func RotateAbout(degrees float64, pivot geom.Point) Matrix2D {
	if degrees == 0 {
		return Identity()
	}
	sin, cos := math.Sincos(geom.Radians(degrees))
	// translate(pivot) * rotate * translate(-pivot), expanded
	return Matrix2D{
		cos, sin,
		-sin, cos,
		pivot.X - cos*pivot.X + sin*pivot.Y,
		pivot.Y - sin*pivot.X - cos*pivot.Y,
	}
}

// MatrixFromSlice reads a draw command's transform. Anything other than
// six values is treated as the identity.
func MatrixFromSlice(s []float64) Matrix2D {
	if len(s) != 6 {
		return Identity()
	}
	return Matrix2D(s)
}

// Multiply returns m * other: other is applied first.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

func (m Matrix2D) Apply(p geom.Point) geom.Point {
	return geom.Point{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}

// Invert returns the inverse transform. ok is false for a singular matrix.
func (m Matrix2D) Invert() (inv Matrix2D, ok bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity(), false
	}
	return Matrix2D{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}, true
}

// ToSlice returns the matrix in the JSON form carried by DrawCommand.
func (m Matrix2D) ToSlice() []float64 {
	return m[:]
}

func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-10
	id := Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) >= eps {
			return false
		}
	}
	return true
}
