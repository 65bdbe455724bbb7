// Package geom provides the value types shared by the drawing core: points,
// vectors, colors, rectangles and Canvas2D-style paths.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// HitRadius is the pixel tolerance used when deciding whether the pointer
// is on a control point.
const HitRadius = 5.0

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt creates a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vector is a 2D displacement, also used for ellipse radii.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point(r2.Add(r2.Vec(p), r2.Vec(v)))
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Vector {
	return Vector(r2.Sub(r2.Vec(p), r2.Vec(other)))
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return Distance(p, other)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(r2.Vec(a), r2.Vec(b)))
}

// Angle returns the direction of v in radians, in (-Pi, Pi].
func Angle(v Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

// Length returns the magnitude of v.
func (v Vector) Length() float64 {
	return r2.Norm(r2.Vec(v))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Centroid computes the average position of a set of points.
func Centroid(points ...Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Rotate rotates p about pivot by the given angle in degrees.
// A zero angle returns p unchanged.
func Rotate(p Point, degrees float64, pivot Point) Point {
	if degrees == 0 {
		return p
	}
	return Point(r2.Rotate(r2.Vec(p), Radians(degrees), r2.Vec(pivot)))
}

// WithinRadius reports whether pointer lies within radius of candidate.
func WithinRadius(candidate, pointer Point, radius float64) bool {
	return Distance(candidate, pointer) <= radius
}

// PointInCircle reports whether pointer is within HitRadius of candidate.
func PointInCircle(candidate, pointer Point) bool {
	return WithinRadius(candidate, pointer, HitRadius)
}

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	abLen2 := ab.X*ab.X + ab.Y*ab.Y
	if abLen2 == 0 {
		return ap.Length()
	}
	t := (ap.X*ab.X + ap.Y*ab.Y) / abLen2
	t = math.Max(0, math.Min(1, t))
	closest := Point{X: a.X + t*ab.X, Y: a.Y + t*ab.Y}
	return Distance(p, closest)
}
