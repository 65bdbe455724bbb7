package geom

import "math"

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromCorners builds the rectangle spanned by two opposite corners.
// The top-left corner is picked from the quadrant that `to` lies in
// relative to `from`, so the result does not depend on drag direction.
func RectFromCorners(from, to Point) Rect {
	width := math.Abs(to.X - from.X)
	height := math.Abs(to.Y - from.Y)

	var topLeft Point
	switch {
	case from.X < to.X && from.Y > to.Y:
		// dragged up and right
		topLeft = Point{X: from.X, Y: from.Y - height}
	case from.X > to.X && from.Y > to.Y:
		// dragged up and left
		topLeft = Point{X: from.X - width, Y: to.Y}
	case from.X > to.X && from.Y < to.Y:
		// dragged down and left
		topLeft = Point{X: to.X, Y: from.Y}
	case from.X < to.X && from.Y < to.Y:
		topLeft = from
	default:
		// degenerate: a shared x or y
		topLeft = Point{X: math.Min(from.X, to.X), Y: math.Min(from.Y, to.Y)}
	}

	return Rect{X: topLeft.X, Y: topLeft.Y, Width: width, Height: height}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inset grows (negative d) or shrinks the rect on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Path returns the closed outline of the rect.
func (r Rect) Path() Path {
	return Path{
		MoveTo(Point{X: r.X, Y: r.Y}),
		LineTo(Point{X: r.X + r.Width, Y: r.Y}),
		LineTo(Point{X: r.X + r.Width, Y: r.Y + r.Height}),
		LineTo(Point{X: r.X, Y: r.Y + r.Height}),
		Close(),
	}
}
