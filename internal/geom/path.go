package geom

import "math"

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Q", cx, cy, x, y],
// ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// Path is an ordered list of path commands.
type Path []PathCommand

// MoveTo starts a new subpath at p.
func MoveTo(p Point) PathCommand { return PathCommand{"M", p.X, p.Y} }

// LineTo draws a straight segment to p.
func LineTo(p Point) PathCommand { return PathCommand{"L", p.X, p.Y} }

// QuadTo draws a quadratic bezier through control c to p.
func QuadTo(c, p Point) PathCommand { return PathCommand{"Q", c.X, c.Y, p.X, p.Y} }

// CubicTo draws a cubic bezier through c1 and c2 to p.
func CubicTo(c1, c2, p Point) PathCommand {
	return PathCommand{"C", c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y}
}

// Close closes the current subpath.
func Close() PathCommand { return PathCommand{"Z"} }

// Op returns the command letter, or "" for a malformed command.
func (c PathCommand) Op() string {
	if len(c) == 0 {
		return ""
	}
	op, _ := c[0].(string)
	return op
}

// Float returns argument i (1-based, after the op letter) as a float64.
func (c PathCommand) Float(i int) float64 {
	if i >= len(c) {
		return 0
	}
	return toFloat64(c[i])
}

// Polyline returns a path through the given points, closed when closed is set.
func Polyline(points []Point, closed bool) Path {
	if len(points) == 0 {
		return nil
	}
	path := make(Path, 0, len(points)+1)
	path = append(path, MoveTo(points[0]))
	for _, p := range points[1:] {
		path = append(path, LineTo(p))
	}
	if closed {
		path = append(path, Close())
	}
	return path
}

// EllipticalArc approximates the arc of the axis-aligned ellipse centred at
// c, from angle start to angle end (radians, sweeping towards end), with
// cubic beziers of at most a quarter turn each. The path starts with a
// MoveTo on the arc's first point.
func EllipticalArc(c Point, rx, ry, start, end float64) Path {
	sweep := end - start
	segments := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if segments == 0 {
		segments = 1
	}
	step := sweep / float64(segments)
	k := 4.0 / 3.0 * math.Tan(step/4)

	at := func(t float64) Point {
		return Point{X: c.X + rx*math.Cos(t), Y: c.Y + ry*math.Sin(t)}
	}
	tangent := func(t float64) Vector {
		return Vector{X: -rx * math.Sin(t), Y: ry * math.Cos(t)}
	}

	path := make(Path, 0, segments+1)
	path = append(path, MoveTo(at(start)))
	t0 := start
	for i := 0; i < segments; i++ {
		t1 := t0 + step
		p0, p1 := at(t0), at(t1)
		d0, d1 := tangent(t0), tangent(t1)
		c1 := Point{X: p0.X + k*d0.X, Y: p0.Y + k*d0.Y}
		c2 := Point{X: p1.X - k*d1.X, Y: p1.Y - k*d1.Y}
		path = append(path, CubicTo(c1, c2, p1))
		t0 = t1
	}
	return path
}

// Ellipse returns a closed outline of the axis-aligned ellipse centred at c.
func Ellipse(c Point, rx, ry float64) Path {
	path := EllipticalArc(c, rx, ry, 0, 2*math.Pi)
	return append(path, Close())
}

// Circle returns a closed outline of the circle centred at c.
func Circle(c Point, r float64) Path {
	return Ellipse(c, r, r)
}

// Points returns every coordinate pair referenced by the path, including
// bezier control points.
func (p Path) Points() []Point {
	var points []Point
	for _, cmd := range p {
		switch cmd.Op() {
		case "M", "L":
			if len(cmd) >= 3 {
				points = append(points, Point{X: cmd.Float(1), Y: cmd.Float(2)})
			}
		case "Q":
			if len(cmd) >= 5 {
				points = append(points,
					Point{X: cmd.Float(1), Y: cmd.Float(2)},
					Point{X: cmd.Float(3), Y: cmd.Float(4)})
			}
		case "C":
			if len(cmd) >= 7 {
				points = append(points,
					Point{X: cmd.Float(1), Y: cmd.Float(2)},
					Point{X: cmd.Float(3), Y: cmd.Float(4)},
					Point{X: cmd.Float(5), Y: cmd.Float(6)})
			}
		}
	}
	return points
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// toFloat64 converts an interface{} to float64.
func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
