package widget

import "github.com/inamate/vecdraw/internal/geom"

// Line is a straight segment between two clicks.
type Line struct {
	Common
	Points   [2]geom.Point
	MidPoint geom.Point
	Degrees  float64
}

func NewLine(c Common, from, to geom.Point) Line {
	return Line{Common: c, Points: [2]geom.Point{from, to}, MidPoint: geom.Midpoint(from, to)}
}

func (l Line) Kind() Kind                  { return KindLine }
func (l Line) Pivot() geom.Point           { return l.MidPoint }
func (l Line) Rotation() float64           { return l.Degrees }
func (l Line) ControlPoints() []geom.Point { return toWorld(l.Points[:], l.Degrees, l.MidPoint) }

func (l Line) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i >= len(l.Points) {
		return l
	}
	copy(l.Points[:], toLocal(l.Points[:], l.Degrees, l.MidPoint, i, p, midOfFirstTwo))
	l.MidPoint = geom.Midpoint(l.Points[0], l.Points[1])
	return l
}

func (l Line) Rotate(delta float64) Widget {
	l.Degrees += delta
	return l
}

func (l Line) Path() geom.Path { return geom.Polyline(l.Points[:], false) }

func (l Line) withCommon(c Common) Widget { l.Common = c; return l }
func (l Line) clone() Widget              { return l }

// Bezier is a quadratic curve from Points[0] to Points[1] pulled towards
// the control point Points[2].
type Bezier struct {
	Common
	Points   [3]geom.Point
	MidPoint geom.Point
	Degrees  float64
}

func NewBezier(c Common, from, to, control geom.Point) Bezier {
	return Bezier{Common: c, Points: [3]geom.Point{from, to, control}, MidPoint: geom.Midpoint(from, to)}
}

func (b Bezier) Kind() Kind        { return KindBezier }
func (b Bezier) Pivot() geom.Point { return b.MidPoint }
func (b Bezier) Rotation() float64 { return b.Degrees }

func (b Bezier) ControlPoints() []geom.Point {
	return toWorld(b.Points[:], b.Degrees, b.MidPoint)
}

func (b Bezier) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i >= len(b.Points) {
		return b
	}
	copy(b.Points[:], toLocal(b.Points[:], b.Degrees, b.MidPoint, i, p, midOfFirstTwo))
	b.MidPoint = geom.Midpoint(b.Points[0], b.Points[1])
	return b
}

func (b Bezier) Rotate(delta float64) Widget {
	b.Degrees += delta
	return b
}

func (b Bezier) Path() geom.Path {
	return geom.Path{geom.MoveTo(b.Points[0]), geom.QuadTo(b.Points[2], b.Points[1])}
}

func (b Bezier) withCommon(c Common) Widget { b.Common = c; return b }
func (b Bezier) clone() Widget              { return b }

// RightTriangle is the closed triangle through three clicks. The third
// click is taken as is; no right angle is imposed.
type RightTriangle struct {
	Common
	Points         [3]geom.Point
	MidPoint       geom.Point
	ReferencePoint geom.Point
	Degrees        float64
}

func NewRightTriangle(c Common, a, b, third geom.Point) RightTriangle {
	t := RightTriangle{Common: c, Points: [3]geom.Point{a, b, third}}
	t.derive()
	return t
}

func (t *RightTriangle) derive() {
	t.MidPoint = geom.Centroid(t.Points[:]...)
	t.ReferencePoint = t.Points[2]
}

func (t RightTriangle) Kind() Kind        { return KindRightTriangle }
func (t RightTriangle) Pivot() geom.Point { return t.MidPoint }
func (t RightTriangle) Rotation() float64 { return t.Degrees }

func (t RightTriangle) ControlPoints() []geom.Point {
	return toWorld(t.Points[:], t.Degrees, t.MidPoint)
}

func (t RightTriangle) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i >= len(t.Points) {
		return t
	}
	copy(t.Points[:], toLocal(t.Points[:], t.Degrees, t.MidPoint, i, p, centroid))
	t.derive()
	return t
}

func (t RightTriangle) Rotate(delta float64) Widget {
	t.Degrees += delta
	return t
}

func (t RightTriangle) Path() geom.Path { return geom.Polyline(t.Points[:], true) }

func (t RightTriangle) withCommon(c Common) Widget { t.Common = c; return t }
func (t RightTriangle) clone() Widget              { return t }
