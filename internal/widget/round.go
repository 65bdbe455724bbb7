package widget

import (
	"math"

	"github.com/inamate/vecdraw/internal/geom"
)

// Circle is defined by its center and a point on the rim.
type Circle struct {
	Common
	Center      geom.Point
	RadiusPoint geom.Point
	Radius      float64
}

func NewCircle(c Common, center, rim geom.Point) Circle {
	return Circle{Common: c, Center: center, RadiusPoint: rim, Radius: geom.Distance(center, rim)}
}

func (c Circle) Kind() Kind                  { return KindCircle }
func (c Circle) Pivot() geom.Point           { return c.Center }
func (c Circle) Rotation() float64           { return 0 }
func (c Circle) ControlPoints() []geom.Point { return []geom.Point{c.Center, c.RadiusPoint} }

func (c Circle) MoveControlPoint(i int, p geom.Point) Widget {
	switch i {
	case 0:
		c.Center = p
	case 1:
		c.RadiusPoint = p
	default:
		return c
	}
	c.Radius = geom.Distance(c.Center, c.RadiusPoint)
	return c
}

func (c Circle) Rotate(float64) Widget { return c }
func (c Circle) Path() geom.Path       { return geom.Circle(c.Center, c.Radius) }

func (c Circle) withCommon(cm Common) Widget { c.Common = cm; return c }
func (c Circle) clone() Widget               { return c }

// Ellipse is centred on Points[0] with its radii taken from the distances
// of the two axis clicks.
type Ellipse struct {
	Common
	Points  [3]geom.Point
	Center  geom.Point
	Radii   geom.Vector
	Degrees float64
}

func NewEllipse(c Common, center, xAxis, yAxis geom.Point) Ellipse {
	e := Ellipse{Common: c, Points: [3]geom.Point{center, xAxis, yAxis}}
	e.derive()
	return e
}

func (e *Ellipse) derive() {
	e.Center = e.Points[0]
	e.Radii = geom.Vector{
		X: geom.Distance(e.Points[0], e.Points[1]),
		Y: geom.Distance(e.Points[0], e.Points[2]),
	}
}

func (e Ellipse) Kind() Kind        { return KindEllipse }
func (e Ellipse) Pivot() geom.Point { return e.Center }
func (e Ellipse) Rotation() float64 { return e.Degrees }

func (e Ellipse) ControlPoints() []geom.Point {
	return toWorld(e.Points[:], e.Degrees, e.Center)
}

func (e Ellipse) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i >= len(e.Points) {
		return e
	}
	copy(e.Points[:], toLocal(e.Points[:], e.Degrees, e.Center, i, p, first))
	e.derive()
	return e
}

func (e Ellipse) Rotate(delta float64) Widget {
	e.Degrees += delta
	return e
}

func (e Ellipse) Path() geom.Path { return geom.Ellipse(e.Center, e.Radii.X, e.Radii.Y) }

func (e Ellipse) withCommon(c Common) Widget { e.Common = c; return e }
func (e Ellipse) clone() Widget              { return e }

// Arc is a circular arc around Points[0] from the start click's angle to
// the end click's angle. Rotation is folded into the points and angles.
type Arc struct {
	Common
	Points     [3]geom.Point
	MidPoint   geom.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func NewArc(c Common, center, start, end geom.Point) Arc {
	a := Arc{Common: c, Points: [3]geom.Point{center, start, end}}
	a.derive()
	return a
}

func (a *Arc) derive() {
	center := a.Points[0]
	a.MidPoint = center
	a.Radius = geom.Distance(center, a.Points[1])
	a.StartAngle = geom.Angle(a.Points[1].Sub(center))
	a.EndAngle = geom.Angle(a.Points[2].Sub(center))
}

func (a Arc) Kind() Kind                  { return KindArc }
func (a Arc) Pivot() geom.Point           { return a.MidPoint }
func (a Arc) Rotation() float64           { return 0 }
func (a Arc) ControlPoints() []geom.Point { return a.Points[:] }

func (a Arc) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i >= len(a.Points) {
		return a
	}
	a.Points[i] = p
	a.derive()
	return a
}

func (a Arc) Rotate(delta float64) Widget {
	for i := range a.Points {
		a.Points[i] = geom.Rotate(a.Points[i], delta, a.MidPoint)
	}
	a.StartAngle += geom.Radians(delta)
	a.EndAngle += geom.Radians(delta)
	return a
}

// Path sweeps from StartAngle towards EndAngle in the positive direction.
func (a Arc) Path() geom.Path {
	end := a.EndAngle
	for end < a.StartAngle {
		end += 2 * math.Pi
	}
	return geom.EllipticalArc(a.MidPoint, a.Radius, a.Radius, a.StartAngle, end)
}

func (a Arc) withCommon(c Common) Widget { a.Common = c; return a }
func (a Arc) clone() Widget              { return a }

func first(points []geom.Point) geom.Point { return points[0] }
