package widget

import "github.com/inamate/vecdraw/internal/geom"

// FreeHand is an open stroke through the recorded pointer positions.
type FreeHand struct {
	Common
	Points []geom.Point
}

func NewFreeHand(c Common, points []geom.Point) FreeHand {
	return FreeHand{Common: c, Points: append([]geom.Point(nil), points...)}
}

func (f FreeHand) Kind() Kind        { return KindFreeHand }
func (f FreeHand) Rotation() float64 { return 0 }

func (f FreeHand) Pivot() geom.Point {
	if len(f.Points) == 0 {
		return geom.Point{}
	}
	return f.Points[0]
}

func (f FreeHand) ControlPoints() []geom.Point {
	if len(f.Points) == 0 {
		return nil
	}
	return []geom.Point{f.Points[0]}
}

// MoveControlPoint translates the whole stroke so that its first point
// lands on p.
func (f FreeHand) MoveControlPoint(i int, p geom.Point) Widget {
	if i != 0 || len(f.Points) == 0 {
		return f.clone()
	}
	d := p.Sub(f.Points[0])
	moved := make([]geom.Point, len(f.Points))
	for j, q := range f.Points {
		moved[j] = q.Add(d)
	}
	f.Points = moved
	return f
}

func (f FreeHand) Rotate(float64) Widget { return f.clone() }
func (f FreeHand) Path() geom.Path       { return geom.Polyline(f.Points, false) }

func (f FreeHand) withCommon(c Common) Widget { f.Common = c; return f }

func (f FreeHand) clone() Widget {
	f.Points = append([]geom.Point(nil), f.Points...)
	return f
}
