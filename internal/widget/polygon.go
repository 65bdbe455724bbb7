package widget

import (
	"math"

	"github.com/inamate/vecdraw/internal/geom"
)

// Polygon is a closed regular polygon centred on MidPoint with one vertex
// at ReferencePoint.
type Polygon struct {
	Common
	Points         []geom.Point
	VertexCount    int
	MidPoint       geom.Point
	ReferencePoint geom.Point
	Degrees        float64
}

// PolyLine has the same geometry as Polygon but its outline is left open
// between the last vertex and the first.
type PolyLine struct {
	Common
	Points         []geom.Point
	VertexCount    int
	MidPoint       geom.Point
	ReferencePoint geom.Point
	Degrees        float64
}

func NewPolygon(c Common, mid, ref geom.Point, n int) Polygon {
	if n <= 0 {
		n = DefaultVertexCount
	}
	return Polygon{Common: c, Points: RegularVertices(mid, ref, n), VertexCount: n, MidPoint: mid, ReferencePoint: ref}
}

func NewPolyLine(c Common, mid, ref geom.Point, n int) PolyLine {
	if n <= 0 {
		n = DefaultVertexCount
	}
	return PolyLine{Common: c, Points: RegularVertices(mid, ref, n), VertexCount: n, MidPoint: mid, ReferencePoint: ref}
}

// RegularVertices returns n points evenly spaced on the circle centred at
// mid that passes through ref, starting at ref.
func RegularVertices(mid, ref geom.Point, n int) []geom.Point {
	if n <= 0 {
		return nil
	}
	r := geom.Distance(mid, ref)
	start := geom.Angle(ref.Sub(mid))
	step := 2 * math.Pi / float64(n)
	points := make([]geom.Point, n)
	points[0] = ref
	for i := 1; i < n; i++ {
		a := start + step*float64(i)
		points[i] = geom.Point{X: mid.X + r*math.Cos(a), Y: mid.Y + r*math.Sin(a)}
	}
	return points
}

// moveRegular applies a control point drag to a regular shape and returns
// its new local mid and reference points.
func moveRegular(mid, ref geom.Point, degrees float64, i int, p geom.Point) (geom.Point, geom.Point) {
	local := toLocal([]geom.Point{mid, ref}, degrees, mid, i, p, first)
	return local[0], local[1]
}

func (g Polygon) Kind() Kind        { return KindPolygon }
func (g Polygon) Pivot() geom.Point { return g.MidPoint }
func (g Polygon) Rotation() float64 { return g.Degrees }

func (g Polygon) ControlPoints() []geom.Point {
	return toWorld([]geom.Point{g.MidPoint, g.ReferencePoint}, g.Degrees, g.MidPoint)
}

func (g Polygon) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i > 1 {
		return g.clone()
	}
	g.MidPoint, g.ReferencePoint = moveRegular(g.MidPoint, g.ReferencePoint, g.Degrees, i, p)
	g.Points = RegularVertices(g.MidPoint, g.ReferencePoint, g.VertexCount)
	return g
}

func (g Polygon) Rotate(delta float64) Widget {
	g.Degrees += delta
	return g.clone()
}

func (g Polygon) Path() geom.Path { return geom.Polyline(g.Points, true) }

func (g Polygon) withCommon(c Common) Widget { g.Common = c; return g }

func (g Polygon) clone() Widget {
	g.Points = append([]geom.Point(nil), g.Points...)
	return g
}

func (g PolyLine) Kind() Kind        { return KindPolyLine }
func (g PolyLine) Pivot() geom.Point { return g.MidPoint }
func (g PolyLine) Rotation() float64 { return g.Degrees }

func (g PolyLine) ControlPoints() []geom.Point {
	return toWorld([]geom.Point{g.MidPoint, g.ReferencePoint}, g.Degrees, g.MidPoint)
}

func (g PolyLine) MoveControlPoint(i int, p geom.Point) Widget {
	if i < 0 || i > 1 {
		return g.clone()
	}
	g.MidPoint, g.ReferencePoint = moveRegular(g.MidPoint, g.ReferencePoint, g.Degrees, i, p)
	g.Points = RegularVertices(g.MidPoint, g.ReferencePoint, g.VertexCount)
	return g
}

func (g PolyLine) Rotate(delta float64) Widget {
	g.Degrees += delta
	return g.clone()
}

func (g PolyLine) Path() geom.Path { return geom.Polyline(g.Points, false) }

func (g PolyLine) withCommon(c Common) Widget { g.Common = c; return g }

func (g PolyLine) clone() Widget {
	g.Points = append([]geom.Point(nil), g.Points...)
	return g
}
