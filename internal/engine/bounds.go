package engine

import (
	"math"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

// computePathBounds computes the axis-aligned bounding box of a path in world space.
// Bezier control points are included, so curves get a conservative box.
func computePathBounds(path geom.Path, worldTransform Matrix2D) geom.Rect {
	var minX, minY, maxX, maxY float64
	first := true

	for _, p := range path.Points() {
		w := worldTransform.Apply(p)
		if first {
			minX, maxX = w.X, w.X
			minY, maxY = w.Y, w.Y
			first = false
			continue
		}
		minX = math.Min(minX, w.X)
		maxX = math.Max(maxX, w.X)
		minY = math.Min(minY, w.Y)
		maxY = math.Max(maxY, w.Y)
	}

	if first {
		return geom.Rect{}
	}

	return geom.Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Bounds returns the world-space bounding box of w.
func Bounds(w widget.Widget) geom.Rect {
	return computePathBounds(w.Path(), RotateAbout(w.Rotation(), w.Pivot()))
}

// hitWidget reports whether p falls on w, allowing tolerance pixels of slack.
// Open strokes test the distance to their segments; every other kind tests
// its bounding box.
func hitWidget(w widget.Widget, p geom.Point, tolerance float64) bool {
	tolerance = math.Max(tolerance, w.Info().Width/2)
	m := RotateAbout(w.Rotation(), w.Pivot())

	switch w.Kind() {
	case widget.KindLine, widget.KindPolyLine, widget.KindFreeHand:
		inv, ok := m.Invert()
		if !ok {
			return false
		}
		local := inv.Apply(p)
		points := w.Path().Points()
		if len(points) == 1 {
			return geom.WithinRadius(points[0], local, tolerance)
		}
		for i := 1; i < len(points); i++ {
			if geom.DistanceToSegment(local, points[i-1], points[i]) <= tolerance {
				return true
			}
		}
		return false
	default:
		return computePathBounds(w.Path(), m).Inset(-tolerance).Contains(p)
	}
}
