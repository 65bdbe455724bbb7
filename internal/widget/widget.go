// Package widget defines the closed set of drawable shapes. Every variant is
// an immutable value: editing and rotating return an updated copy.
package widget

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/typeid"
)

const (
	DefaultWidth       = 2.0
	DefaultVertexCount = 4
)

// Common carries the fields shared by every variant.
type Common struct {
	ID     string
	Mode   DrawMode
	Status DrawStatus
	Color  geom.Color
	Width  float64
}

// Info returns the shared fields.
func (c Common) Info() Common { return c }

// Widget is implemented only by the variants in this package.
type Widget interface {
	Kind() Kind
	Info() Common

	// Pivot is the point rotation is applied about.
	Pivot() geom.Point
	// Rotation is the rotation in degrees applied to Path at render time.
	Rotation() float64
	// ControlPoints returns the draggable anchors in world space, in the
	// same index order used by construction and editing.
	ControlPoints() []geom.Point
	// MoveControlPoint returns a copy with control point i placed at the
	// world position p. Out of range indexes return the widget unchanged.
	MoveControlPoint(i int, p geom.Point) Widget
	// Rotate returns a copy rotated by delta degrees about its pivot.
	Rotate(delta float64) Widget
	// Path returns the outline in local, unrotated coordinates.
	Path() geom.Path

	withCommon(c Common) Widget
	clone() Widget
}

// IDOf returns the widget's identifier.
func IDOf(w Widget) string {
	return w.Info().ID
}

// WithModeAndStatus returns a copy of w with mode and status overridden
// where non-nil.
func WithModeAndStatus(w Widget, mode *DrawMode, status *DrawStatus) Widget {
	c := w.Info()
	if mode != nil {
		c.Mode = *mode
	}
	if status != nil {
		c.Status = *status
	}
	return w.clone().withCommon(c)
}

// WithStatus is a shorthand for overriding the status alone.
func WithStatus(w Widget, status DrawStatus) Widget {
	return WithModeAndStatus(w, nil, &status)
}

// WithMode is a shorthand for overriding the mode alone.
func WithMode(w Widget, mode DrawMode) Widget {
	return WithModeAndStatus(w, &mode, nil)
}

// Clone returns a deep copy of w sharing no slices with it.
func Clone(w Widget) Widget {
	return w.clone()
}

// Options configures Build.
type Options struct {
	// ID is assigned to the new widget. A fresh id is minted when empty.
	ID          string
	Color       geom.Color
	Width       float64
	VertexCount int
}

func (o Options) common() Common {
	id := o.ID
	if id == "" {
		id = typeid.NewWidgetID()
	}
	width := o.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return Common{ID: id, Mode: ModeNew, Status: StatusCompleted, Color: o.Color, Width: width}
}

// Build constructs a widget of the given kind from its construction clicks.
// It reports false when fewer clicks than the kind needs are supplied. For
// FreeHand, clicks is the whole recorded stroke. The result has mode New
// and status Completed.
func Build(kind Kind, clicks []geom.Point, opts Options) (Widget, bool) {
	need := kind.Clicks()
	if kind == KindFreeHand {
		need = 1
	}
	if need == 0 || len(clicks) < need {
		return nil, false
	}
	c := opts.common()

	switch kind {
	case KindArc:
		return NewArc(c, clicks[0], clicks[1], clicks[2]), true
	case KindBezier:
		return NewBezier(c, clicks[0], clicks[1], clicks[2]), true
	case KindCircle:
		return NewCircle(c, clicks[0], clicks[1]), true
	case KindEllipse:
		return NewEllipse(c, clicks[0], clicks[1], clicks[2]), true
	case KindLine:
		return NewLine(c, clicks[0], clicks[1]), true
	case KindPolygon:
		return NewPolygon(c, clicks[0], clicks[1], opts.VertexCount), true
	case KindPolyLine:
		return NewPolyLine(c, clicks[0], clicks[1], opts.VertexCount), true
	case KindRightTriangle:
		return NewRightTriangle(c, clicks[0], clicks[1], clicks[2]), true
	case KindFreeHand:
		return NewFreeHand(c, clicks), true
	case KindText:
		return NewText(c, clicks[0], ""), true
	default:
		return nil, false
	}
}

// toLocal maps world-space points back into the unrotated frame after
// replacing point i, re-deriving the pivot from the edited set.
func toLocal(local []geom.Point, degrees float64, pivot geom.Point, i int, p geom.Point, pivotOf func([]geom.Point) geom.Point) []geom.Point {
	world := make([]geom.Point, len(local))
	for j, q := range local {
		world[j] = geom.Rotate(q, degrees, pivot)
	}
	world[i] = p
	newPivot := pivotOf(world)
	out := make([]geom.Point, len(world))
	for j, q := range world {
		out[j] = geom.Rotate(q, -degrees, newPivot)
	}
	return out
}

func toWorld(local []geom.Point, degrees float64, pivot geom.Point) []geom.Point {
	out := make([]geom.Point, len(local))
	for i, q := range local {
		out[i] = geom.Rotate(q, degrees, pivot)
	}
	return out
}

func midOfFirstTwo(points []geom.Point) geom.Point {
	return geom.Midpoint(points[0], points[1])
}

func centroid(points []geom.Point) geom.Point {
	return geom.Centroid(points...)
}
