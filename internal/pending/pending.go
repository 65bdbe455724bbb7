// Package pending tracks a shape while it is being constructed or while one
// of its control points is being dragged.
package pending

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/typeid"
	"github.com/inamate/vecdraw/internal/widget"
)

// State is one of One, Two, Edit or Rotate. A nil State means nothing is
// pending.
type State interface {
	pending()
}

// One holds the first click of a new shape. Trail accumulates pointer
// motion for freehand strokes.
type One struct {
	Kind   widget.Kind
	Anchor geom.Point
	Trail  []geom.Point
}

// Two holds the first two clicks of a three-click shape.
type Two struct {
	Kind   widget.Kind
	Anchor geom.Point
	Second geom.Point
}

// Edit drags control point Index of a copy of the edit target.
type Edit struct {
	Kind   widget.Kind
	Index  int
	Widget widget.Widget
}

// Rotate turns a copy of the edit target by the angle swept around its
// pivot since the press at Grab.
type Rotate struct {
	Kind   widget.Kind
	Index  int
	Widget widget.Widget
	Grab   geom.Point
}

func (One) pending()    {}
func (Two) pending()    {}
func (Edit) pending()   {}
func (Rotate) pending() {}

// Machine drives construction for every kind. The zero value is ready to
// use.
type Machine struct {
	state State
	opts  widget.Options
}

// State returns the current pending state, nil when idle.
func (m *Machine) State() State { return m.state }

// Active reports whether anything is pending.
func (m *Machine) Active() bool { return m.state != nil }

// Reset drops any pending state without emitting.
func (m *Machine) Reset() {
	m.state = nil
	m.opts = widget.Options{}
}

// Press feeds a pointer press at p while constructing kind. It returns the
// finished widget once the kind's final click arrives. Switching kind
// mid-sequence restarts construction with p as the first click.
func (m *Machine) Press(kind widget.Kind, p geom.Point, opts widget.Options) (widget.Widget, bool) {
	if kind == widget.KindNone {
		return nil, false
	}

	switch s := m.state.(type) {
	case nil:
		return m.start(kind, p, opts)

	case One:
		if s.Kind != kind {
			return m.start(kind, p, opts)
		}
		switch {
		case kind == widget.KindFreeHand:
			return m.finish(kind, append(s.Trail, p))
		case kind.Clicks() == 2:
			return m.finish(kind, []geom.Point{s.Anchor, p})
		default:
			m.state = Two{Kind: kind, Anchor: s.Anchor, Second: p}
			return nil, false
		}

	case Two:
		if s.Kind != kind {
			return m.start(kind, p, opts)
		}
		return m.finish(kind, []geom.Point{s.Anchor, s.Second, p})

	case Edit, Rotate:
		// a drag is in progress; only release ends it
		return nil, false
	}
	return nil, false
}

func (m *Machine) start(kind widget.Kind, p geom.Point, opts widget.Options) (widget.Widget, bool) {
	if opts.ID == "" {
		opts.ID = typeid.NewWidgetID()
	}
	m.opts = opts
	if kind.Clicks() == 1 {
		return m.finish(kind, []geom.Point{p})
	}
	one := One{Kind: kind, Anchor: p}
	if kind == widget.KindFreeHand {
		one.Trail = []geom.Point{p}
	}
	m.state = one
	return nil, false
}

func (m *Machine) finish(kind widget.Kind, clicks []geom.Point) (widget.Widget, bool) {
	w, ok := widget.Build(kind, clicks, m.opts)
	m.Reset()
	return w, ok
}

// Motion records pointer movement. It never completes anything.
func (m *Machine) Motion(p geom.Point) {
	if s, ok := m.state.(One); ok && s.Kind == widget.KindFreeHand {
		s.Trail = append(s.Trail, p)
		m.state = s
	}
}

// BeginEdit starts dragging control point index of w.
func (m *Machine) BeginEdit(w widget.Widget, index int) {
	m.state = Edit{Kind: w.Kind(), Index: index, Widget: widget.Clone(w)}
}

// BeginRotate starts rotating w from the press position grab.
func (m *Machine) BeginRotate(w widget.Widget, index int, grab geom.Point) {
	m.state = Rotate{Kind: w.Kind(), Index: index, Widget: widget.Clone(w), Grab: grab}
}

// Release ends an edit or rotate drag at p and returns the updated widget
// with status Completed. Releases in any other state are ignored.
func (m *Machine) Release(p geom.Point) (widget.Widget, bool) {
	var w widget.Widget
	switch s := m.state.(type) {
	case Edit:
		w = s.Widget.MoveControlPoint(s.Index, p)
	case Rotate:
		w = s.Widget.Rotate(SweptDegrees(s.Widget.Pivot(), s.Grab, p))
	default:
		return nil, false
	}
	m.Reset()
	return widget.WithStatus(w, widget.StatusCompleted), true
}

// Preview returns the widget that would result if cursor were the next
// click or the release position. It carries status InProgress.
func (m *Machine) Preview(cursor geom.Point) (widget.Widget, bool) {
	var w widget.Widget
	var ok bool
	switch s := m.state.(type) {
	case One:
		clicks := []geom.Point{s.Anchor, cursor, cursor}
		if s.Kind == widget.KindFreeHand {
			clicks = append(append([]geom.Point(nil), s.Trail...), cursor)
		}
		w, ok = widget.Build(s.Kind, clicks, m.opts)
	case Two:
		w, ok = widget.Build(s.Kind, []geom.Point{s.Anchor, s.Second, cursor}, m.opts)
	case Edit:
		w, ok = s.Widget.MoveControlPoint(s.Index, cursor), true
	case Rotate:
		w, ok = s.Widget.Rotate(SweptDegrees(s.Widget.Pivot(), s.Grab, cursor)), true
	}
	if !ok {
		return nil, false
	}
	return widget.WithStatus(w, widget.StatusInProgress), true
}

// SweptDegrees is the signed angle from grab to p as seen from pivot, in
// (-180, 180].
func SweptDegrees(pivot, grab, p geom.Point) float64 {
	from := geom.Angle(grab.Sub(pivot))
	to := geom.Angle(p.Sub(pivot))
	d := geom.Degrees(to - from)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}
