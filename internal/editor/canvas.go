// Package editor interprets input events against the active drawing mode:
// it drives shape construction, control point hit-testing, edit and rotate
// drags, and the text entry sub-mode.
package editor

import (
	"log/slog"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/pending"
	"github.com/inamate/vecdraw/internal/widget"
)

// Style is applied to newly constructed widgets.
type Style struct {
	Color       geom.Color
	Width       float64
	VertexCount int
}

// DefaultStyle matches the initial values of the style inputs.
func DefaultStyle() Style {
	return Style{Color: geom.White, Width: widget.DefaultWidth, VertexCount: widget.DefaultVertexCount}
}

// Canvas is the interaction state of one drawing surface. It is not safe
// for concurrent use.
type Canvas struct {
	mode      widget.DrawMode
	kind      widget.Kind
	style     Style
	hitRadius float64

	machine pending.Machine
	target  widget.Widget
	text    *widget.Text

	cursor    geom.Point
	hasCursor bool

	log *slog.Logger
}

// New creates a canvas in DrawAll mode. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Canvas {
	if logger == nil {
		logger = slog.Default()
	}
	return &Canvas{
		mode:      widget.ModeDrawAll,
		style:     DefaultStyle(),
		hitRadius: geom.HitRadius,
		log:       logger,
	}
}

func (c *Canvas) Mode() widget.DrawMode { return c.mode }
func (c *Canvas) Kind() widget.Kind     { return c.kind }
func (c *Canvas) Style() Style          { return c.style }

// SetHitRadius overrides the control point tolerance.
func (c *Canvas) SetHitRadius(r float64) {
	if r > 0 {
		c.hitRadius = r
	}
}

// SetMode switches the interaction mode. Any pending construction or drag
// is dropped and active text entry is completed.
func (c *Canvas) SetMode(mode widget.DrawMode) Output {
	out := c.finishText(false)
	c.machine.Reset()
	c.mode = mode
	return out
}

// SetKind selects the kind constructed in New mode.
func (c *Canvas) SetKind(kind widget.Kind) {
	c.kind = kind
}

// SetStyle sets the style of widgets constructed from now on.
func (c *Canvas) SetStyle(s Style) {
	if s.Width <= 0 {
		s.Width = widget.DefaultWidth
	}
	if s.VertexCount <= 0 {
		s.VertexCount = widget.DefaultVertexCount
	}
	c.style = s
}

// Target returns the current edit target, nil when none is selected.
func (c *Canvas) Target() widget.Widget { return c.target }

// SetTarget selects w as the edit target. A nil w clears the selection.
// Any drag on the previous target is dropped.
func (c *Canvas) SetTarget(w widget.Widget) {
	switch c.machine.State().(type) {
	case pending.Edit, pending.Rotate:
		c.machine.Reset()
	}
	if w == nil {
		c.target = nil
		return
	}
	c.target = widget.Clone(w)
}

// Pending returns the pending construction or drag state.
func (c *Canvas) Pending() pending.State { return c.machine.State() }

// Cursor returns the last known pointer position.
func (c *Canvas) Cursor() (geom.Point, bool) { return c.cursor, c.hasCursor }

// TextActive reports whether text entry is in progress.
func (c *Canvas) TextActive() bool { return c.text != nil }

// Preview returns the in-progress widget for the current pointer position.
func (c *Canvas) Preview() (widget.Widget, bool) {
	if !c.hasCursor {
		return nil, false
	}
	return c.machine.Preview(c.cursor)
}

// Reset clears pending state, selection and text entry without emitting.
func (c *Canvas) Reset() {
	c.machine.Reset()
	c.target = nil
	c.text = nil
}

// Handle processes one event to completion.
func (c *Canvas) Handle(ev Event) Output {
	switch ev.Type {
	case EventPress, EventRelease, EventMove:
		if ev.Pos == nil {
			return Output{}
		}
		c.cursor, c.hasCursor = *ev.Pos, true
		if ev.Type == EventMove {
			c.machine.Motion(*ev.Pos)
			return Output{}
		}
		if ev.Button != ButtonLeft {
			return Output{}
		}
		if ev.Type == EventPress {
			return c.press(*ev.Pos)
		}
		return c.release(*ev.Pos)

	case EventEscape:
		if c.text != nil {
			return c.finishText(true)
		}
		if c.machine.Active() {
			c.log.Debug("pending cleared", "state", stateName(c.machine.State()))
		}
		c.machine.Reset()
		return Output{}

	case EventTick:
		if c.text == nil {
			return Output{}
		}
		c.text.Caret = !c.text.Caret
		return emit(*c.text, widget.StatusTextInProgress)

	case EventRune:
		if c.text == nil || !unicode.IsPrint(ev.Rune) {
			return Output{}
		}
		t := c.text.Append(string(ev.Rune))
		t.Content = norm.NFC.String(t.Content)
		c.text = &t
		return emit(t, widget.StatusTextInProgress)

	case EventBackspace:
		if c.text == nil {
			return Output{}
		}
		t := c.text.Backspace()
		c.text = &t
		return emit(t, widget.StatusTextInProgress)

	case EventEnter:
		return c.finishText(false)

	case EventDelete:
		if c.text != nil || c.target == nil || c.machine.Active() {
			return Output{}
		}
		out := emit(c.target, widget.StatusDelete)
		c.log.Debug("widget deleted", "id", widget.IDOf(c.target))
		c.target = nil
		return out
	}
	return Output{}
}

func (c *Canvas) press(p geom.Point) Output {
	if c.text != nil {
		return c.finishText(false)
	}

	switch c.mode {
	case widget.ModeNew:
		if c.target != nil && !c.machine.Active() {
			if i := HitControlPoint(c.target, p, c.hitRadius); i >= 0 {
				c.beginEdit(i)
				return Output{}
			}
		}
		w, ok := c.machine.Press(c.kind, p, widget.Options{
			Color:       c.style.Color,
			Width:       c.style.Width,
			VertexCount: c.style.VertexCount,
		})
		if !ok {
			return Output{}
		}
		if t, isText := w.(widget.Text); isText {
			t.Caret = true
			c.text = &t
			return emit(t, widget.StatusTextInProgress)
		}
		c.log.Debug("widget completed", "kind", w.Kind(), "id", widget.IDOf(w))
		return emit(w, widget.StatusCompleted)

	case widget.ModeEdit:
		if c.target == nil || c.machine.Active() {
			return Output{}
		}
		if i := HitControlPoint(c.target, p, c.hitRadius); i >= 0 {
			c.beginEdit(i)
		}
		return Output{}

	case widget.ModeRotate:
		if c.target == nil || c.machine.Active() || !c.target.Kind().Rotatable() {
			return Output{}
		}
		if i := HitControlPoint(c.target, p, c.hitRadius); i >= 0 {
			c.machine.BeginRotate(widget.WithMode(c.target, widget.ModeRotate), i, p)
			c.log.Debug("rotate started", "id", widget.IDOf(c.target), "index", i)
		}
		return Output{}
	}

	// DrawAll
	return Output{}
}

func (c *Canvas) beginEdit(i int) {
	c.machine.BeginEdit(widget.WithMode(c.target, widget.ModeEdit), i)
	c.log.Debug("edit started", "id", widget.IDOf(c.target), "index", i)
}

func (c *Canvas) release(p geom.Point) Output {
	w, ok := c.machine.Release(p)
	if !ok {
		return Output{}
	}
	c.target = widget.WithModeAndStatus(w, ptr(widget.ModeDrawAll), ptr(widget.StatusCompleted))
	return Output{Widget: w, Status: widget.StatusCompleted}
}

// finishText ends text entry. With escape set, empty text is deleted
// instead of completed.
func (c *Canvas) finishText(escape bool) Output {
	if c.text == nil {
		return Output{}
	}
	t := *c.text
	t.Caret = false
	c.text = nil

	if escape && t.Content == "" {
		return emit(t, widget.StatusDelete)
	}
	return emit(t, widget.StatusCompleted)
}

// HitControlPoint returns the index of the first control point of w within
// radius of p, or -1.
func HitControlPoint(w widget.Widget, p geom.Point, radius float64) int {
	for i, cp := range w.ControlPoints() {
		if geom.WithinRadius(cp, p, radius) {
			return i
		}
	}
	return -1
}

func stateName(s pending.State) string {
	switch s.(type) {
	case pending.One:
		return "one"
	case pending.Two:
		return "two"
	case pending.Edit:
		return "edit"
	case pending.Rotate:
		return "rotate"
	default:
		return "none"
	}
}

func ptr[T any](v T) *T { return &v }
