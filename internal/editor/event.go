package editor

import (
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

// EventType enumerates the input events a host delivers.
type EventType int

const (
	EventPress EventType = iota
	EventRelease
	EventMove
	EventEscape
	EventTick
	EventRune
	EventEnter
	EventBackspace
	EventDelete
)

var eventNames = [...]string{
	EventPress:     "press",
	EventRelease:   "release",
	EventMove:      "move",
	EventEscape:    "escape",
	EventTick:      "tick",
	EventRune:      "rune",
	EventEnter:     "enter",
	EventBackspace: "backspace",
	EventDelete:    "delete",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is one input event. Pointer events with a nil Pos are ignored.
type Event struct {
	Type   EventType
	Pos    *geom.Point
	Button Button
	Rune   rune
}

// Press builds a left-button press at p.
func Press(p geom.Point) Event { return Event{Type: EventPress, Pos: &p} }

// Release builds a left-button release at p.
func Release(p geom.Point) Event { return Event{Type: EventRelease, Pos: &p} }

// Move builds a pointer motion event at p.
func Move(p geom.Point) Event { return Event{Type: EventMove, Pos: &p} }

// Key builds a non-pointer event of type t.
func Key(t EventType) Event { return Event{Type: t} }

// Rune builds a typed character event.
func Rune(r rune) Event { return Event{Type: EventRune, Rune: r} }

// Output is what an event produced: nothing, or one widget and the status
// telling the host how to fold it into the scene.
type Output struct {
	Widget widget.Widget
	Status widget.DrawStatus
}

// Empty reports whether the event produced nothing.
func (o Output) Empty() bool { return o.Widget == nil }

func emit(w widget.Widget, status widget.DrawStatus) Output {
	return Output{Widget: widget.WithStatus(w, status), Status: status}
}
