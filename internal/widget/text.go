package widget

import (
	"strings"
	"unicode/utf8"

	"github.com/inamate/vecdraw/internal/geom"
)

const (
	DefaultTextSize   = 16.0
	DefaultLineHeight = 1.2
	DefaultFont       = "default"

	// advance is the estimated glyph width as a fraction of the text size.
	advance = 0.6
	caret   = "|"
)

// Text alignment values.
const (
	AlignLeft   = "Left"
	AlignCenter = "Center"
	AlignRight  = "Right"
	AlignTop    = "Top"
	AlignBottom = "Bottom"
)

// Text is a label anchored at Position.
type Text struct {
	Common
	Content    string
	Position   geom.Point
	Degrees    float64
	Size       float64
	LineHeight float64
	Font       string
	HAlign     string
	VAlign     string

	// Caret is the blink phase while the text is being typed. It is never
	// persisted.
	Caret bool
}

func NewText(c Common, position geom.Point, content string) Text {
	return Text{
		Common:     c,
		Content:    content,
		Position:   position,
		Size:       DefaultTextSize,
		LineHeight: DefaultLineHeight,
		Font:       DefaultFont,
		HAlign:     AlignLeft,
		VAlign:     AlignTop,
	}
}

func (t Text) Kind() Kind                  { return KindText }
func (t Text) Pivot() geom.Point           { return t.Position }
func (t Text) Rotation() float64           { return t.Degrees }
func (t Text) ControlPoints() []geom.Point { return []geom.Point{t.Position} }

func (t Text) MoveControlPoint(i int, p geom.Point) Widget {
	if i != 0 {
		return t
	}
	t.Position = p
	return t
}

func (t Text) Rotate(delta float64) Widget {
	t.Degrees += delta
	return t
}

// Append returns a copy with s added to the content.
func (t Text) Append(s string) Text {
	t.Content += s
	return t
}

// Backspace returns a copy with the last rune removed.
func (t Text) Backspace() Text {
	if t.Content == "" {
		return t
	}
	_, size := utf8.DecodeLastRuneInString(t.Content)
	t.Content = t.Content[:len(t.Content)-size]
	return t
}

// Display is the string to draw, including the caret while it is shown.
func (t Text) Display() string {
	if t.Caret {
		return t.Content + caret
	}
	return t.Content
}

// Box estimates the local-space extent of the rendered text.
func (t Text) Box() geom.Rect {
	size := t.Size
	if size <= 0 {
		size = DefaultTextSize
	}
	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}

	lines := strings.Split(t.Content, "\n")
	widest := 1
	for _, l := range lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	w := float64(widest) * size * advance
	h := float64(len(lines)) * size * lineHeight

	x, y := t.Position.X, t.Position.Y
	switch t.HAlign {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	switch t.VAlign {
	case AlignCenter:
		y -= h / 2
	case AlignBottom:
		y -= h
	}
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

// Path is the outline of Box, used for bounds and selection.
func (t Text) Path() geom.Path { return t.Box().Path() }

func (t Text) withCommon(c Common) Widget { t.Common = c; return t }
func (t Text) clone() Widget              { return t }
