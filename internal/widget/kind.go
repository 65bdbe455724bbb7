package widget

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a shape-kind name cannot be parsed.
var ErrUnknownKind = errors.New("unknown widget kind")

// Kind identifies a widget variant.
type Kind int

const (
	KindNone Kind = iota
	KindArc
	KindBezier
	KindCircle
	KindEllipse
	KindLine
	KindPolygon
	KindPolyLine
	KindRightTriangle
	KindFreeHand
	KindText
)

// Kinds lists every drawable kind, in menu order.
var Kinds = []Kind{KindArc, KindBezier, KindCircle, KindEllipse, KindLine, KindPolygon, KindPolyLine, KindRightTriangle, KindFreeHand, KindText}

var kindNames = map[Kind]string{
	KindNone:          "None",
	KindArc:           "Arc",
	KindBezier:        "Bezier",
	KindCircle:        "Circle",
	KindEllipse:       "Ellipse",
	KindLine:          "Line",
	KindPolygon:       "Polygon",
	KindPolyLine:      "PolyLine",
	KindRightTriangle: "RightTriangle",
	KindFreeHand:      "FreeHand",
	KindText:          "Text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind name as written in scene files.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Clicks returns the number of pointer presses that complete a widget of
// this kind. A freehand stroke counts its start and finish presses; motion between
// them is accumulated separately.
func (k Kind) Clicks() int {
	switch k {
	case KindText:
		return 1
	case KindCircle, KindLine, KindPolygon, KindPolyLine, KindFreeHand:
		return 2
	case KindArc, KindBezier, KindEllipse, KindRightTriangle:
		return 3
	default:
		return 0
	}
}

// Rotatable reports whether rotate mode applies to the kind.
func (k Kind) Rotatable() bool {
	switch k {
	case KindArc, KindBezier, KindEllipse, KindLine, KindPolygon, KindPolyLine, KindRightTriangle, KindText:
		return true
	default:
		return false
	}
}

// DrawMode is the interaction mode governing how pointer events are read.
type DrawMode int

const (
	ModeDrawAll DrawMode = iota
	ModeNew
	ModeEdit
	ModeRotate
)

func (m DrawMode) String() string {
	switch m {
	case ModeDrawAll:
		return "DrawAll"
	case ModeNew:
		return "New"
	case ModeEdit:
		return "Edit"
	case ModeRotate:
		return "Rotate"
	default:
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
}

// ParseDrawMode maps a mode picker entry to a mode. "None" and unknown
// entries select ModeDrawAll.
func ParseDrawMode(s string) DrawMode {
	switch s {
	case "New":
		return ModeNew
	case "Edit":
		return ModeEdit
	case "Rotate":
		return ModeRotate
	default:
		return ModeDrawAll
	}
}

// DrawStatus tells the host how to fold a returned widget into the scene.
type DrawStatus int

const (
	StatusInProgress DrawStatus = iota
	StatusCompleted
	StatusDelete
	StatusTextInProgress
)

func (s DrawStatus) String() string {
	switch s {
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	case StatusDelete:
		return "Delete"
	case StatusTextInProgress:
		return "TextInProgress"
	default:
		return fmt.Sprintf("DrawStatus(%d)", int(s))
	}
}
