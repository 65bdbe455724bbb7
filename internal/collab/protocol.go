package collab

import (
	"encoding/json"

	"github.com/inamate/vecdraw/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Subject   string          `json:"subject,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Pointer and keyboard input
	TypePointerPress   = "pointer.press"
	TypePointerRelease = "pointer.release"
	TypePointerMove    = "pointer.move"
	TypeKeyEscape      = "key.escape"
	TypeKeyEnter       = "key.enter"
	TypeKeyBackspace   = "key.backspace"
	TypeKeyDelete      = "key.delete"
	TypeKeyRune        = "key.rune"
	TypeTick           = "tick"

	// Editor controls
	TypeModeSet    = "mode.set"
	TypeKindSelect = "kind.select"
	TypeStyleSet   = "style.set"
	TypeSelectAt   = "select.at"
	TypeSelectID   = "select.id"

	// Scene management
	TypeSceneClear = "scene.clear"
	TypeSceneSave  = "scene.save"
	TypeSceneLoad  = "scene.load"
	TypeSceneSaved = "scene.saved"

	// Output
	TypeRender = "render"

	// Presence
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
)

type WelcomePayload struct {
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	// Request is the type of the message that failed.
	Request string `json:"request,omitempty"`
}

// PointerPayload carries pointer.* and select.at positions. A missing
// position is ignored by the editor.
type PointerPayload struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Button int      `json:"button,omitempty"`
}

type RunePayload struct {
	Text string `json:"text"`
}

type ModePayload struct {
	Mode string `json:"mode"`
}

type KindPayload struct {
	Kind string `json:"kind"`
}

// StylePayload sets the style of new widgets. Zero or unparsable values
// select the defaults.
type StylePayload struct {
	Color      string  `json:"color"`
	Width      float64 `json:"width"`
	PolyPoints int     `json:"polyPoints"`
}

type SelectIDPayload struct {
	ID string `json:"id"`
}

type ScenePayload struct {
	Name string `json:"name"`
}

type RenderPayload struct {
	Commands []engine.DrawCommand `json:"commands"`
	Mode     string               `json:"mode"`
	Kind     string               `json:"kind"`
	TargetID string               `json:"targetId,omitempty"`
	Timer    bool                 `json:"timer"`
	Widgets  int                  `json:"widgets"`
}

type PresencePayload struct {
	Cursor  *CursorPos `json:"cursor,omitempty"`
	Subject string     `json:"subject,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	ClientID string `json:"clientId"`
	Subject  string `json:"subject"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

func newMessage(typ string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}
