// Package engine is the single update entry point of a drawing session. It
// routes input through the editor, folds the results into the scene and
// compiles the scene into draw commands on demand.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/editor"
	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/pending"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/typeid"
	"github.com/inamate/vecdraw/internal/widget"
)

var (
	ErrEmptyScene     = errors.New("scene is empty")
	ErrWidgetNotFound = errors.New("widget not found")
)

// Options configures a Session. Zero values select the defaults.
type Options struct {
	ID        string
	Logger    *slog.Logger
	HitRadius float64
	Style     editor.Style
}

// Session owns one scene and its interaction state. It is not safe for
// concurrent use; hosts serialize every call.
type Session struct {
	id        string
	scene     *scene.Scene
	canvas    *editor.Canvas
	hitRadius float64

	// Cached draw commands for the settled scene
	cache []DrawCommand

	// Dirty flag - command cache needs rebuild
	dirty bool

	log *slog.Logger
}

// NewSession creates a session with an empty scene.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := opts.ID
	if id == "" {
		id = typeid.NewSessionID()
	}
	hit := opts.HitRadius
	if hit <= 0 {
		hit = geom.HitRadius
	}

	canvas := editor.New(logger)
	canvas.SetHitRadius(hit)
	if opts.Style != (editor.Style{}) {
		canvas.SetStyle(opts.Style)
	}

	return &Session{
		id:        id,
		scene:     scene.New(),
		canvas:    canvas,
		hitRadius: hit,
		dirty:     true,
		log:       logger.With("session", id),
	}
}

// --- Commands (host → session) ---

// Handle processes one event to completion and applies its output to the
// scene.
func (s *Session) Handle(ev editor.Event) editor.Output {
	out := s.canvas.Handle(ev)
	s.apply(out)
	return out
}

func (s *Session) apply(out editor.Output) {
	if out.Empty() {
		return
	}
	if s.scene.Apply(out.Widget) {
		s.dirty = true
		s.log.Debug("scene updated", "id", widget.IDOf(out.Widget), "status", out.Status)
	}
}

// SetMode switches the interaction mode. Edit and Rotate need at least one
// widget to act on.
func (s *Session) SetMode(mode widget.DrawMode) error {
	if (mode == widget.ModeEdit || mode == widget.ModeRotate) && s.scene.Len() == 0 {
		return fmt.Errorf("set mode %s: %w", mode, ErrEmptyScene)
	}
	s.apply(s.canvas.SetMode(mode))
	return nil
}

// SetKind selects the kind created in New mode.
func (s *Session) SetKind(kind widget.Kind) {
	s.canvas.SetKind(kind)
}

// SetStyle sets the style of widgets created from now on.
func (s *Session) SetStyle(style editor.Style) {
	s.canvas.SetStyle(style)
}

// Select makes the widget with id the edit target.
func (s *Session) Select(id string) error {
	w, ok := s.scene.Get(id)
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrWidgetNotFound)
	}
	s.canvas.SetTarget(w)
	return nil
}

// SelectAt selects the topmost widget under p. It clears the selection and
// reports false when nothing is hit.
func (s *Session) SelectAt(p geom.Point) (string, bool) {
	id := HitTest(s.scene.Widgets(), p, s.hitRadius)
	if id == "" {
		s.canvas.SetTarget(nil)
		return "", false
	}
	_ = s.Select(id)
	return id, true
}

// Deselect clears the edit target.
func (s *Session) Deselect() {
	s.canvas.SetTarget(nil)
}

// Clear empties the scene and resets all interaction state.
func (s *Session) Clear() {
	s.scene.Clear()
	s.canvas.Reset()
	s.canvas.SetMode(widget.ModeDrawAll)
	s.dirty = true
}

// Load replaces the scene with imported records. On error the current
// scene is kept.
func (s *Session) Load(records []document.ExportRecord) error {
	loaded, err := document.ImportScene(records)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	s.scene = loaded
	s.canvas.Reset()
	s.canvas.SetMode(widget.ModeDrawAll)
	s.dirty = true
	s.log.Info("scene loaded", "widgets", loaded.Len())
	return nil
}

// RequestRedraw invalidates the cached draw commands.
func (s *Session) RequestRedraw() {
	s.dirty = true
}

// --- Queries (host ← session) ---

func (s *Session) ID() string               { return s.id }
func (s *Session) Mode() widget.DrawMode    { return s.canvas.Mode() }
func (s *Session) Kind() widget.Kind        { return s.canvas.Kind() }
func (s *Session) Style() editor.Style      { return s.canvas.Style() }
func (s *Session) Target() widget.Widget    { return s.canvas.Target() }
func (s *Session) Pending() pending.State   { return s.canvas.Pending() }
func (s *Session) Widgets() []widget.Widget { return s.scene.Widgets() }

// TimerEnabled reports whether the host should deliver tick events.
func (s *Session) TimerEnabled() bool { return s.canvas.TextActive() }

// Export flattens the scene for saving.
func (s *Session) Export() []document.ExportRecord {
	return document.ExportScene(s.scene)
}

// Render returns the draw commands for the scene followed by the
// interaction overlay.
func (s *Session) Render() []DrawCommand {
	if s.dirty {
		s.cache = CompileDrawCommands(s.scene.Widgets())
		s.dirty = false
	}

	preview, hasPreview := s.canvas.Preview()
	previewID := ""
	if hasPreview {
		previewID = widget.IDOf(preview)
	}

	commands := make([]DrawCommand, 0, len(s.cache)+4)
	for _, cmd := range s.cache {
		// the dragged copy replaces the stored widget
		if previewID != "" && cmd.ObjectID == previewID {
			continue
		}
		commands = append(commands, cmd)
	}

	if one, ok := s.canvas.Pending().(pending.One); ok {
		if cursor, ok := s.canvas.Cursor(); ok && one.Kind != widget.KindFreeHand {
			commands = append(commands, compileGuide(one.Anchor, cursor))
		}
	}
	if hasPreview {
		commands = append(commands, compileWidget(preview))
	}
	if target := s.canvas.Target(); target != nil && !hasPreview {
		commands = append(commands, compileMarkers(target)...)
	}
	return commands
}

// RenderJSON returns Render serialized to JSON.
func (s *Session) RenderJSON() string {
	result, err := DrawCommandsToJSON(s.Render())
	if err != nil {
		s.log.Error("encode draw commands", "error", err)
	}
	return result
}

// GetSelectionBounds returns the bounding box of the edit target as JSON.
func (s *Session) GetSelectionBounds() string {
	target := s.canvas.Target()
	if target == nil {
		return RectToJSON(geom.Rect{})
	}
	return RectToJSON(Bounds(target))
}
