// Package scene holds the widgets of one drawing, keyed by id, and applies
// the insert/update/delete rules for widgets handed back by the editor.
package scene

import (
	"sort"

	"github.com/inamate/vecdraw/internal/widget"
)

type entry struct {
	w   widget.Widget
	seq uint64
}

// Scene owns every widget of a drawing. Iteration follows insertion order;
// replacing a widget keeps its position.
type Scene struct {
	entries map[string]entry
	next    uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{entries: make(map[string]entry)}
}

// Apply folds a widget returned by the editor into the scene and reports
// whether the scene changed.
//
//   - Delete removes the widget's id.
//   - TextInProgress inserts or updates.
//   - Completed from a New interaction inserts, from an Edit or Rotate
//     drag updates an existing id only. Either way the stored widget is
//     switched to DrawAll.
//   - InProgress is preview only and never stored.
func (s *Scene) Apply(w widget.Widget) bool {
	if w == nil {
		return false
	}
	info := w.Info()

	switch info.Status {
	case widget.StatusDelete:
		return s.Remove(info.ID)

	case widget.StatusTextInProgress:
		s.Put(w)
		return true

	case widget.StatusCompleted:
		if info.Mode == widget.ModeEdit || info.Mode == widget.ModeRotate {
			if _, ok := s.entries[info.ID]; !ok {
				return false
			}
		}
		s.Put(widget.WithMode(w, widget.ModeDrawAll))
		return true

	default:
		return false
	}
}

// Put inserts w, replacing any widget with the same id in place.
func (s *Scene) Put(w widget.Widget) {
	id := widget.IDOf(w)
	if e, ok := s.entries[id]; ok {
		s.entries[id] = entry{w: widget.Clone(w), seq: e.seq}
		return
	}
	s.entries[id] = entry{w: widget.Clone(w), seq: s.next}
	s.next++
}

// Get returns a copy of the widget stored under id.
func (s *Scene) Get(id string) (widget.Widget, bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return widget.Clone(e.w), true
}

// Remove deletes id and reports whether it was present.
func (s *Scene) Remove(id string) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

func (s *Scene) Len() int { return len(s.entries) }

// Clear removes every widget.
func (s *Scene) Clear() {
	s.entries = make(map[string]entry)
	s.next = 0
}

// Replace clears the scene and inserts widgets in order.
func (s *Scene) Replace(widgets []widget.Widget) {
	s.Clear()
	for _, w := range widgets {
		s.Put(w)
	}
}

// Widgets returns copies of all widgets in insertion order.
func (s *Scene) Widgets() []widget.Widget {
	ordered := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	out := make([]widget.Widget, len(ordered))
	for i, e := range ordered {
		out[i] = widget.Clone(e.w)
	}
	return out
}

// IDs returns the ids in insertion order.
func (s *Scene) IDs() []string {
	widgets := s.Widgets()
	ids := make([]string, len(widgets))
	for i, w := range widgets {
		ids[i] = widget.IDOf(w)
	}
	return ids
}

// Map returns the scene as a map keyed by id.
func (s *Scene) Map() map[string]widget.Widget {
	m := make(map[string]widget.Widget, len(s.entries))
	for id, e := range s.entries {
		m[id] = widget.Clone(e.w)
	}
	return m
}
