package scene

import (
	"testing"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/widget"
)

func line(id string, mode widget.DrawMode, status widget.DrawStatus) widget.Widget {
	return widget.NewLine(widget.Common{ID: id, Mode: mode, Status: status, Width: 1}, geom.Pt(0, 0), geom.Pt(1, 1))
}

func TestApplyRules(t *testing.T) {
	tests := []struct {
		name    string
		in      widget.Widget
		changed bool
		stored  bool
	}{
		{"new completed inserts", line("wdg_a", widget.ModeNew, widget.StatusCompleted), true, true},
		{"in progress ignored", line("wdg_b", widget.ModeNew, widget.StatusInProgress), false, false},
		{"text in progress inserts", line("wdg_c", widget.ModeNew, widget.StatusTextInProgress), true, true},
		{"edit of unknown id ignored", line("wdg_d", widget.ModeEdit, widget.StatusCompleted), false, false},
		{"delete of unknown id", line("wdg_e", widget.ModeDrawAll, widget.StatusDelete), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if got := s.Apply(tt.in); got != tt.changed {
				t.Errorf("Apply() = %v, want %v", got, tt.changed)
			}
			_, ok := s.Get(widget.IDOf(tt.in))
			if ok != tt.stored {
				t.Errorf("stored = %v, want %v", ok, tt.stored)
			}
		})
	}
}

func TestCompletedBecomesDrawAll(t *testing.T) {
	s := New()
	s.Apply(line("wdg_a", widget.ModeNew, widget.StatusCompleted))
	w, _ := s.Get("wdg_a")
	if w.Info().Mode != widget.ModeDrawAll {
		t.Errorf("stored mode = %v, want DrawAll", w.Info().Mode)
	}

	edited := widget.NewLine(widget.Common{ID: "wdg_a", Mode: widget.ModeEdit, Status: widget.StatusCompleted}, geom.Pt(0, 0), geom.Pt(99, 99))
	if !s.Apply(edited) {
		t.Fatal("edit of a stored id was rejected")
	}
	w, _ = s.Get("wdg_a")
	if got := w.(widget.Line).Points[1]; got != geom.Pt(99, 99) {
		t.Errorf("edit not applied, to = %v", got)
	}
	if w.Info().Mode != widget.ModeDrawAll || s.Len() != 1 {
		t.Errorf("mode = %v, len = %d", w.Info().Mode, s.Len())
	}
}

func TestDeleteRemovesOnlyTarget(t *testing.T) {
	s := New()
	for _, id := range []string{"wdg_a", "wdg_b", "wdg_c"} {
		s.Apply(line(id, widget.ModeNew, widget.StatusCompleted))
	}
	before, _ := s.Get("wdg_c")

	if !s.Apply(line("wdg_b", widget.ModeDrawAll, widget.StatusDelete)) {
		t.Fatal("delete reported no change")
	}
	if got := s.IDs(); len(got) != 2 || got[0] != "wdg_a" || got[1] != "wdg_c" {
		t.Errorf("IDs = %v, want [wdg_a wdg_c]", got)
	}
	after, _ := s.Get("wdg_c")
	if after.(widget.Line) != before.(widget.Line) {
		t.Error("untargeted widget changed")
	}
}

func TestReplaceKeepsOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"wdg_z", "wdg_a", "wdg_m"} {
		s.Apply(line(id, widget.ModeNew, widget.StatusCompleted))
	}
	// updating the first widget must not move it to the end
	s.Apply(line("wdg_z", widget.ModeNew, widget.StatusTextInProgress))

	want := []string{"wdg_z", "wdg_a", "wdg_m"}
	got := s.IDs()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}
