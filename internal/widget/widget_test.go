package widget

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/inamate/vecdraw/internal/geom"
)

const tol = 1e-9

func samePoint(a, b geom.Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}

func TestBuildClickCounts(t *testing.T) {
	clicks := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10)}
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			n := kind.Clicks()
			if kind == KindFreeHand {
				n = 1
			}
			if _, ok := Build(kind, clicks[:n-1], Options{}); ok {
				t.Errorf("Build with %d clicks succeeded, want failure", n-1)
			}
			w, ok := Build(kind, clicks[:n], Options{})
			if !ok {
				t.Fatalf("Build with %d clicks failed", n)
			}
			if w.Kind() != kind {
				t.Errorf("Kind() = %v, want %v", w.Kind(), kind)
			}
			info := w.Info()
			if info.ID == "" {
				t.Error("ID is empty")
			}
			if info.Mode != ModeNew || info.Status != StatusCompleted {
				t.Errorf("mode/status = %v/%v, want New/Completed", info.Mode, info.Status)
			}
			if info.Width != DefaultWidth {
				t.Errorf("Width = %v, want default %v", info.Width, DefaultWidth)
			}
		})
	}
}

func TestBuildNone(t *testing.T) {
	if _, ok := Build(KindNone, []geom.Point{geom.Pt(1, 1)}, Options{}); ok {
		t.Error("Build(None) succeeded")
	}
}

func TestCircleRadius(t *testing.T) {
	w, _ := Build(KindCircle, []geom.Point{geom.Pt(0, 0), geom.Pt(3, 4)}, Options{})
	c := w.(Circle)
	if c.Radius != 5 {
		t.Errorf("Radius = %v, want 5", c.Radius)
	}

	moved := c.MoveControlPoint(1, geom.Pt(0, 10)).(Circle)
	if moved.Radius != 10 {
		t.Errorf("Radius after edit = %v, want 10", moved.Radius)
	}
	if c.Radius != 5 {
		t.Error("original circle was mutated")
	}
}

func TestLineEditKeepsOtherEnd(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
	}{
		{"unrotated", 0},
		{"rotated", 90},
		{"oblique", 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := Build(KindLine, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}, Options{})
			w = w.Rotate(tt.degrees)
			from := w.ControlPoints()[0]

			edited := w.MoveControlPoint(1, geom.Pt(99, 99))
			cps := edited.ControlPoints()
			if !samePoint(cps[0], from) {
				t.Errorf("from moved: got %v, want %v", cps[0], from)
			}
			if !samePoint(cps[1], geom.Pt(99, 99)) {
				t.Errorf("to = %v, want (99,99)", cps[1])
			}
			if edited.Rotation() != tt.degrees {
				t.Errorf("Rotation = %v, want %v", edited.Rotation(), tt.degrees)
			}
		})
	}
}

func TestRotateAllKinds(t *testing.T) {
	clicks := []geom.Point{geom.Pt(50, 50), geom.Pt(80, 50), geom.Pt(50, 20)}
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			w, _ := Build(kind, clicks, Options{})
			r := w.Rotate(90)
			if !kind.Rotatable() {
				if r.Rotation() != 0 {
					t.Errorf("Rotation = %v, want 0", r.Rotation())
				}
				return
			}
			if kind == KindArc {
				a, b := w.(Arc), r.(Arc)
				if !scalar.EqualWithinAbs(b.StartAngle-a.StartAngle, math.Pi/2, tol) {
					t.Errorf("start angle shifted by %v, want pi/2", b.StartAngle-a.StartAngle)
				}
				return
			}
			if r.Rotation() != 90 {
				t.Errorf("Rotation = %v, want 90", r.Rotation())
			}
			if w.Rotation() != 0 {
				t.Error("original widget was mutated")
			}
		})
	}
}

func TestArcAngles(t *testing.T) {
	w, _ := Build(KindArc, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10)}, Options{})
	a := w.(Arc)
	if a.Radius != 10 {
		t.Errorf("Radius = %v, want 10", a.Radius)
	}
	if a.StartAngle != 0 {
		t.Errorf("StartAngle = %v, want 0", a.StartAngle)
	}
	if !scalar.EqualWithinAbs(a.EndAngle, math.Pi/2, tol) {
		t.Errorf("EndAngle = %v, want pi/2", a.EndAngle)
	}
	path := a.Path()
	if path[0].Op() != "M" {
		t.Fatalf("path starts with %q", path[0].Op())
	}
	last := path[len(path)-1]
	if !samePoint(geom.Pt(last.Float(5), last.Float(6)), geom.Pt(0, 10)) {
		t.Errorf("arc ends at (%v,%v), want (0,10)", last.Float(5), last.Float(6))
	}
}

func TestPolygonVertices(t *testing.T) {
	w, _ := Build(KindPolygon, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}, Options{VertexCount: 4})
	p := w.(Polygon)
	want := []geom.Point{geom.Pt(10, 0), geom.Pt(0, 10), geom.Pt(-10, 0), geom.Pt(0, -10)}
	if len(p.Points) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(p.Points), len(want))
	}
	for i := range want {
		if !samePoint(p.Points[i], want[i]) {
			t.Errorf("vertex %d = %v, want %v", i, p.Points[i], want[i])
		}
	}
	if p.Path()[len(p.Path())-1].Op() != "Z" {
		t.Error("polygon path is not closed")
	}

	pl, _ := Build(KindPolyLine, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}, Options{VertexCount: 4})
	if pl.Path()[len(pl.Path())-1].Op() == "Z" {
		t.Error("polyline path is closed")
	}
}

func TestRightTriangleKeepsRawClicks(t *testing.T) {
	a, b, c := geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(12, 17)
	w, _ := Build(KindRightTriangle, []geom.Point{a, b, c}, Options{})
	tri := w.(RightTriangle)
	if tri.Points[2] != c || tri.ReferencePoint != c {
		t.Errorf("third vertex = %v, reference = %v, want %v", tri.Points[2], tri.ReferencePoint, c)
	}
	if !samePoint(tri.MidPoint, geom.Pt(14, 17.0/3)) {
		t.Errorf("MidPoint = %v", tri.MidPoint)
	}
}

func TestFreeHandTranslate(t *testing.T) {
	w, _ := Build(KindFreeHand, []geom.Point{geom.Pt(0, 0), geom.Pt(5, 5), geom.Pt(10, 0)}, Options{})
	moved := w.MoveControlPoint(0, geom.Pt(100, 100)).(FreeHand)
	want := []geom.Point{geom.Pt(100, 100), geom.Pt(105, 105), geom.Pt(110, 100)}
	for i := range want {
		if moved.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, moved.Points[i], want[i])
		}
	}
	if w.(FreeHand).Points[0] != geom.Pt(0, 0) {
		t.Error("original stroke was mutated")
	}
}

func TestTextEditing(t *testing.T) {
	w, _ := Build(KindText, []geom.Point{geom.Pt(5, 5)}, Options{})
	txt := w.(Text).Append("héllo").Backspace()
	if txt.Content != "héll" {
		t.Errorf("Content = %q, want %q", txt.Content, "héll")
	}
	txt.Caret = true
	if txt.Display() != "héll|" {
		t.Errorf("Display = %q", txt.Display())
	}
	box := txt.Box()
	if box.X != 5 || box.Y != 5 || box.IsEmpty() {
		t.Errorf("Box = %+v", box)
	}
	if NewText(Common{}, geom.Pt(0, 0), "").Backspace().Content != "" {
		t.Error("Backspace on empty content")
	}
}

func TestWithModeAndStatus(t *testing.T) {
	w, _ := Build(KindFreeHand, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, Options{ID: "wdg_fixed"})
	mode := ModeDrawAll
	updated := WithModeAndStatus(w, &mode, nil)

	if updated.Info().Mode != ModeDrawAll {
		t.Errorf("Mode = %v, want DrawAll", updated.Info().Mode)
	}
	if updated.Info().Status != StatusCompleted {
		t.Errorf("Status changed to %v", updated.Info().Status)
	}
	if w.Info().Mode != ModeNew {
		t.Error("original widget was mutated")
	}
	if IDOf(updated) != "wdg_fixed" {
		t.Errorf("ID = %q", IDOf(updated))
	}

	deleted := WithStatus(updated, StatusDelete)
	if deleted.Info().Status != StatusDelete || deleted.Info().Mode != ModeDrawAll {
		t.Errorf("WithStatus gave %v/%v", deleted.Info().Mode, deleted.Info().Status)
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range append([]Kind{KindNone}, Kinds...) {
		got, err := ParseKind(kind.String())
		if err != nil || got != kind {
			t.Errorf("ParseKind(%q) = %v, %v", kind.String(), got, err)
		}
	}
	if _, err := ParseKind("Rectangle"); err == nil {
		t.Error("ParseKind(Rectangle) succeeded")
	}
}
