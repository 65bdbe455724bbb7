package geom

import "testing"

func TestRectFromCorners(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		want     Rect
	}{
		{"down right", Pt(10, 10), Pt(50, 40), Rect{X: 10, Y: 10, Width: 40, Height: 30}},
		{"up left", Pt(50, 40), Pt(10, 10), Rect{X: 10, Y: 10, Width: 40, Height: 30}},
		{"up right", Pt(10, 40), Pt(50, 10), Rect{X: 10, Y: 10, Width: 40, Height: 30}},
		{"down left", Pt(50, 10), Pt(10, 40), Rect{X: 10, Y: 10, Width: 40, Height: 30}},
		{"shared x downward", Pt(5, 5), Pt(5, 40), Rect{X: 5, Y: 5, Width: 0, Height: 35}},
		{"shared x upward", Pt(5, 40), Pt(5, 5), Rect{X: 5, Y: 5, Width: 0, Height: 35}},
		{"shared y rightward", Pt(10, 20), Pt(50, 20), Rect{X: 10, Y: 20, Width: 40, Height: 0}},
		{"shared y leftward", Pt(50, 20), Pt(10, 20), Rect{X: 10, Y: 20, Width: 40, Height: 0}},
		{"single point", Pt(7, 7), Pt(7, 7), Rect{X: 7, Y: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectFromCorners(tt.from, tt.to)
			if got != tt.want {
				t.Errorf("RectFromCorners(%v, %v) = %+v, want %+v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 40, Height: 30}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(20, 20), true},
		{"top left corner", Pt(10, 10), true},
		{"bottom right corner", Pt(50, 40), true},
		{"left of", Pt(9, 20), false},
		{"below", Pt(20, 41), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 20, Height: 10}

	want := Rect{X: 0, Y: -5, Width: 25, Height: 15}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %+v, want %+v", got, b)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 40, Height: 30}
	if got, want := r.Inset(5), (Rect{X: 15, Y: 15, Width: 30, Height: 20}); got != want {
		t.Errorf("Inset(5) = %+v, want %+v", got, want)
	}
	if got, want := r.Inset(-5), (Rect{X: 5, Y: 5, Width: 50, Height: 40}); got != want {
		t.Errorf("Inset(-5) = %+v, want %+v", got, want)
	}
	if !r.Inset(20).IsEmpty() {
		t.Error("over-inset rect should be empty")
	}
}
