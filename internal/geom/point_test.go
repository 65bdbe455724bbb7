package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Pt(3, 3), Pt(3, 3), 0},
		{"horizontal", Pt(-2, 1), Pt(8, 1), 10},
		{"three four five", Pt(0, 0), Pt(3, 4), 5},
		{"symmetric", Pt(3, 4), Pt(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.a.Distance(tt.b); !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("Point.Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		want float64
	}{
		{"east", Vector{X: 1}, 0},
		{"south on screen", Vector{Y: 1}, math.Pi / 2},
		{"west", Vector{X: -1}, math.Pi},
		{"north on screen", Vector{Y: -1}, -math.Pi / 2},
		{"diagonal", Vector{X: 2, Y: 2}, math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Angle(tt.v); !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("Angle(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestPointInCircle(t *testing.T) {
	candidate := Pt(100, 100)
	tests := []struct {
		name    string
		pointer Point
		want    bool
	}{
		{"same point", candidate, true},
		{"inside", Pt(103, 102), true},
		{"on boundary", Pt(100+HitRadius, 100), true},
		{"on diagonal boundary", Pt(103, 104), true},
		{"just beyond", Pt(100+HitRadius+1e-9, 100), false},
		{"far away", Pt(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInCircle(candidate, tt.pointer); got != tt.want {
				t.Errorf("PointInCircle(%v, %v) = %v, want %v", candidate, tt.pointer, got, tt.want)
			}
		})
	}
}

func TestEllipticalArcEndpoints(t *testing.T) {
	c := Pt(5, 5)
	const rx, ry = 20.0, 10.0
	onEllipse := func(x, y float64) bool {
		dx, dy := (x-c.X)/rx, (y-c.Y)/ry
		return scalar.EqualWithinAbs(dx*dx+dy*dy, 1, tol)
	}

	tests := []struct {
		name       string
		start, end float64
		segments   int
	}{
		{"quarter", 0, math.Pi / 2, 1},
		{"most of a turn", 0, 4.5, 3},
		{"reversed", math.Pi, 0, 2},
		{"partial", 0.3, 2.1, 2},
		{"empty sweep", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := EllipticalArc(c, rx, ry, tt.start, tt.end)
			if len(path) != tt.segments+1 {
				t.Fatalf("got %d commands, want %d", len(path), tt.segments+1)
			}
			if path[0].Op() != "M" {
				t.Fatalf("first command = %q, want M", path[0].Op())
			}

			x0, y0 := path[0].Float(1), path[0].Float(2)
			if !onEllipse(x0, y0) {
				t.Errorf("start (%v, %v) is off the ellipse", x0, y0)
			}
			wantX, wantY := c.X+rx*math.Cos(tt.start), c.Y+ry*math.Sin(tt.start)
			if !scalar.EqualWithinAbs(x0, wantX, tol) || !scalar.EqualWithinAbs(y0, wantY, tol) {
				t.Errorf("start = (%v, %v), want (%v, %v)", x0, y0, wantX, wantY)
			}

			for i, cmd := range path[1:] {
				if cmd.Op() != "C" {
					t.Fatalf("command %d = %q, want C", i+1, cmd.Op())
				}
				if x, y := cmd.Float(5), cmd.Float(6); !onEllipse(x, y) {
					t.Errorf("segment %d ends at (%v, %v), off the ellipse", i, x, y)
				}
			}

			last := path[len(path)-1]
			x1, y1 := last.Float(5), last.Float(6)
			wantX, wantY = c.X+rx*math.Cos(tt.end), c.Y+ry*math.Sin(tt.end)
			if !scalar.EqualWithinAbs(x1, wantX, tol) || !scalar.EqualWithinAbs(y1, wantY, tol) {
				t.Errorf("end = (%v, %v), want (%v, %v)", x1, y1, wantX, wantY)
			}
		})
	}
}
