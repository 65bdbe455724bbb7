package document

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/widget"
)

const tol = 1e-9

// sampleScene builds one widget of every kind with non-default styling
// and rotation.
func sampleScene(t *testing.T) *scene.Scene {
	t.Helper()
	clicks := []geom.Point{geom.Pt(100, 100), geom.Pt(160, 120), geom.Pt(90, 40)}
	s := scene.New()
	for i, kind := range widget.Kinds {
		w, ok := widget.Build(kind, clicks, widget.Options{
			Color:       geom.Danger,
			Width:       float64(i + 1),
			VertexCount: 5 + i,
		})
		if !ok {
			t.Fatalf("build %v", kind)
		}
		w = w.Rotate(12.5)
		if txt, isText := w.(widget.Text); isText {
			w = txt.Append("label")
		}
		s.Put(w)
	}
	return s
}

func samePoint(a, b geom.Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}

func sameRecord(t *testing.T, got, want ExportRecord) {
	t.Helper()
	if got.Name != want.Name || got.Content != want.Content || got.PolyPoints != want.PolyPoints {
		t.Errorf("%s: name/content/polyPoints = %q/%q/%d, want %q/%q/%d",
			want.Name, got.Name, got.Content, got.PolyPoints, want.Name, want.Content, want.PolyPoints)
	}
	if len(got.Points) != len(want.Points) {
		t.Fatalf("%s: %d points, want %d", want.Name, len(got.Points), len(want.Points))
	}
	for i := range want.Points {
		if !samePoint(got.Points[i], want.Points[i]) {
			t.Errorf("%s: point %d = %v, want %v", want.Name, i, got.Points[i], want.Points[i])
		}
	}
	if !samePoint(got.MidPoint, want.MidPoint) || !samePoint(got.ReferencePoint, want.ReferencePoint) {
		t.Errorf("%s: mid/ref = %v/%v, want %v/%v", want.Name, got.MidPoint, got.ReferencePoint, want.MidPoint, want.ReferencePoint)
	}
	if !scalar.EqualWithinAbs(got.Rotation, want.Rotation, tol) || !scalar.EqualWithinAbs(got.Radius, want.Radius, tol) {
		t.Errorf("%s: rotation/radius = %v/%v, want %v/%v", want.Name, got.Rotation, got.Radius, want.Rotation, want.Radius)
	}
	if got.Color != want.Color || got.Width != want.Width {
		t.Errorf("%s: color/width = %v/%v, want %v/%v", want.Name, got.Color, got.Width, want.Color, want.Width)
	}
}

func TestRoundTripAllKinds(t *testing.T) {
	original := sampleScene(t)
	records := ExportScene(original)
	if len(records) != len(widget.Kinds) {
		t.Fatalf("exported %d records, want %d", len(records), len(widget.Kinds))
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := ImportScene(decoded)
	if err != nil {
		t.Fatal(err)
	}

	before := original.Widgets()
	after := loaded.Widgets()
	if len(after) != len(before) {
		t.Fatalf("loaded %d widgets, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].Kind() != before[i].Kind() {
			t.Errorf("widget %d kind = %v, want %v", i, after[i].Kind(), before[i].Kind())
		}
		if widget.IDOf(after[i]) == widget.IDOf(before[i]) {
			t.Errorf("%v: import reused id %q", before[i].Kind(), widget.IDOf(before[i]))
		}
		info := after[i].Info()
		if info.Mode != widget.ModeDrawAll || info.Status != widget.StatusCompleted {
			t.Errorf("%v: mode/status = %v/%v", before[i].Kind(), info.Mode, info.Status)
		}
		if !scalar.EqualWithinAbs(after[i].Rotation(), before[i].Rotation(), tol) {
			t.Errorf("%v: rotation = %v, want %v", before[i].Kind(), after[i].Rotation(), before[i].Rotation())
		}
		sameRecord(t, Export([]widget.Widget{after[i]})[0], records[i])
	}
}

func TestRoundTripGeometry(t *testing.T) {
	arc := widget.NewArc(widget.Common{ID: "wdg_arc", Width: 2}, geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, -10))
	text := widget.NewText(widget.Common{ID: "wdg_txt", Width: 2}, geom.Pt(4, 5), "hello")

	byID, ids, err := Import(Export([]widget.Widget{arc, text}))
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || len(byID) != 2 {
		t.Fatalf("got %d ids, %d widgets", len(ids), len(byID))
	}

	gotArc := byID[ids[0]].(widget.Arc)
	if gotArc.StartAngle != arc.StartAngle || gotArc.EndAngle != arc.EndAngle || gotArc.Radius != arc.Radius {
		t.Errorf("arc = %+v, want %+v", gotArc, arc)
	}
	gotText := byID[ids[1]].(widget.Text)
	if gotText.Content != "hello" || gotText.Position != geom.Pt(4, 5) {
		t.Errorf("text = %q at %v", gotText.Content, gotText.Position)
	}
	if gotText.Size != widget.DefaultTextSize || gotText.Font != widget.DefaultFont {
		t.Errorf("text styling = %v/%q", gotText.Size, gotText.Font)
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []ExportRecord
		want    error
	}{
		{"unknown kind", []ExportRecord{{Name: "Rectangle"}}, ErrUnknownKind},
		{"short line", []ExportRecord{{Name: "Line", Points: []geom.Point{{X: 1, Y: 1}}}}, ErrMalformedRecord},
		{"short arc", []ExportRecord{{Name: "Arc"}}, ErrMalformedRecord},
		{"polygon count mismatch", []ExportRecord{{Name: "Polygon", PolyPoints: 5, Points: []geom.Point{{X: 1}, {Y: 1}, {X: -1}}}}, ErrMalformedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Import(tt.records)
			if !errors.Is(err, tt.want) {
				t.Errorf("Import() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImportRegularVertexCount(t *testing.T) {
	square := []geom.Point{{X: 10, Y: 0}, {X: 0, Y: 10}, {X: -10, Y: 0}, {X: 0, Y: -10}}
	tests := []struct {
		name       string
		kind       string
		polyPoints uint
		points     []geom.Point
		want       int
	}{
		{"count from points", "Polygon", 0, square, 4},
		{"polyline count from points", "PolyLine", 0, square, 4},
		{"explicit count", "Polygon", 4, square, 4},
		{"regenerated vertices", "Polygon", 6, nil, 6},
		{"nothing stored", "PolyLine", 0, nil, widget.DefaultVertexCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ExportRecord{
				Name:           tt.kind,
				PolyPoints:     tt.polyPoints,
				Points:         tt.points,
				ReferencePoint: geom.Pt(10, 0),
				Width:          2,
			}
			byID, ids, err := Import([]ExportRecord{rec})
			if err != nil {
				t.Fatal(err)
			}
			w := byID[ids[0]]
			if got := len(w.Path().Points()); got < tt.want {
				t.Errorf("path has %d points, want at least %d", got, tt.want)
			}

			// dragging the reference point regenerates the vertices
			moved := w.MoveControlPoint(1, geom.Pt(20, 0))
			if got := len(moved.Path().Points()); got < tt.want {
				t.Errorf("after edit path has %d points, want at least %d", got, tt.want)
			}
			if got := Export([]widget.Widget{moved})[0]; got.PolyPoints != uint(tt.want) || len(got.Points) != tt.want {
				t.Errorf("exported polyPoints/points = %d/%d, want %d", got.PolyPoints, len(got.Points), tt.want)
			}
		})
	}
}

func TestImportSkipsNone(t *testing.T) {
	byID, ids, err := Import([]ExportRecord{{Name: "None"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(byID) != 0 || len(ids) != 0 {
		t.Errorf("imported %d widgets from a None record", len(byID))
	}
}

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("empty scene encoded as %q", buf.String())
	}

	buf.Reset()
	line := widget.NewLine(widget.Common{ID: "wdg_l", Width: 2, Color: geom.White}, geom.Pt(0, 0), geom.Pt(3, 4))
	if err := Encode(&buf, Export([]widget.Widget{line})); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, "}\n]\n") {
		t.Errorf("missing trailing newline: %q", out[len(out)-6:])
	}
	for _, field := range []string{`"name": "Line"`, `"polyPoints": 0`, `"referencePoint"`, `"content": ""`} {
		if !strings.Contains(out, field) {
			t.Errorf("output lacks %s", field)
		}
	}
	if !strings.Contains(out, "\n  {\n    \"name\"") {
		t.Error("output is not indented with two spaces")
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	records := ExportScene(sampleScene(t))
	if err := SaveFile(path, records); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(records))
	}
	for i := range records {
		sameRecord(t, loaded[i], records[i])
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile of a missing file succeeded")
	}
}
