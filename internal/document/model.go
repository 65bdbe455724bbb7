// Package document maps widgets to and from the flat record schema of a
// saved scene file.
package document

import (
	"errors"
	"fmt"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/scene"
	"github.com/inamate/vecdraw/internal/typeid"
	"github.com/inamate/vecdraw/internal/widget"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrUnknownKind     = widget.ErrUnknownKind
)

// ExportRecord is the file representation of one widget. Fields a kind
// does not use are left at their zero values.
type ExportRecord struct {
	Name           string       `json:"name"`
	Content        string       `json:"content"`
	Points         []geom.Point `json:"points"`
	PolyPoints     uint         `json:"polyPoints"`
	MidPoint       geom.Point   `json:"midPoint"`
	ReferencePoint geom.Point   `json:"referencePoint"`
	Rotation       float64      `json:"rotation"`
	Radius         float64      `json:"radius"`
	Color          geom.Color   `json:"color"`
	Width          float64      `json:"width"`
}

// ExportScene flattens the scene in insertion order.
func ExportScene(s *scene.Scene) []ExportRecord {
	return Export(s.Widgets())
}

// Export flattens widgets in the given order.
func Export(widgets []widget.Widget) []ExportRecord {
	records := make([]ExportRecord, 0, len(widgets))
	for _, w := range widgets {
		records = append(records, exportOne(w))
	}
	return records
}

func exportOne(w widget.Widget) ExportRecord {
	info := w.Info()
	r := ExportRecord{
		Name:   w.Kind().String(),
		Points: []geom.Point{},
		Color:  info.Color,
		Width:  info.Width,
	}

	switch v := w.(type) {
	case widget.Arc:
		r.Points = v.Points[:]
		r.MidPoint = v.MidPoint
		r.ReferencePoint = geom.Point{X: v.StartAngle, Y: v.EndAngle}
		r.Radius = v.Radius
	case widget.Bezier:
		r.Points = v.Points[:]
		r.MidPoint = v.MidPoint
		r.Rotation = v.Degrees
	case widget.Circle:
		r.Points = []geom.Point{v.RadiusPoint}
		r.MidPoint = v.Center
		r.ReferencePoint = v.RadiusPoint
		r.Radius = v.Radius
	case widget.Ellipse:
		r.Points = v.Points[:]
		r.MidPoint = v.Center
		r.ReferencePoint = geom.Point{X: v.Radii.X, Y: v.Radii.Y}
		r.Rotation = v.Degrees
	case widget.Line:
		r.Points = v.Points[:]
		r.MidPoint = v.MidPoint
		r.Rotation = v.Degrees
	case widget.Polygon:
		r.Points = append(r.Points, v.Points...)
		r.PolyPoints = uint(v.VertexCount)
		r.MidPoint = v.MidPoint
		r.ReferencePoint = v.ReferencePoint
		r.Rotation = v.Degrees
	case widget.PolyLine:
		r.Points = append(r.Points, v.Points...)
		r.PolyPoints = uint(v.VertexCount)
		r.MidPoint = v.MidPoint
		r.ReferencePoint = v.ReferencePoint
		r.Rotation = v.Degrees
	case widget.RightTriangle:
		r.Points = v.Points[:]
		r.MidPoint = v.MidPoint
		r.ReferencePoint = v.ReferencePoint
		r.Rotation = v.Degrees
	case widget.FreeHand:
		r.Points = append(r.Points, v.Points...)
	case widget.Text:
		r.Content = v.Content
		r.MidPoint = v.Position
		r.ReferencePoint = v.Position
		r.Rotation = v.Degrees
	}
	return r
}

// ImportScene expands records into a new scene, keeping record order.
func ImportScene(records []ExportRecord) (*scene.Scene, error) {
	widgets, err := importAll(records)
	if err != nil {
		return nil, err
	}
	s := scene.New()
	s.Replace(widgets)
	return s, nil
}

// Import expands records into widgets keyed by freshly minted ids. The
// returned id slice follows record order. Records named None are skipped.
func Import(records []ExportRecord) (map[string]widget.Widget, []string, error) {
	widgets, err := importAll(records)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]widget.Widget, len(widgets))
	ids := make([]string, 0, len(widgets))
	for _, w := range widgets {
		id := widget.IDOf(w)
		byID[id] = w
		ids = append(ids, id)
	}
	return byID, ids, nil
}

func importAll(records []ExportRecord) ([]widget.Widget, error) {
	widgets := make([]widget.Widget, 0, len(records))
	for i, r := range records {
		w, err := importOne(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if w != nil {
			widgets = append(widgets, w)
		}
	}
	return widgets, nil
}

func importOne(r ExportRecord) (widget.Widget, error) {
	kind, err := widget.ParseKind(r.Name)
	if err != nil {
		return nil, err
	}
	if kind == widget.KindNone {
		return nil, nil
	}
	if need := minPoints(kind); len(r.Points) < need {
		return nil, fmt.Errorf("%w: %s needs %d points, got %d", ErrMalformedRecord, kind, need, len(r.Points))
	}

	c := widget.Common{
		ID:     typeid.NewWidgetID(),
		Mode:   widget.ModeDrawAll,
		Status: widget.StatusCompleted,
		Color:  r.Color,
		Width:  r.Width,
	}

	switch kind {
	case widget.KindArc:
		return widget.Arc{
			Common:     c,
			Points:     [3]geom.Point(r.Points[:3]),
			MidPoint:   r.MidPoint,
			Radius:     r.Radius,
			StartAngle: r.ReferencePoint.X,
			EndAngle:   r.ReferencePoint.Y,
		}, nil
	case widget.KindBezier:
		return widget.Bezier{Common: c, Points: [3]geom.Point(r.Points[:3]), MidPoint: r.MidPoint, Degrees: r.Rotation}, nil
	case widget.KindCircle:
		return widget.Circle{Common: c, Center: r.MidPoint, RadiusPoint: r.ReferencePoint, Radius: r.Radius}, nil
	case widget.KindEllipse:
		return widget.Ellipse{
			Common:  c,
			Points:  [3]geom.Point(r.Points[:3]),
			Center:  r.MidPoint,
			Radii:   geom.Vector{X: r.ReferencePoint.X, Y: r.ReferencePoint.Y},
			Degrees: r.Rotation,
		}, nil
	case widget.KindLine:
		return widget.Line{Common: c, Points: [2]geom.Point(r.Points[:2]), MidPoint: r.MidPoint, Degrees: r.Rotation}, nil
	case widget.KindPolygon, widget.KindPolyLine:
		points, n, err := regularPoints(r)
		if err != nil {
			return nil, err
		}
		if kind == widget.KindPolyLine {
			return widget.PolyLine{
				Common:         c,
				Points:         points,
				VertexCount:    n,
				MidPoint:       r.MidPoint,
				ReferencePoint: r.ReferencePoint,
				Degrees:        r.Rotation,
			}, nil
		}
		return widget.Polygon{
			Common:         c,
			Points:         points,
			VertexCount:    n,
			MidPoint:       r.MidPoint,
			ReferencePoint: r.ReferencePoint,
			Degrees:        r.Rotation,
		}, nil
	case widget.KindRightTriangle:
		return widget.RightTriangle{
			Common:         c,
			Points:         [3]geom.Point(r.Points[:3]),
			MidPoint:       r.MidPoint,
			ReferencePoint: r.ReferencePoint,
			Degrees:        r.Rotation,
		}, nil
	case widget.KindFreeHand:
		return widget.NewFreeHand(c, r.Points), nil
	case widget.KindText:
		t := widget.NewText(c, r.ReferencePoint, r.Content)
		t.Degrees = r.Rotation
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Name)
}

// regularPoints resolves the vertex count of a polygon or polyline record.
// A zero polyPoints is taken from the stored vertices, or the default when
// there are none; missing vertices are regenerated from the mid and
// reference points.
func regularPoints(r ExportRecord) ([]geom.Point, int, error) {
	n := int(r.PolyPoints)
	switch {
	case n == 0 && len(r.Points) > 0:
		n = len(r.Points)
	case n == 0:
		n = widget.DefaultVertexCount
	case len(r.Points) > 0 && len(r.Points) != n:
		return nil, 0, fmt.Errorf("%w: %s has polyPoints %d but %d points", ErrMalformedRecord, r.Name, n, len(r.Points))
	}
	if len(r.Points) == 0 {
		return widget.RegularVertices(r.MidPoint, r.ReferencePoint, n), n, nil
	}
	return append([]geom.Point(nil), r.Points...), n, nil
}

func minPoints(kind widget.Kind) int {
	switch kind {
	case widget.KindArc, widget.KindBezier, widget.KindEllipse, widget.KindRightTriangle:
		return 3
	case widget.KindLine:
		return 2
	case widget.KindCircle, widget.KindFreeHand:
		return 1
	default:
		return 0
	}
}
