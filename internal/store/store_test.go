package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/inamate/vecdraw/internal/document"
	"github.com/inamate/vecdraw/internal/geom"
)

func sampleRecords() []document.ExportRecord {
	return []document.ExportRecord{
		{
			Name:           "Line",
			Points:         []geom.Point{geom.Pt(0, 0), geom.Pt(10, 10)},
			MidPoint:       geom.Pt(5, 5),
			ReferencePoint: geom.Pt(0, 0),
			Color:          geom.White,
			Width:          2,
		},
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	backends := []struct {
		name string
		open func(t *testing.T) Store
	}{
		{"file", func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "scenes"))
			if err != nil {
				t.Fatal(err)
			}
			return s
		}},
		{"sqlite", func(t *testing.T) Store {
			s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "db", "scenes.db"))
			if err != nil {
				t.Fatal(err)
			}
			return s
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			defer s.Close()

			if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Load(missing) error = %v, want ErrNotFound", err)
			}

			if err := s.Save(ctx, "first", sampleRecords()); err != nil {
				t.Fatal(err)
			}
			if err := s.Save(ctx, "second", nil); err != nil {
				t.Fatal(err)
			}
			// replace
			if err := s.Save(ctx, "first", append(sampleRecords(), sampleRecords()...)); err != nil {
				t.Fatal(err)
			}

			got, err := s.Load(ctx, "first")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 || got[0].Name != "Line" || got[0].Points[1] != geom.Pt(10, 10) {
				t.Errorf("Load(first) = %+v", got)
			}
			empty, err := s.Load(ctx, "second")
			if err != nil || len(empty) != 0 {
				t.Errorf("Load(second) = %v, %v", empty, err)
			}

			names, err := s.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(names) != 2 || names[0] != "first" || names[1] != "second" {
				t.Errorf("List() = %v", names)
			}

			if err := s.Delete(ctx, "first"); err != nil {
				t.Fatal(err)
			}
			if err := s.Delete(ctx, "first"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"scene", true},
		{"my-scene_2.v1", true},
		{"", false},
		{"..", false},
		{"../etc/passwd", false},
		{"a/b", false},
		{".hidden", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateName(%q) = %v", tt.name, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("error %v does not wrap ErrInvalidName", err)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "redis"}); err == nil {
		t.Error("Open accepted an unknown backend")
	}
}
