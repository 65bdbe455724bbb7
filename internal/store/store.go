// Package store persists named scenes as export records.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/inamate/vecdraw/internal/document"
)

var (
	ErrNotFound    = errors.New("scene not found")
	ErrInvalidName = errors.New("invalid scene name")
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Store saves and loads scenes by name. Save replaces any scene with the
// same name.
type Store interface {
	Save(ctx context.Context, name string, records []document.ExportRecord) error
	Load(ctx context.Context, name string) ([]document.ExportRecord, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)

// ValidateName rejects names that are empty, too long or could escape a
// directory.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DataDir     string
	SQLitePath  string
	DatabaseURL string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case BackendFile, "":
		s, err = NewFileStore(opts.DataDir)
	case BackendSQLite:
		s, err = OpenSQLite(ctx, opts.SQLitePath)
	case BackendPostgres:
		s, err = NewPGStore(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
