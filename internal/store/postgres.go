package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/vecdraw/internal/document"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS scenes (
    name       TEXT PRIMARY KEY,
    records    JSONB NOT NULL,
    version    INTEGER NOT NULL DEFAULT 1,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PGStore keeps scenes in Postgres. Every save bumps the row version.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to url and runs the schema migration.
func NewPGStore(ctx context.Context, url string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Save(ctx context.Context, name string, records []document.ExportRecord) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := document.Marshal(records)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO scenes (name, records) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE
        SET records = EXCLUDED.records, version = scenes.version + 1, updated_at = now()
    `, name, data)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context, name string) ([]document.ExportRecord, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT records FROM scenes WHERE name = $1`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return document.Unmarshal(data)
}

// Version returns how many times name has been saved.
func (s *PGStore) Version(ctx context.Context, name string) (int, error) {
	var version int
	err := s.pool.QueryRow(ctx, `SELECT version FROM scenes WHERE name = $1`, name).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return version, err
}

func (s *PGStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM scenes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	return names, nil
}

func (s *PGStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scenes WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
