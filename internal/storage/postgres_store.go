package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinova/shift-scheduler/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// PostgresStore keeps each collection as one jsonb row in the collections
// table (name text primary key, data jsonb, updated_at timestamptz).
type PostgresStore struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresStore creates a Postgres-backed collection store and ensures
// the collections table exists.
func NewPostgresStore(ctx context.Context, client *postgres.Client) (*PostgresStore, error) {
	s := &PostgresStore{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}

	_, err := client.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to ensure collections table", err)
	}
	return s, nil
}

// Read returns the collection's raw JSON, or nil when no row exists
func (s *PostgresStore) Read(ctx context.Context, collection string) ([]byte, error) {
	query, args, err := s.db.Select("data").
		From("collections").
		Where(goqu.Ex{"name": collection}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build select query", err)
	}

	var data []byte
	err = s.client.DB().QueryRowContext(ctx, query, args...).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read collection %q", collection), err)
	}
	return data, nil
}

// Write upserts the collection row, replacing any previous content
func (s *PostgresStore) Write(ctx context.Context, collection string, data []byte) error {
	query, args, err := s.db.Insert("collections").
		Rows(goqu.Record{
			"name":       collection,
			"data":       string(data),
			"updated_at": goqu.L("now()"),
		}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{
			"data":       string(data),
			"updated_at": goqu.L("now()"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewStorageError("failed to build upsert query", err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write collection %q", collection), err)
	}
	return nil
}
