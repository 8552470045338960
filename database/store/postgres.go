package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS ledger_collections (
	name       TEXT PRIMARY KEY,
	blob       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const postgresUpsert = `
INSERT INTO ledger_collections (name, blob, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET blob = EXCLUDED.blob, updated_at = EXCLUDED.updated_at`

// PostgresStore keeps one JSONB row per collection.
type PostgresStore struct {
	pool  *pgxpool.Pool
	owned bool
}

// NewPostgresStore creates the backing table when it is missing.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create ledger_collections: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection string) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `SELECT blob FROM ledger_collections WHERE name = $1`, collection).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select collection %s: %w", collection, err)
	}
	return blob, nil
}

func (s *PostgresStore) Set(ctx context.Context, collection string, blob []byte) error {
	if _, err := s.pool.Exec(ctx, postgresUpsert, collection, blob); err != nil {
		return fmt.Errorf("upsert collection %s: %w", collection, err)
	}
	return nil
}

func (s *PostgresStore) SetMany(ctx context.Context, blobs map[string][]byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for name, blob := range blobs {
		if _, err := tx.Exec(ctx, postgresUpsert, name, blob); err != nil {
			return fmt.Errorf("upsert collection %s: %w", name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
	if s.owned {
		s.pool.Close()
	}
	return nil
}
