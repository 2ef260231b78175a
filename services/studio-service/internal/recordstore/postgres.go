package recordstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yaelle-pmu/studio/libs/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Postgres stores one row per collection in record_collections.
type Postgres struct {
	pool *db.Pool
}

func NewPostgres(pool *db.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the record_collections table when missing.
func (s *Postgres) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.pool, migrations, "migrations")
}

func (s *Postgres) Get(ctx context.Context, key string) (Snapshot, error) {
	var snap Snapshot
	var data *string
	err := s.pool.QueryRow(ctx, `
		SELECT data, version
		FROM record_collections
		WHERE key = $1
	`, key).Scan(&data, &snap.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("select %s: %w", key, err)
	}
	if data != nil {
		snap.Data = []byte(*data)
	}
	return snap, nil
}

func (s *Postgres) Commit(ctx context.Context, writes ...Write) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, w := range writes {
		if err := s.apply(ctx, tx, w); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// apply writes one key. Deleted collections keep their row with NULL data so the
// version keeps counting up.
func (s *Postgres) apply(ctx context.Context, tx pgx.Tx, w Write) error {
	var data *string
	if !w.Delete {
		v := string(w.Data)
		data = &v
	}

	if w.Version == 0 {
		tag, err := tx.Exec(ctx, `
			INSERT INTO record_collections (key, data, version, updated_at)
			VALUES ($1, $2, 1, now())
			ON CONFLICT (key) DO NOTHING
		`, w.Key, data)
		if err != nil {
			return fmt.Errorf("insert %s: %w", w.Key, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrVersionConflict
		}
		return nil
	}

	tag, err := tx.Exec(ctx, `
		UPDATE record_collections
		SET data = $2,
			version = version + 1,
			updated_at = now()
		WHERE key = $1 AND version = $3
	`, w.Key, data, w.Version)
	if err != nil {
		return fmt.Errorf("update %s: %w", w.Key, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}
