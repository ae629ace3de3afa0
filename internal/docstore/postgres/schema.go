package postgres

import (
	"context"
)

// advisoryLockKey serializes schema setup across concurrently starting
// instances.
const advisoryLockKey = 824190337

const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
    collection text  NOT NULL,
    id         text  NOT NULL,
    data       jsonb NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS documents_data_idx
    ON documents USING gin (data jsonb_path_ops);
`

// EnsureSchema creates the documents table if it does not exist yet. Safe to
// run on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey)
	}()

	_, err = conn.Exec(ctx, schemaDDL)
	return err
}
