package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brainswap/internal/config"
	"brainswap/internal/docstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements docstore.Store on a single JSONB table:
//
//	CREATE TABLE documents (
//	    collection text NOT NULL,
//	    id         text NOT NULL,
//	    data       jsonb NOT NULL,
//	    PRIMARY KEY (collection, id)
//	);
//
// Merge writes use the shallow jsonb || operator, which matches the
// field-level merge semantics documents are written with.
type Store struct {
	pool *pgxpool.Pool
}

func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(cfg.DBHost),
		strings.TrimSpace(cfg.DBPort),
		strings.TrimSpace(cfg.DBUser),
		cfg.DBPassword,
		strings.TrimSpace(cfg.DBName),
		strings.TrimSpace(cfg.DBSSLMode),
	)

	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, err
	}

	return &Store{pool: p}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	if s == nil || s.pool == nil {
		return docstore.Snapshot{}, errNilStore
	}

	var raw []byte
	row := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Snapshot{}, docstore.ErrNotFound
		}
		return docstore.Snapshot{}, err
	}
	return snapshotFromRaw(id, raw)
}

func (s *Store) Query(ctx context.Context, collection, field string, op docstore.Op, value any) ([]docstore.Snapshot, error) {
	if s == nil || s.pool == nil {
		return nil, errNilStore
	}

	var (
		rows pgx.Rows
		err  error
	)

	switch op {
	case docstore.OpEqual:
		if field == "id" {
			sv, ok := value.(string)
			if !ok {
				return nil, docstore.ErrInvalidQuery
			}
			rows, err = s.pool.Query(ctx,
				`SELECT id, data FROM documents WHERE collection = $1 AND id = $2`,
				collection, sv,
			)
			break
		}
		probe, perr := json.Marshal(docstore.Document{field: value})
		if perr != nil {
			return nil, docstore.ErrInvalidQuery
		}
		rows, err = s.pool.Query(ctx,
			`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY id`,
			collection, string(probe),
		)

	case docstore.OpArrayContains:
		elem, perr := json.Marshal([]any{value})
		if perr != nil {
			return nil, docstore.ErrInvalidQuery
		}
		rows, err = s.pool.Query(ctx,
			`SELECT id, data FROM documents WHERE collection = $1 AND data->$2 @> $3::jsonb ORDER BY id`,
			collection, field, string(elem),
		)

	case docstore.OpIn:
		vals, ok := inValues(value)
		if !ok {
			return nil, docstore.ErrInvalidQuery
		}
		if field == "id" {
			rows, err = s.pool.Query(ctx,
				`SELECT id, data FROM documents WHERE collection = $1 AND id = ANY($2) ORDER BY id`,
				collection, vals,
			)
		} else {
			rows, err = s.pool.Query(ctx,
				`SELECT id, data FROM documents WHERE collection = $1 AND data->>$2 = ANY($3) ORDER BY id`,
				collection, field, vals,
			)
		}

	default:
		return nil, docstore.ErrInvalidQuery
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]docstore.Snapshot, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		snap, err := snapshotFromRaw(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *Store) Set(ctx context.Context, collection, id string, fields docstore.Document, merge bool) error {
	if s == nil || s.pool == nil {
		return errNilStore
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
	          ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`
	if merge {
		query = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		         ON CONFLICT (collection, id) DO UPDATE SET data = documents.data || EXCLUDED.data`
	}

	_, err = s.pool.Exec(ctx, query, collection, id, string(raw))
	return err
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	if s == nil || s.pool == nil {
		return errNilStore
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id, string(raw),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields docstore.Document) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, fields, false); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return errNilStore
	}
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

var errNilStore = errors.New("nil document store")

func snapshotFromRaw(id string, raw []byte) (docstore.Snapshot, error) {
	var data docstore.Document
	if err := json.Unmarshal(raw, &data); err != nil {
		return docstore.Snapshot{}, err
	}
	return docstore.Snapshot{ID: id, Data: data}, nil
}

func inValues(value any) ([]string, bool) {
	switch vs := value.(type) {
	case []string:
		if len(vs) == 0 || len(vs) > docstore.MaxInValues {
			return nil, false
		}
		return vs, true
	case []any:
		if len(vs) == 0 || len(vs) > docstore.MaxInValues {
			return nil, false
		}
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

var _ docstore.Store = (*Store)(nil)
