// Package sqlite keeps the key-value byte store in a single SQLite file so
// several CLI invocations share the same collections.
package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"

	qb "github.com/riskibarqy/blueprint-fantasy/internal/platform/querybuilder"
)

const (
	tableName      = "kv_entries"
	upsertConflict = "ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

type entryTableModel struct {
	Key       string `db:"key"`
	Value     []byte `db:"value"`
	UpdatedAt int64  `db:"updated_at"`
}

type Store struct {
	db    *sqlx.DB
	clock clockwork.Clock
}

type Option func(*Store)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// OpenDB opens an instrumented handle without touching the schema.
func OpenDB(path string) (*sqlx.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := otelsqlx.Open("sqlite", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	return db, nil
}

// Open opens the store at path and applies the embedded migrations.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s == nil || s.db == nil {
		return nil, false, errors.New("storage is not configured")
	}

	query, args, err := qb.Select("value").From(tableName).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return nil, false, errors.Wrap(err, "build get entry query")
	}

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "get entry %s", key)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}
	if value == nil {
		value = []byte{}
	}

	row := entryTableModel{Key: key, Value: value, UpdatedAt: s.clock.Now().UTC().UnixMilli()}
	query, args, err := qb.InsertModel(tableName, row, upsertConflict, qb.Question)
	if err != nil {
		return errors.Wrap(err, "build upsert entry query")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert entry %s", key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}

	query, args, err := qb.DeleteFrom(tableName).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete entry query")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "delete entry %s", key)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	if s == nil || s.db == nil {
		return time.Time{}, false, errors.New("storage is not configured")
	}
	query, args, err := qb.Select("updated_at").From(tableName).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return time.Time{}, false, errors.Wrap(err, "build entry timestamp query")
	}

	var millis int64
	if err := s.db.GetContext(ctx, &millis, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, errors.Wrapf(err, "get entry timestamp %s", key)
	}
	return time.UnixMilli(millis).UTC(), true, nil
}
