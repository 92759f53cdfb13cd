// Package collection stores ordered record sequences under a single key of a
// kv.Store. Every mutation reads the whole sequence, changes it in memory and
// writes it back. There is no locking and the last writer wins.
package collection

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

// ErrRecordNotFound is returned by Update when no record has the given id.
var ErrRecordNotFound = errors.New("record not found")

// State describes what Load found under the collection key.
type State string

const (
	StateOK          State = "ok"
	StateAbsent      State = "absent"
	StateUnavailable State = "unavailable"
	StateUnreadable  State = "unreadable"
)

// Snapshot is the result of a Load. Records is never nil.
type Snapshot[T any] struct {
	Records []T
	State   State
	Version int
	Err     error
}

type Options[T any] struct {
	// Key is the storage key, e.g. "bp_drafts".
	Key string
	// Version is the schema version written by this build. Zero means 1.
	Version int
	// Migrations[v] upgrades records stored at version v to v+1.
	Migrations []Migration
	// IDOf extracts the record id used by Upsert and Update.
	IDOf func(T) string
	// LegacyObject accepts a bare JSON object as a one-record version 0
	// payload, for keys that used to hold a single value.
	LegacyObject bool
	// LegacyScalar names the field a bare scalar in a version 0 array is
	// stored under, for keys that used to hold a list of plain ids.
	LegacyScalar string
	Logger       *logging.Logger
}

type Collection[T any] struct {
	store      kv.Store
	key        string
	version    int
	migrations []Migration
	idOf       func(T) string
	legacyObj  bool
	scalarKey  string
	logger     *logging.Logger
}

func New[T any](store kv.Store, opts Options[T]) *Collection[T] {
	version := opts.Version
	if version <= 0 {
		version = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Collection[T]{
		store:      store,
		key:        opts.Key,
		version:    version,
		migrations: opts.Migrations,
		idOf:       opts.IDOf,
		legacyObj:  opts.LegacyObject,
		scalarKey:  opts.LegacyScalar,
		logger:     logger.With("collection", opts.Key),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Load(ctx context.Context) Snapshot[T] {
	if c.store == nil {
		return Snapshot[T]{Records: []T{}, State: StateUnavailable, Err: kv.ErrUnavailable}
	}

	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return Snapshot[T]{Records: []T{}, State: StateUnavailable, Err: err}
	}
	if !ok {
		return Snapshot[T]{Records: []T{}, State: StateAbsent, Version: c.version}
	}

	records, version, err := decode[T](raw, c.version, c.migrations, c.legacyObj, c.scalarKey)
	if err != nil {
		return Snapshot[T]{Records: []T{}, State: StateUnreadable, Version: version, Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return Snapshot[T]{Records: records, State: StateOK, Version: version}
}

// List returns the stored records in storage order. Unavailable, absent and
// unreadable collections all read as empty.
func (c *Collection[T]) List(ctx context.Context) []T {
	return c.records(ctx, c.Load(ctx))
}

// Upgrade reads like List and writes records loaded from an older version
// back in the current format, so their migration runs once. A failed write
// is logged and the migrated records are still returned.
func (c *Collection[T]) Upgrade(ctx context.Context) []T {
	snap := c.Load(ctx)
	if snap.State != StateOK || snap.Version >= c.version {
		return c.records(ctx, snap)
	}
	if err := c.write(ctx, snap.Records); err != nil {
		c.logger.WarnContext(ctx, "rewrite migrated collection failed", "from_version", snap.Version, "error", err)
		return snap.Records
	}
	c.logger.InfoContext(ctx, "collection migrated", "from_version", snap.Version, "to_version", c.version)
	return snap.Records
}

func (c *Collection[T]) records(ctx context.Context, snap Snapshot[T]) []T {
	switch snap.State {
	case StateUnreadable:
		c.logger.WarnContext(ctx, "collection unreadable, reading as empty", "error", snap.Err)
	case StateUnavailable:
		c.logger.DebugContext(ctx, "storage unavailable, reading as empty", "error", snap.Err)
	}
	return snap.Records
}

func (c *Collection[T]) Find(ctx context.Context, match func(T) bool) (T, bool) {
	for _, rec := range c.List(ctx) {
		if match(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool) {
	return c.Find(ctx, func(rec T) bool { return c.idOf != nil && c.idOf(rec) == id })
}

func (c *Collection[T]) Append(ctx context.Context, records ...T) error {
	return c.mutate(ctx, func(current []T) ([]T, bool, error) {
		if len(records) == 0 {
			return current, false, nil
		}
		return append(current, records...), true, nil
	})
}

// Prepend puts rec first, for newest-first collections.
func (c *Collection[T]) Prepend(ctx context.Context, rec T) error {
	return c.mutate(ctx, func(current []T) ([]T, bool, error) {
		out := make([]T, 0, len(current)+1)
		out = append(out, rec)
		return append(out, current...), true, nil
	})
}

// Upsert replaces the record with the same id in place, or appends it.
func (c *Collection[T]) Upsert(ctx context.Context, rec T) (created bool, err error) {
	if c.idOf == nil {
		return false, errors.Newf("collection %s has no id function", c.key)
	}
	id := c.idOf(rec)
	err = c.mutate(ctx, func(current []T) ([]T, bool, error) {
		for i := range current {
			if c.idOf(current[i]) == id {
				current[i] = rec
				return current, true, nil
			}
		}
		created = true
		return append(current, rec), true, nil
	})
	return created, err
}

// Update applies fn to the record with the given id and persists the result.
// An error from fn aborts the write.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	var updated T
	if c.idOf == nil {
		return updated, errors.Newf("collection %s has no id function", c.key)
	}
	err := c.mutate(ctx, func(current []T) ([]T, bool, error) {
		for i := range current {
			if c.idOf(current[i]) != id {
				continue
			}
			if err := fn(&current[i]); err != nil {
				return nil, false, err
			}
			updated = current[i]
			return current, true, nil
		}
		return nil, false, errors.Wrapf(ErrRecordNotFound, "%s id=%s", c.key, id)
	})
	return updated, err
}

// Remove deletes every record matching the predicate and reports how many
// went away. Nothing is written when none match.
func (c *Collection[T]) Remove(ctx context.Context, match func(T) bool) (int, error) {
	removed := 0
	err := c.mutate(ctx, func(current []T) ([]T, bool, error) {
		kept := current[:0]
		for _, rec := range current {
			if match(rec) {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		return kept, removed > 0, nil
	})
	return removed, err
}

// Replace overwrites the whole sequence.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	if c.store == nil {
		return errors.Wrapf(kv.ErrUnavailable, "write %s", c.key)
	}
	return c.write(ctx, records)
}

// Clear removes the key entirely.
func (c *Collection[T]) Clear(ctx context.Context) error {
	if c.store == nil {
		return errors.Wrapf(kv.ErrUnavailable, "clear %s", c.key)
	}
	if err := c.store.Delete(ctx, c.key); err != nil {
		return storageError(err, "clear "+c.key)
	}
	return nil
}

func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, bool, error)) error {
	snap := c.Load(ctx)
	switch snap.State {
	case StateUnavailable:
		return storageError(snap.Err, "load "+c.key)
	case StateUnreadable:
		c.logger.WarnContext(ctx, "overwriting unreadable collection", "error", snap.Err)
	}

	next, changed, err := fn(snap.Records)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return c.write(ctx, next)
}

func (c *Collection[T]) write(ctx context.Context, records []T) error {
	payload, err := encode(c.version, records)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return storageError(err, "write "+c.key)
	}
	return nil
}

// storageError keeps kv sentinels in the chain so callers can match them.
func storageError(err error, op string) error {
	if err == nil {
		err = kv.ErrUnavailable
	}
	if errors.Is(err, kv.ErrUnavailable) || errors.Is(err, kv.ErrQuotaExceeded) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, op)
	}
	return errors.Wrapf(kv.ErrUnavailable, "%s: %v", op, err)
}
