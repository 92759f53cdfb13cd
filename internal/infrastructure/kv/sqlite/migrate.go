package sqlite

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/kv/sqlite/migrations"
)

// NewMigrator returns a migrator bound to db and the embedded schema.
// Closing the migrator also closes db.
func NewMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, errors.Wrap(err, "open embedded migrations")
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "create sqlite migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, errors.Wrap(err, "create migrator")
	}
	return m, nil
}

// MigrateUp applies all pending migrations. It leaves db open.
func MigrateUp(db *sql.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
