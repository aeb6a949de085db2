// Package migrator applies the embedded SQL schema with golang-migrate.
package migrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator manages database migrations.
type Migrator struct {
	migrationsFS fs.FS
}

// NewWithFS creates a Migrator reading .sql files from the root of migrationsFS.
func NewWithFS(migrationsFS fs.FS) (*Migrator, error) {
	if migrationsFS == nil {
		return nil, errors.New("migrationsFS cannot be nil")
	}
	return &Migrator{migrationsFS: migrationsFS}, nil
}

// Up runs all pending migrations. No pending migrations is not an error.
func (m *Migrator) Up(_ context.Context, databaseURL string) error {
	mg, err := m.open(databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Down rolls back every applied migration.
func (m *Migrator) Down(_ context.Context, databaseURL string) error {
	mg, err := m.open(databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	return nil
}

// Version returns the current migration version and dirty state.
// A database without any applied migration reports version 0.
func (m *Migrator) Version(_ context.Context, databaseURL string) (version uint, dirty bool, err error) {
	mg, err := m.open(databaseURL)
	if err != nil {
		return 0, false, err
	}
	defer mg.Close()

	version, dirty, err = mg.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) open(databaseURL string) (*migrate.Migrate, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	src, err := iofs.New(m.migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", src, convertToPgx5URL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return mg, nil
}

// convertToPgx5URL rewrites postgres URLs to the scheme registered by the pgx/v5 driver.
func convertToPgx5URL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}
