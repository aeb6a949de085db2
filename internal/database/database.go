// package database provides postgresql connection management.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps a postgresql connection pool and a GORM instance over the same database.
// Jobs and companies go through the pool; contact messages go through GORM.
type DB struct {
	Pool *pgxpool.Pool
	GORM *gorm.DB
}

// New creates a new database connection pool and GORM instance.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &DB{
		Pool: pool,
		GORM: gormDB,
	}, nil
}

// Close closes the connection pool and the sql.DB behind GORM.
func (db *DB) Close() {
	db.Pool.Close()
	if sqlDB, err := db.GORM.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Ping checks if the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
