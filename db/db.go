// Package db открывает пул соединений с PostgreSQL и применяет схему.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

//go:embed schema.sql
var schema string

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Connect открывает пул и проверяет соединение за timeout.
func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	return ConnectWithOptions(dsn, timeout, DefaultPoolOptions())
}

func ConnectWithOptions(dsn string, timeout time.Duration, opts PoolOptions) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		pingErr := fmt.Errorf("failed to ping database within %v: %w", timeout, err)
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Join(pingErr, fmt.Errorf("failed to close database handle: %w", closeErr))
		}
		return nil, pingErr
	}

	return db, nil
}

// Migrate применяет встроенную схему одной транзакцией. Все CREATE написаны с IF NOT EXISTS,
// поэтому повторный запуск ничего не меняет.
func Migrate(ctx context.Context, db *sql.DB) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// Schema возвращает текст встроенной схемы.
func Schema() string {
	return schema
}
