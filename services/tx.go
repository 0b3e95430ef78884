package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fng3r/cis-haxball/repositories"
)

// snapshotTx - согласованный срез данных на время одного расчёта.
var snapshotTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// sqlRepeatableRead - пакетные пересчёты: чтение и запись на одном снимке.
var sqlRepeatableRead = sql.TxOptions{Isolation: sql.LevelRepeatableRead}

// Transactor выполняет fn внутри транзакции: commit при nil, rollback при ошибке или панике.
type Transactor interface {
	WithinTx(ctx context.Context, opts *sql.TxOptions, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTransactor struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLTransactor(db *sql.DB, logger *slog.Logger) Transactor {
	return &sqlTransactor{db: db, logger: logger}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, opts *sql.TxOptions, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	tx, err := t.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				t.logger.ErrorContext(ctx, "rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}
