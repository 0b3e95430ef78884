package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLExecutor - общее подмножество *sql.DB и *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ErrReferenceInvalid - запись ссылается на несуществующую команду, игрока или матч.
var ErrReferenceInvalid = errors.New("referenced entity does not exist")

func getExecutor(db *sql.DB, exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// handleWriteError переводит ошибки ограничений postgres в ошибки пакета.
func handleWriteError(err error, conflict error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrReferenceInvalid, pqErr.Constraint)
		case "23505": // unique_violation
			if conflict != nil {
				return conflict
			}
		}
	}
	return err
}

func toInts(values pq.Int64Array) []int {
	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(v)
	}
	return result
}

func toInt64s(values []int) pq.Int64Array {
	result := make(pq.Int64Array, len(values))
	for i, v := range values {
		result[i] = int64(v)
	}
	return result
}
