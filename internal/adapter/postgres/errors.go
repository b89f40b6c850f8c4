package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// MapError converts pgx/pgconn errors for one KV key to domain errors.
// Context errors pass through unchanged (wrapped with the key).
func MapError(err error, op, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", op, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", op, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23514", "22001": // check_violation, string_data_right_truncation
			return fmt.Errorf("%s %s: %w", op, key, domain.ErrValidation)
		case "08000", "08003", "08006", "57P01": // connection failures, admin shutdown
			return fmt.Errorf("%s %s: %w", op, key, domain.NewServiceError("postgres", err))
		}
	}

	return fmt.Errorf("%s %s: %w", op, key, err)
}
