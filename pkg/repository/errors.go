package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// MapError normalizes database errors into the caller's domain
// sentinels: sql.ErrNoRows becomes notFoundErr and a PostgreSQL
// unique violation becomes duplicateErr. Anything else passes
// through unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFoundErr
	case isUniqueViolation(err):
		return duplicateErr
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
