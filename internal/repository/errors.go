package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by repositories. The database constraints are the
// authoritative source for uniqueness and referential failures; pre-checks in
// the services only improve error messages.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrEmployeeReferenced = errors.New("employee has assigned tasks")
	ErrAssigneeMissing    = errors.New("assigned employee not found")
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
