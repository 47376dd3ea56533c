package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsConflictViolation reports whether err is a Postgres unique or
// exclusion constraint violation. The appointments table carries a unique
// index over (doctor_id, start_time), so a losing concurrent commit
// surfaces here even if it slipped past the row-lock check.
func IsConflictViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
