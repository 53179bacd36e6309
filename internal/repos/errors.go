package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"snapbook/internal/apperr"
)

// uniqueViolation reports whether err is a duplicate-key error and returns
// the constraint text the driver gave for it.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == "23505"
	}
	// modernc sqlite has no stable typed error for this
	s := err.Error()
	if strings.Contains(s, "UNIQUE constraint failed") {
		return s, true
	}
	return "", false
}

// storeErr maps driver errors onto apperr kinds. Conflicts are left to the
// caller, which knows the user-facing message.
func storeErr(code string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(code)
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Store(code, err)
}
