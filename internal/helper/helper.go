package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Postgres reports 23505; the sqlite driver used in tests reports a
// "UNIQUE constraint failed" message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// DuplicateKeyColumn extracts the column hinted at by a unique violation,
// e.g. "email" or "phone". Empty when the driver gives no hint.
func DuplicateKeyColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		msg = pgErr.ConstraintName
	}
	switch {
	case strings.Contains(msg, "email"):
		return "email"
	case strings.Contains(msg, "phone"):
		return "phone"
	case strings.Contains(msg, "user_id"):
		return "user_id"
	}
	return ""
}
