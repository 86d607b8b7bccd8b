package services

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Error kinds returned by every service operation. Callers match with
// errors.Is; the HTTP and CLI layers map them to statuses and exit messages
// without string comparison.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrPersistence    = errors.New("persistence failure")
	ErrAuthentication = errors.New("invalid username or password")
)

// isUniqueViolation reports whether err is a store-level uniqueness failure.
// Postgres surfaces these as SQLSTATE 23505, newer GORM drivers translate
// them to gorm.ErrDuplicatedKey, and SQLite (used by tests and the local CLI
// mode) only gives us its message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
