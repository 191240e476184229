package database

import (
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err indicates a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// DuplicateError reports a unique-constraint violation in user terms. The
// message is safe to surface to the client.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// IsDuplicate reports whether err indicates a unique-constraint violation
func IsDuplicate(err error) bool {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
