package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Service errors are sentinels so controllers can map them to HTTP status
// codes with errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")
	ErrAlreadyLiked  = errors.New("post already liked")
)

// isDuplicate reports whether err is a unique constraint violation. GORM
// translates driver errors into ErrDuplicatedKey, but not every dialect
// does, so fall back to matching the MySQL and SQLite error texts.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
