package lib

import (
	"database/sql"
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Request errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization errors
var (
	ErrForbidden = errors.New("forbidden")
)

// MapPgError collapses driver errors into the small taxonomy the handlers
// map to HTTP statuses
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetUserMessage converts an internal error into a message safe to show a user
func GetUserMessage(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "An account with this email already exists"
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		return "Your session is no longer valid. Please sign in again"
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to perform this action"
	case errors.Is(err, ErrInvalidInput):
		return "Invalid request parameters"
	default:
		return "Something went wrong. Please try again"
	}
}

// GetDetailForLogging returns the raw error text for log fields without
// leaking it to API responses
func GetDetailForLogging(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
