package services

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error codes surfaced to API clients.
const (
	CodeNotConfigured     = "not_configured"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeValidation        = "validation"
	CodeHasBookings       = "has_bookings"
	CodeUnavailable       = "unavailable"
	CodeInvalidTransition = "invalid_transition"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal"
)

const notConfiguredMessage = "Supabase not configured. Please set DATABASE_URL to enable this operation."

type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ErrNotConfigured is returned by every write when no database is connected.
var ErrNotConfigured = &ServiceError{Code: CodeNotConfigured, Message: notConfiguredMessage}

func newError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func validationError(format string, args ...any) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func notFound(what string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: what + " not found"}
}

// ErrorCode extracts the code of a ServiceError, or CodeInternal.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

// ClassifyDBError maps driver errors to a ServiceError with a readable message.
func ClassifyDBError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &ServiceError{Code: CodeNotFound, Message: "The requested record was not found", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ServiceError{Code: CodeConflict, Message: "A record with this identifier already exists", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ServiceError{Code: CodeConflict, Message: "This record is referenced by or references another record", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &ServiceError{Code: CodeConflict, Message: "A record with this identifier already exists", Err: err}
		case "23503":
			return &ServiceError{Code: CodeConflict, Message: "This record is referenced by or references another record", Err: err}
		case "23502":
			return &ServiceError{Code: CodeValidation, Message: "A required field is missing", Err: err}
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return &ServiceError{Code: CodeConflict, Message: "A record with this identifier already exists", Err: err}
		case 1451, 1452:
			return &ServiceError{Code: CodeConflict, Message: "This record is referenced by or references another record", Err: err}
		case 1048:
			return &ServiceError{Code: CodeValidation, Message: "A required field is missing", Err: err}
		}
	}

	return &ServiceError{Code: CodeInternal, Message: "An unexpected error occurred", Err: err}
}
