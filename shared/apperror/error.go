package apperror

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Code string

const (
	CodeValidation Code = "validation"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeForbidden  Code = "forbidden"
	CodeInternal   Code = "internal"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	duplicateMessage  = "resource with the same unique attributes already exists"
	referencedMessage = "the record is still referenced by other records"
)

// Error is a classified failure. Fields carries per-field messages for validation failures.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Validation builds a validation error from a field -> message map
func Validation(fields map[string]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "the given data was invalid",
		Fields:  fields,
	}
}

// Field builds a validation error for a single field
func Field(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// FieldErrors returns the per-field messages carried by err, if any
func FieldErrors(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

// MapDatabaseError classifies constraint violations, whether gorm translated
// them or PostgreSQL reported them directly
func MapDatabaseError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return New(CodeConflict, duplicateMessage)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return New(CodeConflict, referencedMessage)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return New(CodeConflict, duplicateMessage)
		case pgForeignKeyViolation:
			return New(CodeConflict, referencedMessage)
		}
	}
	return err
}
