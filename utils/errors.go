package utils

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindConflict
	KindUnauthorized
)

// AppError is the error type returned by the service layer. Fields carries
// per-field messages for validation failures.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NotFound(msg string) *AppError     { return &AppError{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *AppError    { return &AppError{Kind: KindForbidden, Message: msg} }
func Unauthorized(msg string) *AppError { return &AppError{Kind: KindUnauthorized, Message: msg} }
func Conflict(msg string) *AppError     { return &AppError{Kind: KindConflict, Message: msg} }

func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

// FieldError builds a validation error carrying a single field message.
func FieldError(field, msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Fields: map[string]string{field: msg}}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error.", Err: err}
}

// AsAppError normalises any error into an *AppError. gorm sentinels are
// mapped onto their closest kind.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Kind: KindNotFound, Message: "Not found.", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &AppError{Kind: KindValidation, Message: "A record with these values already exists.", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &AppError{Kind: KindValidation, Message: "Referenced record is missing or still in use.", Err: err}
	}
	return Internal(err)
}

// StatusCode maps an error kind onto the HTTP status returned to clients.
func StatusCode(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
