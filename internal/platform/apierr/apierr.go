package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation       = "validation_error"
	CodeNotFound         = "not_found"
	CodeAccessDenied     = "access_denied"
	CodePrecondition     = "precondition_failed"
	CodeGenerationFailed = "generation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeConflict         = "conflict"
	CodeInternal         = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

// NotFound is returned for missing resources and for resources owned by
// someone else; callers cannot tell the two apart.
func NotFound(resource string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", resource))
}

func AccessDenied() *Error {
	return New(http.StatusForbidden, CodeAccessDenied, errors.New("access denied"))
}

func Precondition(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodePrecondition, fmt.Errorf(format, args...))
}

// GenerationFailed tags a text-generation failure with the operation that hit it.
func GenerationFailed(op string, err error) *Error {
	if err == nil {
		err = errors.New("unusable model output")
	}
	return New(http.StatusBadGateway, CodeGenerationFailed, fmt.Errorf("%s failed: %w", op, err))
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// Is reports whether err carries an *Error with the given code.
func Is(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// From returns the *Error in err's chain, or an internal error wrapping err.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
