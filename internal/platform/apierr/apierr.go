package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/person-backend/internal/domain"
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

// FromDomain classifies err by its domain kind. Unknown errors become 500s.
func FromDomain(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return New(http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, domain.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, domain.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	case errors.Is(err, domain.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
