package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds. Every error produced by the core wraps exactly one of them.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error attaches operation context to a sentinel kind.
type Error struct {
	Op      string
	Kind    error
	Msg     string
	Allowed []string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func Validation(op, msg string) error {
	return &Error{Op: op, Kind: ErrValidation, Msg: msg}
}

func Conflict(op, msg string) error {
	return &Error{Op: op, Kind: ErrConflict, Msg: msg}
}

func NotFound(op, msg string) error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: msg}
}

func InvalidArgument(op, msg string, allowed ...string) error {
	return &Error{Op: op, Kind: ErrInvalidArgument, Msg: msg, Allowed: allowed}
}

// AllowedValues returns the accepted values carried by an invalid-argument error.
func AllowedValues(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Allowed
	}
	return nil
}
