package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKindsClassify(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("person.create", "document id already registered"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("conflict must not match not found")
	}
}

func TestInvalidArgumentNamesAllowedSet(t *testing.T) {
	err := InvalidArgument("age", `unknown unit "weeks"`, "days", "months", "years")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument")
	}
	if got := strings.Join(AllowedValues(err), ","); got != "days,months,years" {
		t.Fatalf("allowed=%q", got)
	}
	if !strings.Contains(err.Error(), "allowed: days, months, years") {
		t.Fatalf("message does not name allowed set: %s", err.Error())
	}
}
