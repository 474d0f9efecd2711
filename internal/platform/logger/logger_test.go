package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValueRedactsContactData(t *testing.T) {
	for _, key := range []string{"email", "phone", "contact_email"} {
		if got := sanitizeValue(key, "someone@example.com"); got != "[REDACTED]" {
			t.Fatalf("key %q: got=%v want=[REDACTED]", key, got)
		}
	}
}

func TestSanitizeValueHashesDocumentIDs(t *testing.T) {
	a := sanitizeValue("document_id", "529.982.247-25")
	b := sanitizeValue("document_id", "529.982.247-25")
	s, ok := a.(string)
	if !ok || !strings.HasPrefix(s, "hash:") {
		t.Fatalf("expected hashed value, got %v", a)
	}
	if a != b {
		t.Fatalf("hash not stable: %v vs %v", a, b)
	}
	if strings.Contains(s, "529") {
		t.Fatalf("hash leaks raw value: %v", s)
	}
}

func TestSanitizeValuePassesThroughOtherKeys(t *testing.T) {
	if got := sanitizeValue("person_id", int64(7)); got != int64(7) {
		t.Fatalf("got=%v want=7", got)
	}
	m := sanitizeValue("fields", map[string]interface{}{"email": "x@y.io", "name": "Ana"}).(map[string]interface{})
	if m["email"] != "[REDACTED]" || m["name"] != "Ana" {
		t.Fatalf("unexpected nested sanitize: %+v", m)
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("service", "x").Info("hello", "email", "a@b.io")
	log.Sync()
}
