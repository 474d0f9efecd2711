package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "abc")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("got=%d want=7", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", " 42 ")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("got=%d want=42", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"yes": true, "ON": true, "0": false, "off": false}
	for raw, want := range cases {
		t.Setenv("ENVUTIL_TEST_BOOL", raw)
		if got := Bool("ENVUTIL_TEST_BOOL", !want); got != want {
			t.Fatalf("%q: got=%v want=%v", raw, got, want)
		}
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	if !Bool("ENVUTIL_TEST_BOOL", true) {
		t.Fatalf("unparseable value should return default")
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_DUR", "250ms")
	if got := Duration("ENVUTIL_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("got=%s", got)
	}
	t.Setenv("ENVUTIL_TEST_DUR", "3")
	if got := Duration("ENVUTIL_TEST_DUR", time.Second); got != 3*time.Second {
		t.Fatalf("got=%s", got)
	}
}

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  ")
	if got := String("ENVUTIL_TEST_STR", "def"); got != "def" {
		t.Fatalf("got=%q", got)
	}
}
