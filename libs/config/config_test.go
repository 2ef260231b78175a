package config

import (
	"testing"
	"time"
)

func TestPort(t *testing.T) {
	t.Setenv("TEST_PORT", "8080")
	p, err := Port("TEST_PORT", "1")
	if err != nil || p != "8080" {
		t.Fatalf("expected 8080, got %q (%v)", p, err)
	}

	t.Setenv("TEST_PORT", "99999")
	if _, err := Port("TEST_PORT", "1"); err == nil {
		t.Fatal("expected error for out of range port")
	}
}

func TestDurationAndBool(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "")
	d, err := Duration("TEST_TIMEOUT", 3*time.Second)
	if err != nil || d != 3*time.Second {
		t.Fatalf("expected fallback, got %s (%v)", d, err)
	}

	t.Setenv("TEST_TIMEOUT", "250ms")
	d, err = Duration("TEST_TIMEOUT", 0)
	if err != nil || d != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s (%v)", d, err)
	}

	t.Setenv("TEST_TIMEOUT", "soon")
	if _, err := Duration("TEST_TIMEOUT", 0); err == nil {
		t.Fatal("expected parse error")
	}

	t.Setenv("TEST_FLAG", "off")
	if Bool("TEST_FLAG", true) {
		t.Fatal("expected false")
	}
	t.Setenv("TEST_FLAG", "maybe")
	if !Bool("TEST_FLAG", true) {
		t.Fatal("expected fallback true")
	}
}

func TestList(t *testing.T) {
	t.Setenv("TEST_LIST", " a, ,b ,c")
	got := List("TEST_LIST")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected list: %#v", got)
	}
}

func TestIntAtLeast(t *testing.T) {
	t.Setenv("TEST_ATTEMPTS", "")
	n, err := IntAtLeast("TEST_ATTEMPTS", 3, 1)
	if err != nil || n != 3 {
		t.Fatalf("expected fallback 3, got %d (%v)", n, err)
	}

	t.Setenv("TEST_ATTEMPTS", "5")
	if n, err := IntAtLeast("TEST_ATTEMPTS", 3, 1); err != nil || n != 5 {
		t.Fatalf("expected 5, got %d (%v)", n, err)
	}

	for _, v := range []string{"0", "-2", "many"} {
		t.Setenv("TEST_ATTEMPTS", v)
		if _, err := IntAtLeast("TEST_ATTEMPTS", 3, 1); err == nil {
			t.Fatalf("expected error for %q", v)
		}
	}
}
