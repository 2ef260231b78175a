package model

import (
	"math/rand/v2"
	"regexp"
	"testing"
	"time"
)

func TestCanTransition_LegalEdges(t *testing.T) {
	legal := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			want := legal[[2]Status{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestNextStatuses_Terminal(t *testing.T) {
	if n := NextStatuses(StatusCompleted); len(n) != 0 {
		t.Fatalf("completed should be terminal, got %v", n)
	}
	if n := NextStatuses(StatusCancelled); len(n) != 0 {
		t.Fatalf("cancelled should be terminal, got %v", n)
	}
	n := NextStatuses(StatusPending)
	n[0] = StatusCompleted
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatal("NextStatuses must return a copy")
	}
	if Status("archived").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}

func TestServiceName_FallsBackToCode(t *testing.T) {
	if got := ServiceName("lip-blushing"); got != "Lip Blushing" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := ServiceName("henna"); got != "henna" {
		t.Fatalf("expected raw code fallback, got %q", got)
	}
	s, ok := LookupService("touch-up")
	if !ok || s.Bookable {
		t.Fatalf("touch-up should exist and not be bookable: %+v", s)
	}
}

func TestIDGenerator_Format(t *testing.T) {
	now := time.UnixMilli(1767225600000)
	g := NewIDGenerator(func() time.Time { return now }, rand.New(rand.NewPCG(1, 2)))

	id := g.New(PrefixAppointment)
	re := regexp.MustCompile(`^apt_[0-9a-z]+[0-9a-z]{6}$`)
	if !re.MatchString(id) {
		t.Fatalf("unexpected id format %q", id)
	}
	if other := g.New(PrefixAppointment); other == id {
		t.Fatalf("expected distinct ids for the same millisecond, got %q twice", id)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 7000000, time.UTC)
	s := FormatTimestamp(ts)
	if s != "2026-02-03T04:05:06.007Z" {
		t.Fatalf("unexpected format %q", s)
	}
	if !ParseTimestamp(s).Equal(ts) {
		t.Fatalf("round trip mismatch for %q", s)
	}
	if !ParseTimestamp("").Equal(time.Unix(0, 0)) {
		t.Fatal("empty timestamp should be the epoch")
	}
}
