package images

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCategory_KeywordTable(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	cases := map[string]string{
		"Microblading spring offer":    "eyebrows",
		"LIP BLUSHING for summer":      "lips",
		"lash liner that lasts":        "eyes",
		"Permanent makeup myths":       "makeup",
		"glowing skin after healing":   "beauty",
		"brows and lips combo":         "eyebrows",
		"visit our new studio in town": "salon",
	}
	for prompt, want := range cases {
		if got := Category(prompt, r); got != want {
			t.Fatalf("%q: expected %s, got %s", prompt, want, got)
		}
	}
}

func TestCategory_RandomFallbackStaysInCatalog(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := Category("holiday opening hours", r)
		found := false
		for _, c := range Catalog {
			if c == got {
				found = true
			}
		}
		if !found {
			t.Fatalf("fallback %q is not in the catalog", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected the fallback to vary, saw %v", seen)
	}
}

func TestFetcher_RetriesThenEncodes(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/eyebrows" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{BaseURL: srv.URL, InitialInterval: time.Millisecond}, srv.Client())
	got, err := f.DataURI(context.Background(), "eyebrows")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != "data:image/png;base64,cG5n" {
		t.Fatalf("unexpected data uri %q", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestFetcher_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{BaseURL: srv.URL, MaxAttempts: 3, InitialInterval: time.Millisecond}, srv.Client())
	if _, err := f.DataURI(context.Background(), "lips"); err == nil {
		t.Fatalf("expected error after retries")
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestFetcher_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{BaseURL: srv.URL, InitialInterval: time.Millisecond}, srv.Client())
	if _, err := f.DataURI(context.Background(), "lips"); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}
