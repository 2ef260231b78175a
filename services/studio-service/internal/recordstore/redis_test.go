package recordstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, "{test}:"), mr
}

func TestRedis_CommitChecksVersions(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	snap, err := s.Get(ctx, "k")
	if err != nil || snap.Data != nil || snap.Version != 0 {
		t.Fatalf("expected empty snapshot, got %+v (%v)", snap, err)
	}

	if err := s.Commit(ctx, Write{Key: "k", Data: []byte("[1]"), Version: 0}); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if err := s.Commit(ctx, Write{Key: "k", Data: []byte("[2]"), Version: 0}); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}

	snap, _ = s.Get(ctx, "k")
	if string(snap.Data) != "[1]" || snap.Version != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if got, _ := mr.Get("{test}:k"); got != "[1]" {
		t.Fatalf("expected prefixed data key, got %q", got)
	}
}

func TestRedis_CommitIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)
	if err := s.Commit(ctx, Write{Key: "a", Data: []byte("a1")}, Write{Key: "b", Data: []byte("b1")}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := s.Commit(ctx,
		Write{Key: "a", Data: []byte("a2"), Version: 1},
		Write{Key: "b", Data: []byte("b2"), Version: 7},
	)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	a, _ := s.Get(ctx, "a")
	if string(a.Data) != "a1" || a.Version != 1 {
		t.Fatalf("partial write leaked: %+v", a)
	}
}

func TestRedis_DeleteKeepsVersionMonotonic(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	_ = s.Commit(ctx, Write{Key: "k", Data: []byte("x")})
	if err := s.Commit(ctx, Write{Key: "k", Delete: true, Version: 1}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, _ := s.Get(ctx, "k")
	if snap.Data != nil || snap.Version != 2 {
		t.Fatalf("expected tombstone at version 2, got %+v", snap)
	}
	if mr.Exists("{test}:k") {
		t.Fatal("expected data key to be removed")
	}
	if err := s.Commit(ctx, Write{Key: "k", Data: []byte("y"), Version: 0}); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected stale version 0 to conflict after delete, got %v", err)
	}
}

func TestRedis_CorruptVersionIsNotAConflict(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	if err := mr.Set("{test}:k:version", "abc"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := s.Get(ctx, "k"); err == nil {
		t.Fatal("expected version parse error from Get")
	}
	err := s.Commit(ctx, Write{Key: "k", Data: []byte("x")})
	if err == nil || errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected a plain error, got %v", err)
	}
}

func TestRedis_ConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Commit(ctx, Write{Key: "k", Data: []byte("x"), Version: 0})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrVersionConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != writers-1 {
		t.Fatalf("expected exactly one winner, got %d ok / %d conflicts", ok, conflicts)
	}
	snap, _ := s.Get(ctx, "k")
	if snap.Version != 1 {
		t.Fatalf("expected version 1, got %d", snap.Version)
	}
}
