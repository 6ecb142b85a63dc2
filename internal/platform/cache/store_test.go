package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "config-v3", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "scoring:active", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "config-v3" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	first, _ := store.GetOrLoad(context.Background(), "theme:2025-06", loader)
	now = now.Add(59 * time.Second)
	second, _ := store.GetOrLoad(context.Background(), "theme:2025-06", loader)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value within ttl: first=%d second=%d", first, second)
	}

	now = now.Add(2 * time.Second)
	third, _ := store.GetOrLoad(context.Background(), "theme:2025-06", loader)
	if third != 2 {
		t.Fatalf("expected reload after ttl: got=%d want=2", third)
	}
}

func TestStore_LoadErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	errDB := errors.New("db unavailable")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", errDB
	}); !errors.Is(err, errDB) {
		t.Fatalf("unexpected error: got=%v want=%v", err, errDB)
	}
	if store.Len() != 0 {
		t.Fatalf("failed load must not be stored")
	}

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("unexpected retry result: v=%q err=%v", v, err)
	}
}

func TestStore_InvalidatePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	store.Set("theme:2025-05", 1)
	store.Set("theme:2025-06", 2)
	store.Set("scoring:active", 3)

	store.InvalidatePrefix("theme:")
	if _, ok := store.Get("theme:2025-05"); ok {
		t.Fatalf("expected theme entry to be invalidated")
	}
	if v, ok := store.Get("scoring:active"); !ok || v != 3 {
		t.Fatalf("unrelated entry must stay: v=%d ok=%v", v, ok)
	}

	store.Invalidate("scoring:active")
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
}

func TestStore_GetOrLoad_RequiresLoader(t *testing.T) {
	t.Parallel()

	if _, err := NewStore[int](time.Second).GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
