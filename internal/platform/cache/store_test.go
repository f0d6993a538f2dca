package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetSetExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Minute)
	base := time.Date(2025, 11, 2, 17, 0, 0, 0, time.UTC)
	current := base
	store.now = func() time.Time { return current }

	ctx := context.Background()

	if _, ok := store.Get(ctx, "games:live"); ok {
		t.Fatalf("expected miss on empty store")
	}

	store.Set(ctx, "games:live", 7)
	value, ok := store.Get(ctx, "games:live")
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if got := value.(int); got != 7 {
		t.Fatalf("unexpected value %d", got)
	}

	current = base.Add(5 * time.Minute)
	if _, ok := store.Get(ctx, "games:live"); ok {
		t.Fatalf("expected expiry at ttl boundary")
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "standings:1:2025", "cached")
	store.Delete(ctx, "standings:1:2025")
	if _, ok := store.Get(ctx, "standings:1:2025"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	var loads int32
	loader := func(context.Context) (any, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return "payload", nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err := store.GetOrLoad(ctx, "teams:1:2025", loader)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if value.(string) != "payload" {
				t.Errorf("unexpected value %v", value)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected single load, got %d", got)
	}

	value, err := store.GetOrLoad(ctx, "teams:1:2025", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.(string) != "payload" {
		t.Fatalf("unexpected cached value %v", value)
	}
	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected cached read to skip loader, got %d loads", got)
	}
}

func TestStore_GetOrLoadError(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	wantErr := errors.New("upstream unavailable")
	_, err := store.GetOrLoad(ctx, "odds:99", func(context.Context) (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(ctx, "odds:99"); ok {
		t.Fatalf("failed load must not populate the cache")
	}
}
