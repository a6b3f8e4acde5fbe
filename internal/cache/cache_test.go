package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGet_CachesWithinTTL(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Get(context.Background(), "k", fetch)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if v != "value" {
			t.Fatalf("unexpected value: %v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("expected fetch invoked once, got %d", calls)
	}
}

func TestGet_SingleFlight(t *testing.T) {
	c := New(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return 99, nil
	}

	const waiters = 10
	results := make([]any, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(context.Background(), "k", fetch)
			if err != nil {
				t.Errorf("waiter %d: %v", i, err)
				return
			}
			results[i] = v
		}(i)
	}

	// Give the waiters time to pile onto the single flight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one fetch, got %d", got)
	}
	for i, v := range results {
		if v != 99 {
			t.Fatalf("waiter %d got %v, want 99", i, v)
		}
	}
}

func TestGet_ErrorPropagatesAndNotCached(t *testing.T) {
	c := New(time.Minute)
	boom := errors.New("boom")
	calls := 0
	failing := func(context.Context) (any, error) {
		calls++
		return nil, boom
	}

	if _, err := c.Get(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error propagated unchanged, got %v", err)
	}
	// Failure must not leave an entry behind; the next call fetches again.
	if _, err := c.Get(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected second fetch error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected two fetches, got %d", calls)
	}
	if c.Has("k") {
		t.Fatalf("failed fetch must not cache")
	}
}

func TestGet_RefetchesAfterExpiry(t *testing.T) {
	c := New(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	calls := 0
	fetch := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetTTL(context.Background(), "k", 30*time.Second, fetch); err != nil {
		t.Fatalf("get: %v", err)
	}

	c.now = func() time.Time { return base.Add(31 * time.Second) }
	v, err := c.GetTTL(context.Background(), "k", 30*time.Second, fetch)
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected re-fetch after ttl, got %d calls", calls)
	}
	if v != 2 {
		t.Fatalf("expected fresh value, got %v", v)
	}
}

func TestSet_ServesWithoutFetch(t *testing.T) {
	c := New(time.Minute)
	c.Set("rates", map[string]int{"ratePerUnit": 50}, time.Minute)

	v, err := c.Get(context.Background(), "rates", func(context.Context) (any, error) {
		t.Fatalf("fetch must not run for a live entry")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rates, ok := v.(map[string]int)
	if !ok || rates["ratePerUnit"] != 50 {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestHas_LazyEviction(t *testing.T) {
	c := New(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k", 1, time.Second)

	if !c.Has("k") {
		t.Fatalf("expected live entry")
	}

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	if c.Has("k") {
		t.Fatalf("expected expired entry reported absent")
	}
	if c.Len() != 0 {
		t.Fatalf("expected Has to evict the expired entry, len=%d", c.Len())
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Remove("a")
	if c.Has("a") {
		t.Fatalf("expected a removed")
	}
	if !c.Has("b") {
		t.Fatalf("expected b intact")
	}

	c.Clear()
	if c.Has("b") {
		t.Fatalf("expected clear to drop everything")
	}
}

func TestCleanExpired(t *testing.T) {
	c := New(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("old", 1, time.Second)
	c.Set("fresh", 2, time.Hour)

	c.now = func() time.Time { return base.Add(time.Minute) }
	if removed := c.CleanExpired(); removed != 1 {
		t.Fatalf("expected one entry swept, got %d", removed)
	}
	if c.Len() != 1 || !c.Has("fresh") {
		t.Fatalf("expected only the fresh entry to survive")
	}
}
