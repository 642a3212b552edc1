package fleet

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiterStore_DefaultLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("501")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 || limiter.Burst() != 2 {
		t.Errorf("expected limit 1 burst 2, got %v %v", limiter.Limit(), limiter.Burst())
	}
	if store.GetLimiter("501") != limiter {
		t.Error("expected the same limiter for the same key")
	}
}

func TestRateLimiterStore_SetLimiter(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter(geocoderLimiterKey, rate.Every(time.Second), 1)
	limiter := store.GetLimiter(geocoderLimiterKey)

	if limiter.Limit() != rate.Every(time.Second) {
		t.Errorf("expected one event per second, got %v", limiter.Limit())
	}
	if limiter.Burst() != 1 {
		t.Errorf("expected burst 1, got %v", limiter.Burst())
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)

	var wg sync.WaitGroup
	seen := make([]*rate.Limiter, 100)

	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen[i] = store.GetLimiter(strconv.Itoa(i % 3))
		}()
	}
	wg.Wait()

	for i := range seen {
		if seen[i] != store.GetLimiter(strconv.Itoa(i%3)) {
			t.Fatalf("goroutine %d saw a different limiter for key %d", i, i%3)
		}
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec

	limiter := store.GetLimiter("-77")

	if !limiter.Allow() || !limiter.Allow() {
		t.Fatal("expected first two calls to be allowed")
	}
	if limiter.Allow() {
		t.Error("expected third call to be rate limited")
	}

	time.Sleep(600 * time.Millisecond)
	if !limiter.Allow() {
		t.Error("expected one token to be available after refill")
	}
}

func TestUnitLimiterKey(t *testing.T) {
	if got := UnitLimiterKey(-77); got != "unit:-77" {
		t.Errorf("expected unit:-77, got %s", got)
	}
	if UnitLimiterKey(1) == geocoderLimiterKey {
		t.Error("unit keys must not collide with collaborator keys")
	}
}

func TestRateLimiterStore_Setting(t *testing.T) {
	store := NewRateLimiterStore(3, 4)

	if got := store.Setting("unit:1"); got != (LimiterSetting{Rate: 3, Burst: 4}) {
		t.Errorf("expected the default setting, got %+v", got)
	}

	store.SetLimiter("unit:1", 0.5, 1)
	if got := store.Setting("unit:1"); got != (LimiterSetting{Rate: 0.5, Burst: 1}) {
		t.Errorf("expected the explicit setting, got %+v", got)
	}
}

func TestRateLimiterStore_AllowAndWait(t *testing.T) {
	store := NewRateLimiterStore(0, 0)

	if store.Allow("unit:1") {
		t.Error("expected zero burst to block")
	}

	store.SetLimiter(geocoderLimiterKey, rate.Every(100*time.Millisecond), 1)
	ctx := context.Background()

	start := time.Now()
	if err := store.Wait(ctx, geocoderLimiterKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Wait(ctx, geocoderLimiterKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("expected the second wait to be paced, took %v", elapsed)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := store.Wait(cancelled, geocoderLimiterKey); err == nil {
		t.Error("expected a cancelled context to abort the wait")
	}
}
