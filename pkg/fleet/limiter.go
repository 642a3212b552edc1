package fleet

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// LimiterSetting is the rate and burst of one limiter.
type LimiterSetting struct {
	Rate  rate.Limit `json:"rate"`
	Burst int        `json:"burst"`
}

// UnitLimiterKey keys a unit's HTTP limiter. Collaborators such as the
// geocoder use their own names, so the two never collide.
func UnitLimiterKey(unitID int64) string {
	return "unit:" + strconv.FormatInt(unitID, 10)
}

// RateLimiterStore hands out one token bucket per key. Keys without an
// explicit setting share the store default.
type RateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	fallback LimiterSetting
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		fallback: LimiterSetting{Rate: defaultRate, Burst: defaultBurst},
	}
}

func (s *RateLimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.fallback.Rate, s.fallback.Burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// SetLimiter replaces the limiter of key with a full bucket.
func (s *RateLimiterStore) SetLimiter(key string, keyRate rate.Limit, keyBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[key] = rate.NewLimiter(keyRate, keyBurst)
}

// Setting reports what key is limited to right now.
func (s *RateLimiterStore) Setting(key string) LimiterSetting {
	limiter := s.GetLimiter(key)
	return LimiterSetting{Rate: limiter.Limit(), Burst: limiter.Burst()}
}

func (s *RateLimiterStore) Allow(key string) bool {
	return s.GetLimiter(key).Allow()
}

// Wait blocks until key has a token or ctx ends.
func (s *RateLimiterStore) Wait(ctx context.Context, key string) error {
	return s.GetLimiter(key).Wait(ctx)
}
