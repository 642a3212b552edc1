package fleet

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

const (
	// DefaultPeakSunHours is used for units without a GPS fix.
	DefaultPeakSunHours = 4.5

	weatherFailureTTL = 5 * time.Minute
)

type weatherEntry struct {
	sample    clients.WeatherSample
	ok        bool
	fetchedAt time.Time
}

type weatherCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]weatherEntry
}

func newWeatherCache(ttl time.Duration) *weatherCache {
	return &weatherCache{ttl: ttl, entries: make(map[string]weatherEntry)}
}

func (c *weatherCache) get(key string, now time.Time) (weatherEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return weatherEntry{}, false
	}
	ttl := c.ttl
	if !entry.ok && weatherFailureTTL < ttl {
		ttl = weatherFailureTTL
	}
	if now.Sub(entry.fetchedAt) >= ttl {
		return weatherEntry{}, false
	}
	return entry, true
}

func (c *weatherCache) put(key string, entry weatherEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// sunEstimate is the peak-sun-hours input of a score and where it came from.
type sunEstimate struct {
	PeakSunHours  float64
	Source        models.SunSource
	CloudCoverPct *float64
	SunshineHours *float64
}

// cellWeather returns the cached sample of the cell holding p, fetching it
// when missing or stale. Failures are cached briefly as well.
func (f *Fleet) cellWeather(ctx context.Context, p geo.Point) (clients.WeatherSample, bool) {
	if f.Weather == nil {
		return clients.WeatherSample{}, false
	}

	cell := geo.CellOf(p)
	key := cell.Key()
	if entry, ok := f.weather.get(key, f.now()); ok {
		return entry.sample, entry.ok
	}

	sample, err := f.Weather.Forecast(ctx, cell.Point())
	ok := err == nil && sample.PeakSunHours() != nil
	if err != nil {
		common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryWeather).
			Warn("Weather fetch failed", zap.String("cell", key), zap.Error(err))
	}
	f.weather.put(key, weatherEntry{sample: sample, ok: ok, fetchedAt: f.now()})
	return sample, ok
}

// peakSunHours falls back to the default average without a fix, and to the
// clear-sky model when the weather provider fails.
func (f *Fleet) peakSunHours(ctx context.Context, p *geo.Point) sunEstimate {
	if p == nil {
		return sunEstimate{PeakSunHours: DefaultPeakSunHours, Source: models.SunSourceDefault}
	}

	if sample, ok := f.cellWeather(ctx, *p); ok {
		return sunEstimate{
			PeakSunHours:  *sample.PeakSunHours(),
			Source:        models.SunSourceWeather,
			CloudCoverPct: sample.CloudCoverPct,
			SunshineHours: sample.SunshineHours,
		}
	}

	return sunEstimate{
		PeakSunHours: geo.ClearSkyPeakSunHours(p.Lat, f.now().In(f.loc)),
		Source:       models.SunSourceClearSky,
	}
}

// prewarmWeather fetches each distinct cell of points once.
func (f *Fleet) prewarmWeather(ctx context.Context, points []geo.Point) int {
	if f.Weather == nil {
		return 0
	}
	seen := make(map[string]bool)
	fetched := 0
	for _, p := range points {
		key := geo.CellOf(p).Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, cached := f.weather.get(key, f.now()); cached {
			continue
		}
		f.cellWeather(ctx, p)
		fetched++
	}
	common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryWeather).
		Debug("Pre-warmed weather cache", zap.Int("cells", len(seen)), zap.Int("fetched", fetched))
	return fetched
}
