package fleet

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/trailer-fleet-service/pkg/config"
	"liyu1981.xyz/trailer-fleet-service/pkg/db"
	"liyu1981.xyz/trailer-fleet-service/pkg/fleet/mocks"
)

var testHardware = config.HardwareSpec{
	RatedSolarWatts:   1000,
	SystemEfficiency:  0.8,
	BatteryCapacityWh: 10000,
	UsableWh:          8000,
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fleetMocks struct {
	Store     *mocks.MockStore
	Solar     *mocks.MockSolarFetcher
	Routers   *mocks.MockRouterFetcher
	Weather   *mocks.MockWeatherFetcher
	Geocoder  *mocks.MockGeocoder
	Publisher *mocks.MockAlertPublisher
}

// GetMockFleetWithMemorySqliteDialector builds a fleet on mocked upstreams.
// The store is a fresh in-memory sqlite database unless useMockStore is set.
// The clock starts at 2026-10-14 12:00 UTC.
func GetMockFleetWithMemorySqliteDialector(t *testing.T, useMockStore bool) (
	*gomock.Controller,
	*Fleet,
	*fleetMocks,
	*testClock,
) {
	ctrl := gomock.NewController(t)

	m := &fleetMocks{
		Store:     mocks.NewMockStore(ctrl),
		Solar:     mocks.NewMockSolarFetcher(ctrl),
		Routers:   mocks.NewMockRouterFetcher(ctrl),
		Weather:   mocks.NewMockWeatherFetcher(ctrl),
		Geocoder:  mocks.NewMockGeocoder(ctrl),
		Publisher: mocks.NewMockAlertPublisher(ctrl),
	}

	var store Store = m.Store
	if !useMockStore {
		dbInstance, err := db.Open(db.UseIsolatedMemorySqliteDialector())
		require.NoError(t, err)
		store = dbInstance
	}

	clock := newTestClock(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))

	fleet := New(Options{
		Store:     store,
		Hardware:  config.NewHardware(testHardware),
		Solar:     m.Solar,
		Routers:   m.Routers,
		Weather:   m.Weather,
		Geocoder:  m.Geocoder,
		Publisher: m.Publisher,

		Location:         time.UTC,
		Poll:             config.PollConfig{BatchSize: 3},
		GeocoderInterval: time.Millisecond,
		Now:              clock.Now,
	})

	return ctrl, fleet, m, clock
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func ptr(v float64) *float64 {
	return &v
}
