package fleet

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

type unitDirectory struct {
	mu    sync.RWMutex
	units map[int64]models.Unit
}

func newUnitDirectory() *unitDirectory {
	return &unitDirectory{units: make(map[int64]models.Unit)}
}

func (d *unitDirectory) Put(u models.Unit) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.units[u.ID] = u
}

func (d *unitDirectory) Get(id int64) (models.Unit, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.units[id]
	return u, ok
}

// List returns the units sorted by id, optionally restricted to one source.
func (d *unitDirectory) List(sources ...models.UnitSource) []models.Unit {
	d.mu.RLock()
	defer d.mu.RUnlock()

	units := make([]models.Unit, 0, len(d.units))
	for _, u := range d.units {
		if len(sources) > 0 && !containsSource(sources, u.Source) {
			continue
		}
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

func containsSource(sources []models.UnitSource, s models.UnitSource) bool {
	for _, candidate := range sources {
		if candidate == s {
			return true
		}
	}
	return false
}

type snapshotCache struct {
	mu        sync.RWMutex
	snapshots map[int64]models.Snapshot
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{snapshots: make(map[int64]models.Snapshot)}
}

func (c *snapshotCache) Put(s models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[s.UnitID] = s
}

func (c *snapshotCache) Get(unitID int64) (models.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.snapshots[unitID]
	return s, ok
}

func (c *snapshotCache) UnitIDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int64, 0, len(c.snapshots))
	for id := range c.snapshots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type gpsFix struct {
	Point      geo.Point
	Source     models.GPSSource
	CapturedAt time.Time
}

type gpsCache struct {
	mu    sync.RWMutex
	fixes map[int64]gpsFix
}

func newGPSCache() *gpsCache {
	return &gpsCache{fixes: make(map[int64]gpsFix)}
}

// Put stores fix unless a router fix is already held and fix comes from the
// solar side. Reports whether the fix was stored.
func (c *gpsCache) Put(unitID int64, fix gpsFix) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current, ok := c.fixes[unitID]; ok &&
		current.Source == models.GPSSourceRouter && fix.Source == models.GPSSourceSolar {
		return false
	}
	c.fixes[unitID] = fix
	return true
}

func (c *gpsCache) Get(unitID int64) (gpsFix, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fix, ok := c.fixes[unitID]
	return fix, ok
}

func (c *gpsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fixes)
}

// All returns a copy of every fix keyed by unit id.
func (c *gpsCache) All() map[int64]gpsFix {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fixes := make(map[int64]gpsFix, len(c.fixes))
	for id, fix := range c.fixes {
		fixes[id] = fix
	}
	return fixes
}

type routerStatusCache struct {
	mu       sync.RWMutex
	byUnitID map[int64]models.RouterStatus
}

func newRouterStatusCache() *routerStatusCache {
	return &routerStatusCache{byUnitID: make(map[int64]models.RouterStatus)}
}

func (c *routerStatusCache) Put(s models.RouterStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUnitID[s.UnitID] = s
}

func (c *routerStatusCache) Get(unitID int64) (models.RouterStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byUnitID[unitID]
	return s, ok
}

// recordGPS caches a fix and mirrors it to the store through the write queue.
func (f *Fleet) recordGPS(unitID int64, p geo.Point, source models.GPSSource) bool {
	if p.IsZero() && !f.acceptZeroFix {
		common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryPersist).
			Debug("Dropping 0,0 gps fix", zap.Int64("unit_id", unitID), zap.String("source", string(source)))
		return false
	}
	fix := gpsFix{Point: p, Source: source, CapturedAt: f.now()}
	if !f.gps.Put(unitID, fix) {
		return false
	}

	if f.Queue != nil && f.Store != nil {
		row := models.UnitGPS{
			UnitID:     unitID,
			Latitude:   p.Lat,
			Longitude:  p.Lon,
			Source:     string(source),
			CapturedAt: fix.CapturedAt,
		}
		f.Queue.Enqueue("upsert unit gps", func(ctx context.Context) error {
			return f.Store.UpsertUnitGPS(ctx, row)
		})
	}
	return true
}

func (f *Fleet) loadGPS(ctx context.Context) error {
	if f.Store == nil {
		return nil
	}
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryPersist)

	rows, err := f.Store.LoadUnitGPS(ctx)
	if err != nil {
		logger.Error("Failed to load unit gps", zap.Error(err))
		return err
	}
	for _, row := range rows {
		f.gps.Put(row.UnitID, gpsFix{
			Point:      geo.Point{Lat: row.Latitude, Lon: row.Longitude},
			Source:     models.GPSSource(row.Source),
			CapturedAt: row.CapturedAt,
		})
	}
	logger.Info("Loaded unit gps", zap.Int("count", len(rows)))
	return nil
}
