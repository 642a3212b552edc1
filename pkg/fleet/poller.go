package fleet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

const (
	FleetSolar  = "solar"
	FleetRouter = "router"

	defaultBatchSize = 4
)

var errNoDiagnostics = errors.New("no diagnostic records")

type CycleSummary struct {
	CycleID   string        `json:"cycleId"`
	Fleet     string        `json:"fleet"`
	StartedAt time.Time     `json:"startedAt"`
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// fetchResult is the outcome of one per-unit fetch inside a batch.
type fetchResult[I any, T any] struct {
	Item  I
	Value T
	Err   error
}

// runBatches calls fetch for every item, at most size at a time, pausing
// delay between batches. A failing item never stops its siblings. Items not
// reached because ctx ended carry ctx's error.
func runBatches[I any, T any](
	ctx context.Context,
	items []I,
	size int,
	delay time.Duration,
	fetch func(ctx context.Context, item I) (T, error),
) []fetchResult[I, T] {
	if size <= 0 {
		size = defaultBatchSize
	}
	results := make([]fetchResult[I, T], len(items))
	for i, item := range items {
		results[i].Item = item
	}

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))

		if start > 0 && delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}
		if err := ctx.Err(); err != nil {
			for i := start; i < len(items); i++ {
				results[i].Err = err
			}
			break
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i].Value, results[i].Err = fetch(ctx, items[i])
				return nil
			})
		}
		_ = g.Wait()
	}
	return results
}

func (f *Fleet) newCycle(fleet string) (CycleSummary, *zap.Logger) {
	summary := CycleSummary{CycleID: uuid.NewString(), Fleet: fleet, StartedAt: f.now()}
	logger := common.GetCategoryLogger(common.LoggerNamePoller, common.LoggerCategoryPoll).
		With(zap.String("cycle_id", summary.CycleID), zap.String("fleet", fleet))
	return summary, logger
}

func (f *Fleet) finishCycle(summary *CycleSummary, logger *zap.Logger) {
	summary.Succeeded = summary.Attempted - summary.Failed
	summary.Duration = f.now().Sub(summary.StartedAt)
	logger.Info("Poll cycle finished", zap.Reflect("summary", summary))
}

// ingest stores a snapshot and the matching ledger update together.
func (f *Fleet) ingest(snap models.Snapshot) {
	f.ingestMu.Lock()
	defer f.ingestMu.Unlock()

	f.snapshots.Put(snap)
	f.Ledger.Record(snap.UnitID, snap.DisplayName, snap.YieldTodayKwh, snap.ConsumedAh, snap.Voltage, snap.BatterySoc)
}

// PollSolar runs one solar cycle. Units whose diagnostics fail keep their
// previous snapshot.
func (f *Fleet) PollSolar(ctx context.Context) (summary CycleSummary, err error) {
	if f.Solar == nil {
		return CycleSummary{}, errors.New("solar fetcher not configured")
	}
	if !f.solarRunning.CompareAndSwap(false, true) {
		return CycleSummary{}, ErrCycleInProgress
	}
	defer f.solarRunning.Store(false)

	var logger *zap.Logger
	summary, logger = f.newCycle(FleetSolar)
	defer f.finishCycle(&summary, logger)

	sites, err := f.Solar.ListSites(ctx)
	if err != nil {
		logger.Error("Failed to list solar sites", zap.Error(err))
		return summary, err
	}
	for _, site := range sites {
		f.units.Put(models.Unit{ID: site.ID, Name: site.Name, Source: models.UnitSourceSolar})
	}
	summary.Attempted = len(sites)

	results := runBatches(ctx, sites, f.poll.BatchSize, f.poll.BatchDelay,
		func(ctx context.Context, site clients.Site) ([]clients.DiagnosticRecord, error) {
			records, err := f.Solar.Diagnostics(ctx, site.ID)
			if err == nil && len(records) == 0 {
				err = errNoDiagnostics
			}
			return records, err
		},
	)

	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			logger.Warn("Failed to fetch diagnostics", zap.Int64("unit_id", r.Item.ID), zap.Error(r.Err))
			continue
		}

		snap, fix := ExtractSnapshot(r.Item.ID, r.Item.Name, r.Value, f.now())
		f.ingest(snap)
		if fix != nil {
			f.recordGPS(r.Item.ID, *fix, models.GPSSourceSolar)
		}
	}

	f.publishAlerts(ctx, logger)
	f.maybeAutoCluster(ctx, logger)
	return summary, nil
}

func (f *Fleet) publishAlerts(ctx context.Context, logger *zap.Logger) {
	if f.Publisher == nil {
		return
	}
	alerts := f.Alert.ComputeAlerts()
	if len(alerts) == 0 {
		return
	}
	if err := f.Publisher.Publish(ctx, alerts); err != nil {
		logger.Warn("Failed to publish deficit alerts", zap.Int("count", len(alerts)), zap.Error(err))
	}
}

type routerTarget struct {
	RouterID int64
	UnitID   int64
}

// PollRouters runs one router cycle: resolve every router to a unit, record
// its connectivity, and collect GPS fixes.
func (f *Fleet) PollRouters(ctx context.Context) (summary CycleSummary, err error) {
	if f.Routers == nil {
		return CycleSummary{}, errors.New("router fetcher not configured")
	}
	if !f.routerRunning.CompareAndSwap(false, true) {
		return CycleSummary{}, ErrCycleInProgress
	}
	defer f.routerRunning.Store(false)

	var logger *zap.Logger
	summary, logger = f.newCycle(FleetRouter)
	defer f.finishCycle(&summary, logger)

	devices, err := f.Routers.ListDevices(ctx)
	if err != nil {
		logger.Error("Failed to list routers", zap.Error(err))
		return summary, err
	}
	summary.Attempted = len(devices)

	known := f.units.List(models.UnitSourceSolar)
	var missing []routerTarget

	for _, device := range devices {
		resolution := f.Identity.Resolve(ctx, device, known)
		if resolution.UnitID < 0 {
			f.units.Put(models.Unit{ID: resolution.UnitID, Name: resolution.DisplayName, Source: models.UnitSourceCellular})
		}

		f.routers.Put(models.RouterStatus{
			RouterID:  device.ID,
			UnitID:    resolution.UnitID,
			Name:      device.Name,
			Online:    device.Online(),
			SignalDbm: device.SignalDbm,
			LastSeen:  f.now(),
		})

		if p := device.Location(); p != nil {
			f.recordGPS(resolution.UnitID, *p, models.GPSSourceRouter)
		} else {
			missing = append(missing, routerTarget{RouterID: device.ID, UnitID: resolution.UnitID})
		}
	}

	results := runBatches(ctx, missing, f.poll.BatchSize, f.poll.BatchDelay,
		func(ctx context.Context, target routerTarget) (*geo.Point, error) {
			return f.Routers.DeviceLocation(ctx, target.RouterID)
		},
	)
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			logger.Warn("Failed to fetch router location", zap.Int64("router_id", r.Item.RouterID), zap.Error(r.Err))
			continue
		}
		if r.Value != nil {
			f.recordGPS(r.Item.UnitID, *r.Value, models.GPSSourceRouter)
		}
	}

	f.maybeAutoCluster(ctx, logger)
	return summary, nil
}

// maybeAutoCluster clusters once, after the first cycle that produced GPS.
func (f *Fleet) maybeAutoCluster(ctx context.Context, logger *zap.Logger) {
	if f.Store == nil || f.gps.Len() == 0 {
		return
	}
	if !f.clusteredOnce.CompareAndSwap(false, true) {
		return
	}
	if _, err := f.Cluster.Cluster(ctx, f.clusterThreshold); err != nil {
		f.clusteredOnce.Store(false)
		logger.Warn("Automatic clustering failed, will retry next cycle", zap.Error(err))
	}
}

// RunPollers polls each configured fleet on its own interval until ctx ends.
// The first cycle of each fleet starts immediately.
func (f *Fleet) RunPollers(ctx context.Context) {
	var wg sync.WaitGroup

	if f.Solar != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.pollEvery(ctx, FleetSolar, f.poll.SolarInterval, f.PollSolar)
		}()
	}
	if f.Routers != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.pollEvery(ctx, FleetRouter, f.poll.RouterInterval, f.PollRouters)
		}()
	}
	wg.Wait()
}

func (f *Fleet) pollEvery(
	ctx context.Context,
	fleet string,
	interval time.Duration,
	poll func(ctx context.Context) (CycleSummary, error),
) {
	logger := common.GetCategoryLogger(common.LoggerNamePoller, common.LoggerCategoryPoll).
		With(zap.String("fleet", fleet))
	if interval <= 0 {
		logger.Error("Poll interval must be positive, poller disabled", zap.Duration("interval", interval))
		return
	}

	var inflight sync.WaitGroup
	defer inflight.Wait()

	run := func() {
		// a cycle may still be running when the ticker fires, run it aside
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			if _, err := poll(ctx); errors.Is(err, ErrCycleInProgress) {
				logger.Debug("Previous cycle still running, skipping")
			}
		}()
	}

	logger.Info("Poller started", zap.Duration("interval", interval))
	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Poller stopped")
			return
		case <-ticker.C:
			run()
		}
	}
}
