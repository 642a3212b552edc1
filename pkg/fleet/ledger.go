package fleet

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

const (
	DateLayout = "2006-01-02"

	// RetentionDays is how many calendar dates, today included, the hot
	// ledger keeps per unit.
	RetentionDays = 14
)

type socSample struct {
	date string
	soc  float64
}

type ledgerState struct {
	mu       sync.RWMutex
	entries  map[int64]map[string]models.LedgerDay
	startSoc map[int64]socSample
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		entries:  make(map[int64]map[string]models.LedgerDay),
		startSoc: make(map[int64]socSample),
	}
}

// retentionCutoff is the oldest date kept when today is t.
func retentionCutoff(t time.Time) string {
	return t.AddDate(0, 0, -(RetentionDays - 1)).Format(DateLayout)
}

func (f *Fleet) record(
	unitID int64,
	displayName string,
	yieldTodayKwh, consumedAh, voltage, batterySoc *float64,
) models.LedgerDay {
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryLedger)

	now := f.now().In(f.loc)
	date := now.Format(DateLayout)
	capacityWh := f.Hardware.For(unitID).BatteryCapacityWh

	f.ledger.mu.Lock()

	days, ok := f.ledger.entries[unitID]
	if !ok {
		days = make(map[string]models.LedgerDay)
		f.ledger.entries[unitID] = days
	}
	day, ok := days[date]
	if !ok {
		day = models.LedgerDay{Date: date}
	}
	if displayName != "" {
		day.DisplayName = displayName
	}

	if yieldTodayKwh != nil {
		day.YieldWh = common.Float(*yieldTodayKwh * 1000)
	}

	sample, hasSample := f.ledger.startSoc[unitID]
	if hasSample && sample.date != date {
		delete(f.ledger.startSoc, unitID)
		hasSample = false
	}
	if !hasSample && batterySoc != nil {
		sample = socSample{date: date, soc: *batterySoc}
		f.ledger.startSoc[unitID] = sample
		hasSample = true
	}

	// a metered value is never replaced by an estimate later the same day
	switch {
	case consumedAh != nil && voltage != nil:
		day.ConsumedWh = common.Float(math.Abs(*consumedAh) * *voltage)
		day.ConsumedSource = models.ConsumptionMeter
	case day.ConsumedSource != models.ConsumptionMeter && day.YieldWh != nil && batterySoc != nil && hasSample:
		estimate := *day.YieldWh + (sample.soc-*batterySoc)*capacityWh/100
		if estimate > 0 {
			day.ConsumedWh = common.Float(estimate)
			day.ConsumedSource = models.ConsumptionEstimate
		}
	}

	day.UpdatedAt = now
	days[date] = day

	cutoff := retentionCutoff(now)
	for d := range days {
		if d < cutoff {
			delete(days, d)
		}
	}

	f.ledger.mu.Unlock()

	logger.Debug("Recorded ledger day", zap.Int64("unit_id", unitID), zap.Reflect("day", day))
	f.mirrorLedgerDay(unitID, day)
	return day
}

func (f *Fleet) mirrorLedgerDay(unitID int64, day models.LedgerDay) {
	if f.Queue == nil || f.Store == nil {
		return
	}
	row := models.DailyEnergy{
		UnitID:      unitID,
		Date:        day.Date,
		YieldWh:     day.YieldWh,
		ConsumedWh:  day.ConsumedWh,
		DisplayName: day.DisplayName,
		UpdatedAt:   day.UpdatedAt,

		ConsumedSource: day.ConsumedSource,
	}
	f.Queue.Enqueue("upsert daily energy", func(ctx context.Context) error {
		return f.Store.UpsertDailyEnergy(ctx, row)
	})
}

// entries returns the unit's ledger days, oldest first.
func (f *Fleet) entries(unitID int64) []models.LedgerDay {
	f.ledger.mu.RLock()
	defer f.ledger.mu.RUnlock()

	days := make([]models.LedgerDay, 0, len(f.ledger.entries[unitID]))
	for _, day := range f.ledger.entries[unitID] {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

func (f *Fleet) ledgerUnits() []int64 {
	f.ledger.mu.RLock()
	defer f.ledger.mu.RUnlock()

	ids := make([]int64, 0, len(f.ledger.entries))
	for id, days := range f.ledger.entries {
		if len(days) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// seed fills the ledger from the store. Entries already written by a live
// poll are left untouched. Returns the number of days taken from the store.
func (f *Fleet) seed(ctx context.Context) (int, error) {
	if f.Store == nil {
		return 0, nil
	}
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryLedger)

	rows, err := f.Store.LoadDailyEnergy(ctx, retentionCutoff(f.now().In(f.loc)))
	if err != nil {
		logger.Error("Failed to seed ledger", zap.Error(err))
		return 0, err
	}

	seeded := 0
	f.ledger.mu.Lock()
	for _, row := range rows {
		days, ok := f.ledger.entries[row.UnitID]
		if !ok {
			days = make(map[string]models.LedgerDay)
			f.ledger.entries[row.UnitID] = days
		}
		if _, live := days[row.Date]; live {
			continue
		}
		days[row.Date] = models.LedgerDay{
			Date:        row.Date,
			YieldWh:     row.YieldWh,
			ConsumedWh:  row.ConsumedWh,
			DisplayName: row.DisplayName,
			UpdatedAt:   row.UpdatedAt,

			ConsumedSource: row.ConsumedSource,
		}
		seeded++
	}
	f.ledger.mu.Unlock()

	logger.Info("Seeded ledger", zap.Int("rows", len(rows)), zap.Int("seeded", seeded))
	return seeded, nil
}

type ILedgerImpl struct {
	fleet *Fleet
}

func (il *ILedgerImpl) Record(
	unitID int64,
	displayName string,
	yieldTodayKwh, consumedAh, voltage, batterySoc *float64,
) models.LedgerDay {
	return il.fleet.record(unitID, displayName, yieldTodayKwh, consumedAh, voltage, batterySoc)
}

func (il *ILedgerImpl) Entries(unitID int64) []models.LedgerDay {
	return il.fleet.entries(unitID)
}

func (il *ILedgerImpl) Units() []int64 {
	return il.fleet.ledgerUnits()
}

func (il *ILedgerImpl) Seed(ctx context.Context) (int, error) {
	return il.fleet.seed(ctx)
}

func (f *Fleet) GetILedger() ILedger {
	return &ILedgerImpl{fleet: f}
}
