package fleet

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

const (
	// MinChargingSolarWatts is the solar power below which no charge time
	// is estimated.
	MinChargingSolarWatts = 50.0

	LowBatterySocPct = 20.0
	StaleAfter       = 2 * time.Hour

	historyWindowDays = 7
)

func percentOf(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	return common.Float(*num / *den * 100)
}

// positiveMean averages the known, positive values. Nil when none qualify.
func positiveMean(values []*float64) *float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if common.Positive(v) {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return common.Float(sum / float64(n))
}

type scoreInputs struct {
	snapshot models.Snapshot
	today    *models.LedgerDay
	history  []models.LedgerDay
	gps      *geo.Point
}

// collect reads the snapshot and ledger of a unit under the ingest lock so
// both come from the same poll.
func (f *Fleet) collect(unitID int64) (scoreInputs, bool) {
	f.ingestMu.RLock()
	defer f.ingestMu.RUnlock()

	snap, ok := f.snapshots.Get(unitID)
	if !ok {
		return scoreInputs{}, false
	}
	in := scoreInputs{snapshot: snap}

	today := f.today()
	for _, day := range f.Ledger.Entries(unitID) {
		switch {
		case day.Date == today:
			d := day
			in.today = &d
		case day.Date < today:
			in.history = append(in.history, day)
		}
	}
	if len(in.history) > historyWindowDays {
		in.history = in.history[len(in.history)-historyWindowDays:]
	}

	if fix, ok := f.gps.Get(unitID); ok {
		p := fix.Point
		in.gps = &p
	}
	return in, true
}

func (f *Fleet) buildReport(ctx context.Context, in scoreInputs, inDeficit bool) models.Report {
	snap := in.snapshot
	spec := f.Hardware.For(snap.UnitID)
	sun := f.peakSunHours(ctx, in.gps)

	rated := spec.RatedSolarWatts
	capacity := spec.BatteryCapacityWh

	var expected *float64
	if e := rated * sun.PeakSunHours * spec.SystemEfficiency; e > 0 {
		expected = common.Float(e)
	}

	var todayYield, todayConsumed *float64
	if in.today != nil {
		todayYield = in.today.YieldWh
		todayConsumed = in.today.ConsumedWh
	}
	if todayYield == nil && snap.YieldTodayKwh != nil {
		todayYield = common.Float(*snap.YieldTodayKwh * 1000)
	}

	var balance *float64
	if todayYield != nil && todayConsumed != nil {
		balance = common.Float(*todayYield - *todayConsumed)
	}

	solarScore := common.RoundPtr(percentOf(todayYield, expected), 1)

	var panelPct *float64
	if snap.SolarPowerW != nil && rated > 0 {
		panelPct = common.Float(*snap.SolarPowerW / rated * 100)
	}

	yields := make([]*float64, len(in.history))
	consumptions := make([]*float64, len(in.history))
	for i, day := range in.history {
		yields[i] = day.YieldWh
		consumptions[i] = day.ConsumedWh
	}
	avgYield := positiveMean(yields)
	avgConsumption := positiveMean(consumptions)
	if avgConsumption == nil && common.Positive(todayConsumed) {
		avgConsumption = todayConsumed
	}

	var stored *float64
	if snap.BatterySoc != nil {
		stored = common.Float(capacity * *snap.BatterySoc / 100)
	}

	var autonomy *float64
	if stored != nil && common.Positive(avgConsumption) {
		autonomy = common.Float(*stored / *avgConsumption)
	}

	var chargeTime *float64
	if stored != nil && snap.SolarPowerW != nil && *snap.SolarPowerW > MinChargingSolarWatts {
		remaining := capacity - *stored
		if remaining < 0 {
			remaining = 0
		}
		chargeTime = common.Float(remaining / *snap.SolarPowerW)
	}

	tempStatus := models.TempStatusFor(snap.TemperatureC)

	age := f.now().Sub(snap.CapturedTime())
	if age < 0 {
		age = 0
	}

	flags := []models.ReportFlag{}
	if snap.BatterySoc != nil && *snap.BatterySoc < LowBatterySocPct {
		flags = append(flags, models.FlagLowBattery)
	}
	if age > StaleAfter {
		flags = append(flags, models.FlagStale)
	}
	if inDeficit {
		flags = append(flags, models.FlagDeficit)
	}
	if tempStatus != nil && *tempStatus != models.BatteryTempNormal {
		flags = append(flags, models.FlagBatteryTemp)
	}

	report := models.Report{
		UnitID:      snap.UnitID,
		DisplayName: snap.DisplayName,
		Snapshot:    snap,
		Hardware: models.Hardware{
			RatedSolarWatts:   spec.RatedSolarWatts,
			SystemEfficiency:  spec.SystemEfficiency,
			BatteryCapacityWh: spec.BatteryCapacityWh,
			UsableWh:          spec.UsableWh,
		},

		PeakSunHours:    common.Round(sun.PeakSunHours, 2),
		PeakSunSource:   sun.Source,
		CloudCoverPct:   common.RoundPtr(sun.CloudCoverPct, 1),
		SunshineHours:   common.RoundPtr(sun.SunshineHours, 1),
		ExpectedYieldWh: common.RoundPtr(expected, 0),

		TodayYieldWh:         common.RoundPtr(todayYield, 0),
		TodayConsumedWh:      common.RoundPtr(todayConsumed, 0),
		TodayEnergyBalanceWh: common.RoundPtr(balance, 0),
		SolarScore:           solarScore,
		SolarScoreLabel:      models.LabelForScore(solarScore),
		PanelPerformancePct:  common.RoundPtr(panelPct, 1),

		Avg7dYieldWh:       common.RoundPtr(avgYield, 0),
		Avg7dConsumptionWh: common.RoundPtr(avgConsumption, 0),
		Avg7dScore:         common.RoundPtr(percentOf(avgYield, expected), 1),
		HistoryDays:        len(in.history),

		StoredWh:          common.RoundPtr(stored, 0),
		DaysOfAutonomy:    common.RoundPtr(autonomy, 1),
		ChargeTimeHours:   common.RoundPtr(chargeTime, 1),
		BatteryTempStatus: tempStatus,

		SnapshotAgeSeconds: int64(age / time.Second),
		Flags:              flags,
	}
	if status, ok := f.routers.Get(snap.UnitID); ok {
		report.Connectivity = &status
	}
	return report
}

// inDeficit runs the streak walk for a single unit.
func (f *Fleet) inDeficit(unitID int64) bool {
	return len(deficitStreak(f.Ledger.Entries(unitID), f.today())) >= minAlertStreak
}

func deficitUnits(alerts []models.DeficitAlert) map[int64]bool {
	units := make(map[int64]bool, len(alerts))
	for _, a := range alerts {
		units[a.UnitID] = true
	}
	return units
}

func (f *Fleet) score(ctx context.Context, unitID int64) *models.Report {
	in, ok := f.collect(unitID)
	if !ok {
		return nil
	}
	report := f.buildReport(ctx, in, f.inDeficit(unitID))
	return &report
}

// scoreAll pre-warms the weather of every distinct cell, then scores each
// unit that has a snapshot.
func (f *Fleet) scoreAll(ctx context.Context) []models.Report {
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryScore)

	ids := f.snapshots.UnitIDs()
	inputs := make([]scoreInputs, 0, len(ids))
	points := make([]geo.Point, 0, len(ids))
	for _, id := range ids {
		in, ok := f.collect(id)
		if !ok {
			continue
		}
		inputs = append(inputs, in)
		if in.gps != nil {
			points = append(points, *in.gps)
		}
	}

	f.prewarmWeather(ctx, points)
	deficit := deficitUnits(f.Alert.ComputeAlerts())

	reports := make([]models.Report, 0, len(inputs))
	for _, in := range inputs {
		reports = append(reports, f.buildReport(ctx, in, deficit[in.snapshot.UnitID]))
	}

	logger.Info("Scored fleet", zap.Int("units", len(reports)), zap.Int("gps_points", len(points)))
	return reports
}

type IScorerImpl struct {
	fleet *Fleet
}

func (is *IScorerImpl) Score(ctx context.Context, unitID int64) *models.Report {
	return is.fleet.score(ctx, unitID)
}

func (is *IScorerImpl) ScoreAll(ctx context.Context) []models.Report {
	return is.fleet.scoreAll(ctx)
}

func (f *Fleet) GetIScorer() IScorer {
	return &IScorerImpl{fleet: f}
}
