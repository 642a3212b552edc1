package models

type ScoreLabel string

const (
	ScoreExcellent ScoreLabel = "Excellent"
	ScoreGood      ScoreLabel = "Good"
	ScoreFair      ScoreLabel = "Fair"
	ScorePoor      ScoreLabel = "Poor"
)

func LabelForScore(score *float64) *ScoreLabel {
	if score == nil {
		return nil
	}
	var label ScoreLabel
	switch {
	case *score >= 90:
		label = ScoreExcellent
	case *score >= 70:
		label = ScoreGood
	case *score >= 50:
		label = ScoreFair
	default:
		label = ScorePoor
	}
	return &label
}

type BatteryTempStatus string

const (
	BatteryTempNormal   BatteryTempStatus = "normal"
	BatteryTempWarning  BatteryTempStatus = "warning"
	BatteryTempCritical BatteryTempStatus = "critical"
	BatteryTempCold     BatteryTempStatus = "cold"
)

// TempStatusFor classifies a battery temperature in degrees Celsius.
func TempStatusFor(tempC *float64) *BatteryTempStatus {
	if tempC == nil {
		return nil
	}
	status := BatteryTempNormal
	switch {
	case *tempC > 45:
		status = BatteryTempCritical
	case *tempC > 35:
		status = BatteryTempWarning
	case *tempC < 5:
		status = BatteryTempCold
	}
	return &status
}

type SunSource string

const (
	SunSourceWeather  SunSource = "weather"
	SunSourceClearSky SunSource = "clear_sky"
	SunSourceDefault  SunSource = "default"
)

type ReportFlag string

const (
	FlagLowBattery  ReportFlag = "low_battery"
	FlagStale       ReportFlag = "stale"
	FlagDeficit     ReportFlag = "deficit"
	FlagBatteryTemp ReportFlag = "battery_temp"
)

type Hardware struct {
	RatedSolarWatts   float64 `json:"ratedSolarWatts"`
	SystemEfficiency  float64 `json:"systemEfficiency"`
	BatteryCapacityWh float64 `json:"batteryCapacityWh"`
	UsableWh          float64 `json:"usableWh"`
}

// Report is the per-unit health and performance view. Every number is nil
// when one of its inputs is unavailable.
type Report struct {
	UnitID      int64    `json:"unitId"`
	DisplayName string   `json:"displayName"`
	Snapshot    Snapshot `json:"snapshot"`
	Hardware    Hardware `json:"hardware"`

	PeakSunHours    float64   `json:"peakSunHours"`
	PeakSunSource   SunSource `json:"peakSunSource"`
	CloudCoverPct   *float64  `json:"cloudCoverPct"`
	SunshineHours   *float64  `json:"sunshineHours"`
	ExpectedYieldWh *float64  `json:"expectedDailyYieldWh"`

	TodayYieldWh         *float64    `json:"todayYieldWh"`
	TodayConsumedWh      *float64    `json:"todayConsumedWh"`
	TodayEnergyBalanceWh *float64    `json:"todayEnergyBalanceWh"`
	SolarScore           *float64    `json:"solarScore"`
	SolarScoreLabel      *ScoreLabel `json:"solarScoreLabel"`
	PanelPerformancePct  *float64    `json:"panelPerformancePct"`

	Avg7dYieldWh       *float64 `json:"avg7dYieldWh"`
	Avg7dConsumptionWh *float64 `json:"avg7dConsumptionWh"`
	Avg7dScore         *float64 `json:"avg7dScore"`
	HistoryDays        int      `json:"historyDays"`

	StoredWh          *float64           `json:"storedWh"`
	DaysOfAutonomy    *float64           `json:"daysOfAutonomy"`
	ChargeTimeHours   *float64           `json:"chargeTimeHours"`
	BatteryTempStatus *BatteryTempStatus `json:"batteryTempStatus"`

	Connectivity       *RouterStatus `json:"connectivity"`
	SnapshotAgeSeconds int64         `json:"snapshotAgeSeconds"`
	Flags              []ReportFlag  `json:"flags"`
}
