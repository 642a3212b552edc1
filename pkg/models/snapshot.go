package models

import "time"

type UnitSource string

const (
	UnitSourceSolar    UnitSource = "solar"
	UnitSourceCellular UnitSource = "cellular"
)

// Unit is one trailer. Positive ids come from the solar fleet, negative ids
// are synthesized for routers with no solar counterpart.
type Unit struct {
	ID     int64      `json:"unitId"`
	Name   string     `json:"name"`
	Source UnitSource `json:"source"`
}

// Snapshot is the latest live reading of a unit. Every measurement is
// nullable, a nil value means the upstream did not report it.
type Snapshot struct {
	UnitID            int64    `json:"unitId"`
	DisplayName       string   `json:"displayName"`
	BatterySoc        *float64 `json:"batterySoc"`
	Voltage           *float64 `json:"voltage"`
	Current           *float64 `json:"current"`
	TemperatureC      *float64 `json:"temperatureC"`
	SolarPowerW       *float64 `json:"solarPowerW"`
	YieldTodayKwh     *float64 `json:"yieldTodayKwh"`
	YieldYesterdayKwh *float64 `json:"yieldYesterdayKwh"`
	ConsumedAh        *float64 `json:"consumedAh"`
	ChargeState       *string  `json:"chargeState"`
	CapturedAt        int64    `json:"capturedAt"`
}

func (s Snapshot) CapturedTime() time.Time {
	return time.UnixMilli(s.CapturedAt)
}

type GPSSource string

const (
	GPSSourceRouter GPSSource = "router"
	GPSSourceSolar  GPSSource = "solar"
)

// RouterStatus is the connectivity side of a unit as last seen by the router
// fleet.
type RouterStatus struct {
	RouterID  int64     `json:"routerId"`
	UnitID    int64     `json:"unitId"`
	Name      string    `json:"name"`
	Online    bool      `json:"online"`
	SignalDbm *float64  `json:"signalDbm"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Resolution is the outcome of mapping a router onto a unit.
type Resolution struct {
	UnitID      int64  `json:"unitId"`
	DisplayName string `json:"displayName"`
}

// ConsumptionSource tells how a day's consumed Wh was obtained.
type ConsumptionSource string

const (
	// ConsumptionMeter is amp hours times voltage from the battery monitor.
	ConsumptionMeter ConsumptionSource = "meter"
	// ConsumptionEstimate is derived from yield and the SoC drop.
	ConsumptionEstimate ConsumptionSource = "estimate"
)

// LedgerDay is one in-memory ledger entry.
type LedgerDay struct {
	Date           string            `json:"date"`
	YieldWh        *float64          `json:"yieldWh"`
	ConsumedWh     *float64          `json:"consumedWh"`
	ConsumedSource ConsumptionSource `json:"consumedSource,omitempty"`
	DisplayName    string            `json:"displayName"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
