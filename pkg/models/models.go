package models

import "time"

// RouterBinding links a cellular router to the unit it rides on. RouterID is
// assigned upstream, never by the database.
type RouterBinding struct {
	RouterID   int64     `gorm:"primaryKey;autoIncrement:false" json:"routerId"`
	UnitID     int64     `gorm:"index" json:"unitId"`
	RouterName string    `json:"routerName"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DailyEnergy is the persisted mirror of one ledger day. Date is the calendar
// date in the fleet timezone, formatted 2006-01-02.
type DailyEnergy struct {
	UnitID      int64     `gorm:"primaryKey;autoIncrement:false" json:"unitId"`
	Date        string    `gorm:"primaryKey;type:varchar(10)" json:"date"`
	YieldWh     *float64  `json:"yieldWh"`
	ConsumedWh  *float64  `json:"consumedWh"`
	DisplayName string    `json:"displayName"`
	UpdatedAt   time.Time `json:"updatedAt"`

	ConsumedSource ConsumptionSource `gorm:"type:varchar(10)" json:"consumedSource,omitempty"`
}

func (DailyEnergy) TableName() string { return "daily_energy" }

type UnitGPS struct {
	UnitID     int64     `gorm:"primaryKey;autoIncrement:false" json:"unitId"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	Source     string    `gorm:"type:varchar(10)" json:"source"`
	CapturedAt time.Time `json:"capturedAt"`
}

func (UnitGPS) TableName() string { return "unit_gps" }

// Location is a named physical site produced by clustering.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex" json:"name"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UnitLocation assigns a unit to a location. ManualOverride marks operator
// pinned assignments, which automatic clustering leaves alone.
type UnitLocation struct {
	UnitID         int64     `gorm:"primaryKey;autoIncrement:false" json:"unitId"`
	LocationID     uint      `gorm:"index" json:"locationId"`
	ManualOverride bool      `json:"manualOverride"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
