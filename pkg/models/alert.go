package models

type Severity string

const (
	SeverityCaution  Severity = "caution"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SeverityForStreak classifies a deficit streak. Streaks shorter than two
// days are not alerts and return an empty severity.
func SeverityForStreak(days int) Severity {
	switch {
	case days >= 5:
		return SeverityCritical
	case days >= 3:
		return SeverityWarning
	case days == 2:
		return SeverityCaution
	default:
		return ""
	}
}

type DeficitDay struct {
	Date       string  `json:"date"`
	YieldWh    float64 `json:"yieldWh"`
	ConsumedWh float64 `json:"consumedWh"`
	DeficitWh  float64 `json:"deficitWh"`
}

type DeficitAlert struct {
	UnitID      int64        `json:"unitId"`
	DisplayName string       `json:"displayName"`
	StreakDays  int          `json:"streakDays"`
	Severity    Severity     `json:"severity"`
	DeficitDays []DeficitDay `json:"deficitDays"`
}
