package geo

import (
	"math"
	"time"
)

const (
	solarConstantMJPerMinute = 0.0820
	// clearSkyTransmittance is the FAO-56 short form Rso = 0.75 Ra, without the
	// elevation term.
	clearSkyTransmittance = 0.75
	// MJPerKWh converts daily radiation in MJ/m2 to kWh/m2, which equals peak
	// sun hours.
	MJPerKWh = 3.6
)

// ExtraterrestrialRadiation returns the daily top-of-atmosphere radiation in
// MJ/m2 for a latitude and day of year, using the standard declination and
// sunset hour angle geometry.
func ExtraterrestrialRadiation(lat float64, dayOfYear int) float64 {
	phi := radians(lat)
	j := float64(dayOfYear)

	dr := 1 + 0.033*math.Cos(2*math.Pi*j/365)
	declination := 0.409 * math.Sin(2*math.Pi*j/365-1.39)

	x := -math.Tan(phi) * math.Tan(declination)
	// polar day and polar night
	if x > 1 {
		x = 1
	}
	if x < -1 {
		x = -1
	}
	ws := math.Acos(x)

	ra := (24 * 60 / math.Pi) * solarConstantMJPerMinute * dr *
		(ws*math.Sin(phi)*math.Sin(declination) + math.Cos(phi)*math.Cos(declination)*math.Sin(ws))
	if ra < 0 {
		return 0
	}
	return ra
}

// ClearSkyPeakSunHours estimates peak sun hours for a cloudless day at the
// given latitude.
func ClearSkyPeakSunHours(lat float64, day time.Time) float64 {
	ra := ExtraterrestrialRadiation(lat, day.YearDay())
	return clearSkyTransmittance * ra / MJPerKWh
}
