package fleet

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

// Diagnostic codes read from the solar portal.
const (
	codeBatterySoc     = "bs"
	codeVoltage        = "bv"
	codeCurrent        = "bc"
	codeTemperature    = "bT"
	codeSolarPower     = "ScW"
	codeYieldToday     = "YT"
	codeYieldYesterday = "YY"
	codeConsumedAh     = "CE"
	codeChargeState    = "ScS"
	codeLatitude       = "lt"
	codeLongitude      = "lg"
)

// batteryCodes are reported by several devices on a site. The battery
// monitor wins over chargers and inverters.
var batteryCodes = map[string]bool{
	codeBatterySoc:  true,
	codeVoltage:     true,
	codeCurrent:     true,
	codeTemperature: true,
	codeConsumedAh:  true,
}

var chargeStates = map[int]string{
	0:   "Off",
	2:   "Fault",
	3:   "Bulk",
	4:   "Absorption",
	5:   "Float",
	6:   "Storage",
	7:   "Equalize",
	11:  "Power supply",
	245: "Starting up",
	252: "External control",
}

type reading struct {
	value       float64
	raw         any
	fromBattery bool
}

// numericValue accepts numbers and numeric strings. Empty strings, null and
// anything unparseable are absent.
func numericValue(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isBatteryDevice(device string) bool {
	return strings.Contains(strings.ToLower(device), "battery")
}

func chargeStateLabel(raw any) *string {
	if v, ok := numericValue(raw); ok {
		label, known := chargeStates[int(v)]
		if !known {
			label = fmt.Sprintf("State %d", int(v))
		}
		return &label
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		label := strings.TrimSpace(s)
		return &label
	}
	return nil
}

// ExtractSnapshot turns the diagnostics of one site into a snapshot, plus the
// site's GPS fix when it reports a valid one.
func ExtractSnapshot(
	unitID int64,
	displayName string,
	records []clients.DiagnosticRecord,
	capturedAt time.Time,
) (models.Snapshot, *geo.Point) {
	readings := make(map[string]reading)

	for _, record := range records {
		value, ok := numericValue(record.RawValue)
		if !ok && record.Code != codeChargeState {
			continue
		}

		fromBattery := isBatteryDevice(record.Device)
		if current, seen := readings[record.Code]; seen {
			if !batteryCodes[record.Code] || current.fromBattery || !fromBattery {
				continue
			}
		}
		readings[record.Code] = reading{value: value, raw: record.RawValue, fromBattery: fromBattery}
	}

	get := func(code string) *float64 {
		r, ok := readings[code]
		if !ok {
			return nil
		}
		v := r.value
		return &v
	}

	snap := models.Snapshot{
		UnitID:            unitID,
		DisplayName:       displayName,
		BatterySoc:        get(codeBatterySoc),
		Voltage:           get(codeVoltage),
		Current:           get(codeCurrent),
		TemperatureC:      get(codeTemperature),
		SolarPowerW:       get(codeSolarPower),
		YieldTodayKwh:     get(codeYieldToday),
		YieldYesterdayKwh: get(codeYieldYesterday),
		ConsumedAh:        get(codeConsumedAh),
		CapturedAt:        capturedAt.UnixMilli(),
	}
	if r, ok := readings[codeChargeState]; ok {
		snap.ChargeState = chargeStateLabel(r.raw)
	}

	var fix *geo.Point
	lat, lon := get(codeLatitude), get(codeLongitude)
	if lat != nil && lon != nil {
		p := geo.Point{Lat: *lat, Lon: *lon}
		if p.Valid() {
			fix = &p
		}
	}
	return snap, fix
}
