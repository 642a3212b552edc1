package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// HardwareSpec is the static electrical description of a trailer.
type HardwareSpec struct {
	RatedSolarWatts   float64 `yaml:"ratedSolarWatts" json:"ratedSolarWatts"`
	SystemEfficiency  float64 `yaml:"systemEfficiency" json:"systemEfficiency"`
	BatteryCapacityWh float64 `yaml:"batteryCapacityWh" json:"batteryCapacityWh"`
	UsableWh          float64 `yaml:"usableWh" json:"usableWh"`
}

type HardwareOverride struct {
	UnitID       int64 `yaml:"unitId"`
	HardwareSpec `yaml:",inline"`
}

type Hardware struct {
	Default   HardwareSpec       `yaml:"default"`
	Overrides []HardwareOverride `yaml:"overrides"`

	byUnit map[int64]HardwareSpec
}

var DefaultHardwareSpec = HardwareSpec{
	RatedSolarWatts:   1200,
	SystemEfficiency:  0.8,
	BatteryCapacityWh: 10240,
	UsableWh:          8192,
}

func NewHardware(def HardwareSpec, overrides ...HardwareOverride) *Hardware {
	h := &Hardware{Default: def, Overrides: overrides}
	h.index()
	return h
}

// LoadHardware reads the hardware YAML. An empty path yields the built-in
// defaults. Zero fields in the file fall back to the default spec.
func LoadHardware(filename string) (*Hardware, error) {
	if filename == "" {
		return NewHardware(DefaultHardwareSpec), nil
	}

	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading hardware spec: %w", err)
	}

	h := &Hardware{}
	if err := yaml.Unmarshal(buf, h); err != nil {
		return nil, fmt.Errorf("parsing hardware yaml: %w", err)
	}

	h.Default = h.Default.withFallback(DefaultHardwareSpec)
	for i := range h.Overrides {
		h.Overrides[i].HardwareSpec = h.Overrides[i].HardwareSpec.withFallback(h.Default)
	}
	if err := h.Default.validate(); err != nil {
		return nil, fmt.Errorf("default hardware spec: %w", err)
	}
	h.index()
	return h, nil
}

func (h *Hardware) index() {
	h.byUnit = make(map[int64]HardwareSpec, len(h.Overrides))
	for _, o := range h.Overrides {
		h.byUnit[o.UnitID] = o.HardwareSpec
	}
}

// For returns the spec of a unit, or the default spec.
func (h *Hardware) For(unitID int64) HardwareSpec {
	if h == nil {
		return DefaultHardwareSpec
	}
	if spec, ok := h.byUnit[unitID]; ok {
		return spec
	}
	return h.Default
}

func (s HardwareSpec) withFallback(def HardwareSpec) HardwareSpec {
	if s.RatedSolarWatts <= 0 {
		s.RatedSolarWatts = def.RatedSolarWatts
	}
	if s.SystemEfficiency <= 0 {
		s.SystemEfficiency = def.SystemEfficiency
	}
	if s.BatteryCapacityWh <= 0 {
		s.BatteryCapacityWh = def.BatteryCapacityWh
	}
	if s.UsableWh <= 0 {
		s.UsableWh = def.UsableWh
	}
	return s
}

func (s HardwareSpec) validate() error {
	if s.SystemEfficiency > 1 {
		return fmt.Errorf("systemEfficiency %.2f must be within (0, 1]", s.SystemEfficiency)
	}
	if s.UsableWh > s.BatteryCapacityWh {
		return fmt.Errorf("usableWh %.0f exceeds batteryCapacityWh %.0f", s.UsableWh, s.BatteryCapacityWh)
	}
	return nil
}
