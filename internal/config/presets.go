package config

import "sort"

var Presets = map[string]*Config{
	"dipole": DefaultConfig(),
	"wide": withCharges(
		ChargeConfig{X: 5, Q: 1e-9},
		ChargeConfig{X: -5, Q: -1e-9},
	),
	"tight": withCharges(
		ChargeConfig{X: 1, Q: 1e-9},
		ChargeConfig{X: -1, Q: -1e-9},
	),
	"like": withCharges(
		ChargeConfig{X: 3, Q: 1e-9},
		ChargeConfig{X: -3, Q: 1e-9},
	),
	"unequal": withCharges(
		ChargeConfig{X: 3, Q: 2e-9},
		ChargeConfig{X: -3, Q: -1e-9},
	),
	"quadrupole": withCharges(
		ChargeConfig{X: 3, Y: 3, Q: 1e-9},
		ChargeConfig{X: -3, Y: 3, Q: -1e-9},
		ChargeConfig{X: -3, Y: -3, Q: 1e-9},
		ChargeConfig{X: 3, Y: -3, Q: -1e-9},
	),
}

func withCharges(charges ...ChargeConfig) *Config {
	cfg := DefaultConfig()
	cfg.Charges = charges
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
