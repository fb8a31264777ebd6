package config

import (
	"maps"
	"slices"
)

// Presets are named variations on DefaultConfig.
var Presets = map[string]*Config{
	"resonant": DefaultConfig(),
	"detuned": with(func(c *Config) {
		c.Name = "detuned"
		c.Frequency = 1.05
	}),
	"lossless": with(func(c *Config) {
		c.Name = "lossless"
		c.Gamma1 = 0
	}),
	"dephasing": with(func(c *Config) {
		c.Name = "dephasing"
		c.Gamma2 = 0.05
	}),
	"thermal": with(func(c *Config) {
		c.Name = "thermal"
		c.NTh = 0.5
	}),
}

func with(modify func(*Config)) *Config {
	cfg := DefaultConfig()
	modify(cfg)
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

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
