package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"gentle": {
		Integrator: DefaultIntegrator, Angle1Deg: 15, Angle2Deg: 15,
		Mass1: 1, Mass2: 1, Length1: 1, Length2: 1, Gravity: 9.83,
		Horizon: 20, Dt: 0.02, Steps: 1000,
	},
	"opposed": {
		Integrator: DefaultIntegrator, Angle1Deg: 30, Angle2Deg: -30,
		Mass1: 1, Mass2: 1, Length1: 1, Length2: 1, Gravity: 9.83,
		Horizon: 20, Dt: 0.02, Steps: 1000,
	},
	"chaos": {
		Integrator: DefaultIntegrator, Angle1Deg: 170, Angle2Deg: 175,
		Mass1: 1, Mass2: 1, Length1: 1, Length2: 1, Gravity: 9.83,
		Horizon: 30, Dt: 0.005, Steps: 6000,
	},
	"asymmetric": {
		Integrator: DefaultIntegrator, Angle1Deg: 23, Angle2Deg: -11,
		Mass1: 2, Mass2: 0.5, Length1: 1.5, Length2: 0.7, Gravity: 9.83,
		Horizon: 20, Dt: 0.01, Steps: 2000,
	},
	"heavy-tip": {
		Integrator: DefaultIntegrator, Angle1Deg: 60, Angle2Deg: 0,
		Mass1: 1, Mass2: 5, Length1: 1, Length2: 1, Gravity: 9.83,
		Horizon: 20, Dt: 0.01, Steps: 2000,
	},
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
