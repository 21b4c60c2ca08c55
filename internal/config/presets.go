package config

// Presets cover the classic (alpha, beta) regimes of the 2D CGLe.
var Presets = map[string]*Config{
	"defect": {
		N: 64, Alpha: 0.0, Beta: 1.5, Dt: 0.05, Duration: 50.0,
		Dx: 1.0, InitAmp: 0.05, Integrator: "euler",
	},
	"phase": {
		N: 64, Alpha: 2.0, Beta: -1.0, Dt: 0.02, Duration: 50.0,
		Dx: 1.0, InitAmp: 0.05, Integrator: "euler",
	},
	"frozen": {
		N: 64, Alpha: 0.0, Beta: -1.5, Dt: 0.05, Duration: 100.0,
		Dx: 1.0, InitAmp: 0.05, Integrator: "euler",
	},
	"spirals": {
		N: 128, Alpha: 0.5, Beta: -1.5, Dt: 0.02, Duration: 100.0,
		Dx: 1.0, InitAmp: 0.05, Integrator: "euler",
	},
	"smooth": {
		N: 64, Alpha: 0.0, Beta: 1.5, Dt: 0.01, Duration: 50.0,
		Dx: 1.0, InitAmp: 0.05, Integrator: "rk4",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
