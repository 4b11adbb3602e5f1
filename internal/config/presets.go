package config

var Presets = map[string]*Config{
	"pendulum": {
		Quadrature: "rk45", AbsTol: DefaultAbsTol, RelTol: DefaultRelTol,
		InitStep: DefaultInitStep, MaxSteps: DefaultMaxSteps,
		FixedDt: DefaultFixedDt, Epsilon: DefaultEpsilon,
		Weights:     []float64{10, 1},
		WrapIndices: []int{0},
		Scenario:    ScenarioConfig{Name: "pendulum", T0: 0, TF: 10, Samples: 400},
	},
	"cartpole": {
		Quadrature: "rk45", AbsTol: DefaultAbsTol, RelTol: DefaultRelTol,
		InitStep: DefaultInitStep, MaxSteps: DefaultMaxSteps,
		FixedDt: DefaultFixedDt, Epsilon: DefaultEpsilon,
		Weights:     []float64{1, 1, 25, 1},
		WrapIndices: []int{2},
		Scenario:    ScenarioConfig{Name: "cartpole", T0: 0, TF: 10, Samples: 400},
	},
	"circle": {
		Quadrature: "trapezoid", AbsTol: DefaultAbsTol, RelTol: DefaultRelTol,
		InitStep: DefaultInitStep, MaxSteps: DefaultMaxSteps,
		FixedDt: 0.005, Epsilon: DefaultEpsilon,
		Weights:  []float64{1, 1},
		Scenario: ScenarioConfig{Name: "circle", T0: 0, TF: 6.283185307179586, Samples: 600},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
