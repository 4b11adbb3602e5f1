package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/trajcost/internal/cost"
	"github.com/san-kum/trajcost/internal/integrators"
)

const (
	DefaultAbsTol   = 1e-5
	DefaultRelTol   = 1e-5
	DefaultInitStep = 0.01
	DefaultFixedDt  = 0.01
	DefaultEpsilon  = 1e-7
	DefaultMaxSteps = 100000
	DefaultSamples  = 200
)

type Config struct {
	Quadrature  string         `yaml:"quadrature"`
	AbsTol      float64        `yaml:"abs_tol"`
	RelTol      float64        `yaml:"rel_tol"`
	InitStep    float64        `yaml:"init_step"`
	MaxSteps    int            `yaml:"max_steps"`
	FixedDt     float64        `yaml:"fixed_dt"`
	Epsilon     float64        `yaml:"epsilon"`
	Weights     []float64      `yaml:"weights"`
	WrapIndices []int          `yaml:"wrap_indices"`
	Scenario    ScenarioConfig `yaml:"scenario"`
}

type ScenarioConfig struct {
	Name    string  `yaml:"name"`
	T0      float64 `yaml:"t0"`
	TF      float64 `yaml:"tf"`
	Samples int     `yaml:"samples"`
}

func DefaultConfig() *Config {
	return &Config{
		Quadrature: "rk45",
		AbsTol:     DefaultAbsTol,
		RelTol:     DefaultRelTol,
		InitStep:   DefaultInitStep,
		MaxSteps:   DefaultMaxSteps,
		FixedDt:    DefaultFixedDt,
		Epsilon:    DefaultEpsilon,
		Weights:    []float64{1, 1},
		Scenario: ScenarioConfig{
			Name:    "pendulum",
			T0:      0.0,
			TF:      10.0,
			Samples: DefaultSamples,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Quadrature {
	case "rk45", "rk4", "trapezoid":
	default:
		return fmt.Errorf("config: unknown quadrature: %s", c.Quadrature)
	}
	if c.AbsTol <= 0 || c.RelTol <= 0 {
		return fmt.Errorf("config: tolerances must be positive")
	}
	if c.InitStep <= 0 || c.FixedDt <= 0 {
		return fmt.Errorf("config: step sizes must be positive")
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("config: max_steps must be positive")
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("config: epsilon must be non-negative")
	}
	if len(c.Weights) == 0 {
		return fmt.Errorf("config: weights must not be empty")
	}
	n := len(c.Weights)
	for _, i := range c.WrapIndices {
		if i < 0 || i >= n {
			return fmt.Errorf("config: wrap index %d outside [0, %d)", i, n)
		}
	}
	if c.Scenario.TF < c.Scenario.T0 {
		return fmt.Errorf("config: scenario window [%g, %g] is inverted", c.Scenario.T0, c.Scenario.TF)
	}
	if c.Scenario.Samples < 2 {
		return fmt.Errorf("config: scenario needs at least 2 samples")
	}
	return nil
}

// BuildQuadrature instantiates the configured integration strategy.
func (c *Config) BuildQuadrature() (integrators.Quadrature, error) {
	switch c.Quadrature {
	case "rk45":
		return integrators.NewRK45(c.AbsTol, c.RelTol, c.InitStep, c.MaxSteps), nil
	case "rk4":
		return integrators.NewRK4(c.FixedDt), nil
	case "trapezoid":
		return integrators.NewTrapezoid(c.FixedDt), nil
	default:
		return nil, fmt.Errorf("config: unknown quadrature: %s", c.Quadrature)
	}
}

// BuildWeights assembles the diagonal terminal weight matrix P.
func (c *Config) BuildWeights() *mat.SymDense {
	n := len(c.Weights)
	p := mat.NewSymDense(n, nil)
	for i, w := range c.Weights {
		p.SetSym(i, i, w)
	}
	return p
}

// EngineOptions translates the config into engine options.
func (c *Config) EngineOptions() (cost.Options, error) {
	quad, err := c.BuildQuadrature()
	if err != nil {
		return cost.Options{}, err
	}
	return cost.Options{
		Weights:     c.BuildWeights(),
		WrapIndices: append([]int(nil), c.WrapIndices...),
		Quadrature:  quad,
		Epsilon:     c.Epsilon,
	}, nil
}
