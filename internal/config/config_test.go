package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trajcost/internal/integrators"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Quadrature != "rk45" {
		t.Errorf("expected quadrature rk45, got %s", cfg.Quadrature)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown quadrature", func(c *Config) { c.Quadrature = "simpson" }},
		{"zero tolerance", func(c *Config) { c.AbsTol = 0 }},
		{"negative epsilon", func(c *Config) { c.Epsilon = -1 }},
		{"zero max steps", func(c *Config) { c.MaxSteps = 0 }},
		{"empty weights", func(c *Config) { c.Weights = nil }},
		{"wrap index out of range", func(c *Config) { c.WrapIndices = []int{9} }},
		{"inverted window", func(c *Config) { c.Scenario.T0 = 5; c.Scenario.TF = 1 }},
		{"too few samples", func(c *Config) { c.Scenario.Samples = 1 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestBuildQuadrature(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Quadrature = "rk45"
	q, err := cfg.BuildQuadrature()
	if err != nil {
		t.Fatalf("BuildQuadrature returned error: %v", err)
	}
	if _, ok := q.(*integrators.RK45); !ok {
		t.Errorf("expected *integrators.RK45, got %T", q)
	}

	cfg.Quadrature = "rk4"
	q, err = cfg.BuildQuadrature()
	if err != nil {
		t.Fatalf("BuildQuadrature returned error: %v", err)
	}
	if _, ok := q.(*integrators.RK4); !ok {
		t.Errorf("expected *integrators.RK4, got %T", q)
	}

	cfg.Quadrature = "trapezoid"
	q, err = cfg.BuildQuadrature()
	if err != nil {
		t.Fatalf("BuildQuadrature returned error: %v", err)
	}
	if _, ok := q.(*integrators.Trapezoid); !ok {
		t.Errorf("expected *integrators.Trapezoid, got %T", q)
	}
}

func TestBuildWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = []float64{10, 1, 5}

	p := cfg.BuildWeights()
	if p.SymmetricDim() != 3 {
		t.Fatalf("expected 3x3 matrix, got %d", p.SymmetricDim())
	}
	if p.At(0, 0) != 10 || p.At(1, 1) != 1 || p.At(2, 2) != 5 {
		t.Error("diagonal weights not preserved")
	}
	if p.At(0, 1) != 0 {
		t.Error("off-diagonal entries should be zero")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.yaml")
	data := []byte(`
quadrature: trapezoid
fixed_dt: 0.005
weights: [10, 1]
wrap_indices: [0]
scenario:
  name: pendulum
  t0: 0
  tf: 5
  samples: 100
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Quadrature != "trapezoid" {
		t.Errorf("expected quadrature trapezoid, got %s", cfg.Quadrature)
	}
	if cfg.FixedDt != 0.005 {
		t.Errorf("expected fixed_dt 0.005, got %v", cfg.FixedDt)
	}
	// unset keys keep defaults
	if cfg.AbsTol != DefaultAbsTol {
		t.Errorf("expected default abs_tol, got %v", cfg.AbsTol)
	}
	if cfg.Scenario.TF != 5 {
		t.Errorf("expected tf 5, got %v", cfg.Scenario.TF)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.yaml")
	if err := os.WriteFile(path, []byte("quadrature: simpson\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.WrapIndices) != 1 || cfg.WrapIndices[0] != 0 {
		t.Errorf("expected wrap index 0, got %v", cfg.WrapIndices)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}
