package integrators

import (
	"math"
	"testing"
)

func TestRK4_ConstantRate(t *testing.T) {
	quad := NewRK4(0.01)
	f := funcIntegrand{t0: 0, tf: 1, f: func(t float64) float64 { return 2.0 }}

	got, steps, err := quad.Integrate(f, 0, 1)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if math.Abs(got-2.0) > 1e-12 {
		t.Errorf("constant rate integral: got %v, want 2.0", got)
	}
	if steps != 100 {
		t.Errorf("expected 100 fixed steps, got %d", steps)
	}
}

func TestRK4_PolynomialExact(t *testing.T) {
	// Simpson weights integrate cubics exactly
	quad := NewRK4(0.1)
	f := funcIntegrand{t0: 0, tf: 2, f: func(t float64) float64 { return t * t * t }}

	got, _, err := quad.Integrate(f, 0, 2)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if math.Abs(got-4.0) > 1e-10 {
		t.Errorf("cubic integral: got %v, want 4.0", got)
	}
}

func TestRK4_RaggedWindow(t *testing.T) {
	// span not divisible by dt: the step shrinks to land on tf exactly
	quad := NewRK4(0.03)
	f := funcIntegrand{t0: 0, tf: 1, f: func(t float64) float64 { return 1.0 }}

	got, steps, err := quad.Integrate(f, 0, 1)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("unit integral: got %v, want 1.0", got)
	}
	if steps != 34 {
		t.Errorf("expected ceil(1/0.03)=34 steps, got %d", steps)
	}
}
