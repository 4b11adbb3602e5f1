package interp

import (
	"math"
	"testing"

	"github.com/san-kum/trajcost/internal/traj"
)

func TestNewLinear_Validation(t *testing.T) {
	if _, err := NewLinear(nil, nil); err == nil {
		t.Error("expected error for empty samples")
	}

	_, err := NewLinear([]float64{0, 1}, []traj.State{{1, 2}})
	if err == nil {
		t.Error("expected error for mismatched sample counts")
	}

	_, err = NewLinear([]float64{0, 1}, []traj.State{{1, 2}, {1}})
	if err == nil {
		t.Error("expected error for mixed state dimensions")
	}

	_, err = NewLinear([]float64{0, 1, 1}, []traj.State{{1}, {2}, {3}})
	if err == nil {
		t.Error("expected error for non-increasing times")
	}
}

func TestLinear_Interpolates(t *testing.T) {
	l, err := NewLinear(
		[]float64{0, 1, 2},
		[]traj.State{{0, 10}, {2, 20}, {6, 0}},
	)
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}

	if l.Begin() != 0 || l.End() != 2 {
		t.Errorf("window: got [%v, %v], want [0, 2]", l.Begin(), l.End())
	}

	tests := []struct {
		t    float64
		want traj.State
	}{
		{0, traj.State{0, 10}},
		{0.5, traj.State{1, 15}},
		{1, traj.State{2, 20}},
		{1.5, traj.State{4, 10}},
		{2, traj.State{6, 0}},
		{-1, traj.State{0, 10}}, // clamps below
		{3, traj.State{6, 0}},   // clamps above
	}

	out := make(traj.State, 2)
	for _, tt := range tests {
		if err := l.Evaluate(tt.t, out); err != nil {
			t.Fatalf("Evaluate(%v) returned error: %v", tt.t, err)
		}
		for j := range tt.want {
			if math.Abs(out[j]-tt.want[j]) > 1e-12 {
				t.Errorf("Evaluate(%v)[%d]: got %v, want %v", tt.t, j, out[j], tt.want[j])
			}
		}
	}
}

func TestLinear_DimensionCheck(t *testing.T) {
	l, err := NewLinear([]float64{0, 1}, []traj.State{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}

	out := make(traj.State, 3)
	if err := l.Evaluate(0.5, out); err == nil {
		t.Error("expected error for wrong output dimension")
	}
}

func TestFromFunc(t *testing.T) {
	l, err := FromFunc(func(tt float64) traj.State {
		return traj.State{math.Sin(tt)}
	}, 0, math.Pi, 1001)
	if err != nil {
		t.Fatalf("FromFunc returned error: %v", err)
	}

	out := make(traj.State, 1)
	if err := l.Evaluate(math.Pi/2, out); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if math.Abs(out[0]-1.0) > 1e-5 {
		t.Errorf("sampled sin at pi/2: got %v, want 1", out[0])
	}
}

func TestLinear_SingleSample(t *testing.T) {
	l, err := NewLinear([]float64{1}, []traj.State{{7}})
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}
	if l.Begin() != 1 || l.End() != 1 {
		t.Errorf("degenerate window: got [%v, %v], want [1, 1]", l.Begin(), l.End())
	}

	out := make(traj.State, 1)
	if err := l.Evaluate(1, out); err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if out[0] != 7 {
		t.Errorf("single-sample state: got %v, want 7", out[0])
	}
}
