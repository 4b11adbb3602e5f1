package traj

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestState_IsValid(t *testing.T) {
	if !(State{1, 2, 3}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(-1), 0}).IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestState_Norm(t *testing.T) {
	got := (State{3, 4}).Norm()
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("norm: got %v, want 5", got)
	}
}

func TestState_Sub(t *testing.T) {
	got := (State{5, 7}).Sub(State{2, 3})
	if got[0] != 3 || got[1] != 4 {
		t.Errorf("sub: got %v, want [3 4]", got)
	}
}

func TestIdentityAdapter(t *testing.T) {
	a := NewIdentityAdapter(2)
	out := mat.NewVecDense(2, nil)

	if err := a.Adapt(State{1.5, -2.5}, out); err != nil {
		t.Fatalf("Adapt returned error: %v", err)
	}
	if out.AtVec(0) != 1.5 || out.AtVec(1) != -2.5 {
		t.Errorf("adapted vector: got [%v %v]", out.AtVec(0), out.AtVec(1))
	}

	err := a.Adapt(State{1, 2, 3}, out)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
