package traj

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Interpolator reconstructs the continuous-time state trajectory.
// Evaluate must be cheap and side-effect-free; the window [Begin, End]
// may change between calls as the underlying trajectory is mutated.
type Interpolator interface {
	Begin() float64
	End() float64
	Evaluate(t float64, out State) error
}

// DesiredTrajectory produces the reference state at a given time. It must
// be defined at least over the interpolator's window.
type DesiredTrajectory interface {
	DesiredAt(t float64, out State) error
}

// DesiredFunc adapts a plain function to a DesiredTrajectory.
type DesiredFunc func(t float64, out State) error

func (f DesiredFunc) DesiredAt(t float64, out State) error { return f(t, out) }

// Integrand is the running-cost rate l(x(t)) seen by a quadrature
// strategy. Begin/End mirror the interpolator window.
type Integrand interface {
	Begin() float64
	End() float64
	Rate(t float64) (float64, error)
}

// Adapter projects a raw (possibly variable-layout) state into the fixed
// N-dimensional vector used by the terminal quadratic form.
type Adapter interface {
	Adapt(raw State, out *mat.VecDense) error
}

// IdentityAdapter copies the state through unchanged, enforcing the
// fixed dimension.
type IdentityAdapter struct {
	n int
}

func NewIdentityAdapter(n int) *IdentityAdapter {
	return &IdentityAdapter{n: n}
}

func (a *IdentityAdapter) Adapt(raw State, out *mat.VecDense) error {
	if len(raw) != a.n || out.Len() != a.n {
		return ErrDimensionMismatch
	}
	for i, v := range raw {
		out.SetVec(i, v)
	}
	return nil
}
