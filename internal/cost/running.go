package cost

import (
	"github.com/san-kum/trajcost/internal/traj"
)

// RateFunc is the instantaneous running-cost rate l(x, t).
type RateFunc func(x traj.State, t float64) float64

// RunningCost binds a state interpolator and a rate function into the
// integrand consumed by a quadrature strategy. It shares the
// interpolator's time window.
type RunningCost struct {
	interp traj.Interpolator
	rate   RateFunc
	buf    traj.State
}

func NewRunningCost(interp traj.Interpolator, dim int, rate RateFunc) *RunningCost {
	return &RunningCost{
		interp: interp,
		rate:   rate,
		buf:    make(traj.State, dim),
	}
}

func (r *RunningCost) Begin() float64 { return r.interp.Begin() }
func (r *RunningCost) End() float64   { return r.interp.End() }

func (r *RunningCost) Rate(t float64) (float64, error) {
	if err := r.interp.Evaluate(t, r.buf); err != nil {
		return 0, err
	}
	if !r.buf.IsValid() {
		return 0, &traj.EvalError{Time: t, Wrapped: traj.ErrNonFinite}
	}
	return r.rate(r.buf, t), nil
}

// ZeroRate is a rate function with no running cost; the total reduces to
// the terminal penalty.
func ZeroRate(x traj.State, t float64) float64 { return 0 }
