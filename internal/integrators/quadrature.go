package integrators

import (
	"math"

	"github.com/san-kum/trajcost/internal/traj"
)

// Quadrature integrates a running-cost rate over [t0, tf] and reports the
// number of accepted steps. Strategies are interchangeable at engine
// construction time.
type Quadrature interface {
	Integrate(f traj.Integrand, t0, tf float64) (float64, int, error)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sample evaluates the rate and rejects non-finite values.
func sample(f traj.Integrand, t float64) (float64, error) {
	v, err := f.Rate(t)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, &traj.EvalError{Time: t, Wrapped: traj.ErrNonFinite}
	}
	return v, nil
}
