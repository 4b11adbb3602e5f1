package integrators

import (
	"math"

	"github.com/san-kum/trajcost/internal/traj"
)

// RK4 is a fixed-step fourth-order quadrature. Step count is bounded and
// predictable, at the price of no local error control.
type RK4 struct {
	dt float64
}

func NewRK4(dt float64) *RK4 {
	return &RK4{dt: dt}
}

func (r *RK4) Integrate(f traj.Integrand, t0, tf float64) (float64, int, error) {
	span := tf - t0
	if span <= 0 {
		return 0, 0, nil
	}

	steps := int(math.Ceil(span / r.dt))
	h := span / float64(steps)

	acc := 0.0
	for i := 0; i < steps; i++ {
		t := t0 + float64(i)*h

		k1, err := sample(f, t)
		if err != nil {
			return acc, i, err
		}
		k2, err := sample(f, t+h*0.5)
		if err != nil {
			return acc, i, err
		}
		k4, err := sample(f, t+h)
		if err != nil {
			return acc, i, err
		}

		// k3 coincides with k2 for a time-only rate
		acc += h / 6.0 * (k1 + 4*k2 + k4)
	}

	return acc, steps, nil
}
