package integrators

import (
	"math"

	"github.com/san-kum/trajcost/internal/traj"
)

// Trapezoid is a fixed-step trapezoidal-rule quadrature. Weaker accuracy
// than RK45 but deterministic in step count.
type Trapezoid struct {
	dt float64
}

func NewTrapezoid(dt float64) *Trapezoid {
	return &Trapezoid{dt: dt}
}

func (tr *Trapezoid) Integrate(f traj.Integrand, t0, tf float64) (float64, int, error) {
	span := tf - t0
	if span <= 0 {
		return 0, 0, nil
	}

	steps := int(math.Ceil(span / tr.dt))
	h := span / float64(steps)

	prev, err := sample(f, t0)
	if err != nil {
		return 0, 0, err
	}

	acc := 0.0
	for i := 1; i <= steps; i++ {
		t := t0 + float64(i)*h
		cur, err := sample(f, t)
		if err != nil {
			return acc, i - 1, err
		}
		acc += h * 0.5 * (prev + cur)
		prev = cur
	}

	return acc, steps, nil
}
