package interp

import (
	"fmt"
	"sort"

	"github.com/san-kum/trajcost/internal/traj"
)

// Linear interpolates piecewise-linearly between trajectory samples.
// Outside the sample window it clamps to the endpoint states.
type Linear struct {
	times  []float64
	states []traj.State
	n      int
}

// NewLinear builds an interpolator over (times, states) samples. Times
// must be strictly increasing and all states must share one dimension.
func NewLinear(times []float64, states []traj.State) (*Linear, error) {
	if len(times) == 0 || len(times) != len(states) {
		return nil, fmt.Errorf("interp: need equal, non-zero sample counts, got %d times and %d states", len(times), len(states))
	}
	n := len(states[0])
	for i, s := range states {
		if len(s) != n {
			return nil, fmt.Errorf("interp: state %d has dimension %d, want %d: %w", i, len(s), n, traj.ErrDimensionMismatch)
		}
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("interp: times not strictly increasing at index %d", i)
		}
	}
	return &Linear{times: times, states: states, n: n}, nil
}

// FromFunc samples an analytic trajectory on a uniform grid.
func FromFunc(f func(t float64) traj.State, t0, tf float64, samples int) (*Linear, error) {
	if samples < 2 {
		return nil, fmt.Errorf("interp: need at least 2 samples, got %d", samples)
	}
	times := make([]float64, samples)
	states := make([]traj.State, samples)
	h := (tf - t0) / float64(samples-1)
	for i := 0; i < samples; i++ {
		t := t0 + float64(i)*h
		times[i] = t
		states[i] = f(t)
	}
	return NewLinear(times, states)
}

func (l *Linear) Dim() int       { return l.n }
func (l *Linear) Begin() float64 { return l.times[0] }
func (l *Linear) End() float64   { return l.times[len(l.times)-1] }

func (l *Linear) Evaluate(t float64, out traj.State) error {
	if len(out) != l.n {
		return traj.ErrDimensionMismatch
	}

	if t <= l.times[0] {
		copy(out, l.states[0])
		return nil
	}
	if t >= l.End() {
		copy(out, l.states[len(l.states)-1])
		return nil
	}

	// first index with times[i] > t; the segment is [i-1, i]
	i := sort.SearchFloat64s(l.times, t)
	if l.times[i] > t {
		i--
	}
	if i == len(l.times)-1 {
		copy(out, l.states[i])
		return nil
	}

	frac := (t - l.times[i]) / (l.times[i+1] - l.times[i])
	for j := 0; j < l.n; j++ {
		out[j] = l.states[i][j] + frac*(l.states[i+1][j]-l.states[i][j])
	}
	return nil
}

// DesiredAt lets a sampled trajectory double as the reference trajectory.
func (l *Linear) DesiredAt(t float64, out traj.State) error {
	return l.Evaluate(t, out)
}
