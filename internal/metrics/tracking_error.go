package metrics

import (
	"math"

	"github.com/san-kum/trajcost/internal/traj"
)

// TrackingError accumulates the RMS deviation between the actual and
// desired trajectories over observed samples.
type TrackingError struct {
	name    string
	sumSq   float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{
		name: "tracking_error",
	}
}

func (e *TrackingError) Name() string {
	return e.name
}

func (e *TrackingError) Observe(x, xdes traj.State, t float64) {
	d := x.Sub(xdes).Norm()
	e.sumSq += d * d
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return math.Sqrt(e.sumSq / float64(e.samples))
}

func (e *TrackingError) Reset() {
	e.sumSq = 0
	e.samples = 0
}
