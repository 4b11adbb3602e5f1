package traj

import "errors"

// Domain errors for cost evaluation.
var (
	// ErrDegenerateWindow indicates tf < t0 when a cost evaluation was requested.
	ErrDegenerateWindow = errors.New("traj: degenerate time window (tf < t0)")

	// ErrDimensionMismatch indicates weights, wrap indices, or adapted
	// vectors inconsistent with the state dimension.
	ErrDimensionMismatch = errors.New("traj: dimension mismatch with state vector")

	// ErrNonFinite indicates a NaN or Inf from the interpolator, the
	// desired-trajectory provider, or the integrand.
	ErrNonFinite = errors.New("traj: non-finite value (NaN or Inf detected)")

	// ErrMaxSteps indicates the adaptive integration exceeded its step cap.
	ErrMaxSteps = errors.New("traj: integration exceeded step limit")

	// ErrStepTooSmall indicates the adaptive step size underflowed.
	ErrStepTooSmall = errors.New("traj: adaptive step below minimum")
)

// EvalError wraps an error with the evaluation time at which it occurred.
type EvalError struct {
	Time    float64
	Wrapped error
}

func (e *EvalError) Error() string {
	return e.Wrapped.Error()
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}
