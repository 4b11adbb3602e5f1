package cost

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/trajcost/internal/integrators"
	"github.com/san-kum/trajcost/internal/traj"
)

// Defaults match the reference tuning of the adaptive integration.
const (
	DefaultAbsTol   = 1e-5
	DefaultRelTol   = 1e-5
	DefaultInitStep = 0.01
	DefaultEpsilon  = 1e-7
	DefaultMaxSteps = 100000
)

// Options configure an Engine. Weights is required; everything else has
// a usable default.
type Options struct {
	// Weights is the terminal penalty matrix P. Symmetry is enforced by
	// the type; positive semi-definiteness is the caller's responsibility.
	Weights *mat.SymDense

	// WrapIndices lists angular state components normalized to [-pi, pi)
	// before the terminal difference is taken.
	WrapIndices []int

	// Adapter projects the raw interpolated state into the fixed vector
	// used by the quadratic form. Defaults to the identity.
	Adapter traj.Adapter

	// Quadrature integrates the running cost. Defaults to adaptive RK45
	// with the reference tolerances.
	Quadrature integrators.Quadrature

	// Epsilon backs the integration off the terminal boundary, where the
	// interpolator or integrand may be undefined.
	Epsilon float64
}

// Engine tracks the trajectory cost J1 = integral of l(x(t)) over
// [t0, tf] plus the terminal penalty m(x(tf)). It holds a borrowed
// reference to the interpolator and only needs Update to re-evaluate the
// cost after the trajectory has been mutated.
type Engine struct {
	interp    traj.Interpolator // borrowed; must outlive the engine
	desired   traj.DesiredTrajectory
	integrand traj.Integrand
	quad      integrators.Quadrature
	p         *mat.SymDense
	wrap      []int
	adapter   traj.Adapter
	eps       float64
	n         int

	// terminal-evaluation scratch, cached by tf until invalidated
	raw    traj.State
	rawDes traj.State
	xtf    *mat.VecDense
	xdes   *mat.VecDense
	diff   *mat.VecDense
	pdiff  *mat.VecDense
	termTF float64
	termOK bool

	t0, tf float64
	j1     float64
	steps  int
	fresh  bool
}

func New(interp traj.Interpolator, desired traj.DesiredTrajectory, integrand traj.Integrand, opts Options) (*Engine, error) {
	if opts.Weights == nil {
		return nil, fmt.Errorf("cost: weight matrix is required")
	}
	n := opts.Weights.SymmetricDim()
	if n == 0 {
		return nil, fmt.Errorf("cost: empty weight matrix: %w", traj.ErrDimensionMismatch)
	}
	for _, i := range opts.WrapIndices {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("cost: wrap index %d outside [0, %d): %w", i, n, traj.ErrDimensionMismatch)
		}
	}

	adapter := opts.Adapter
	if adapter == nil {
		adapter = traj.NewIdentityAdapter(n)
	}
	quad := opts.Quadrature
	if quad == nil {
		quad = integrators.NewRK45(DefaultAbsTol, DefaultRelTol, DefaultInitStep, DefaultMaxSteps)
	}
	eps := opts.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}

	return &Engine{
		interp:    interp,
		desired:   desired,
		integrand: integrand,
		quad:      quad,
		p:         opts.Weights,
		wrap:      append([]int(nil), opts.WrapIndices...),
		adapter:   adapter,
		eps:       eps,
		n:         n,
		raw:       make(traj.State, n),
		rawDes:    make(traj.State, n),
		xtf:       mat.NewVecDense(n, nil),
		xdes:      mat.NewVecDense(n, nil),
		diff:      mat.NewVecDense(n, nil),
		pdiff:     mat.NewVecDense(n, nil),
	}, nil
}

func (e *Engine) Dim() int { return e.n }

// Window returns the time window read at the last evaluation.
func (e *Engine) Window() (t0, tf float64) { return e.t0, e.tf }

// evalTerminal refreshes the cached terminal difference for the current
// tf. Both the terminal cost and its gradient share this evaluation.
func (e *Engine) evalTerminal() error {
	e.t0 = e.interp.Begin()
	e.tf = e.interp.End()
	if e.tf < e.t0 {
		return fmt.Errorf("cost: window [%g, %g]: %w", e.t0, e.tf, traj.ErrDegenerateWindow)
	}
	if e.termOK && e.termTF == e.tf {
		return nil
	}

	if err := e.interp.Evaluate(e.tf, e.raw); err != nil {
		return fmt.Errorf("cost: state at tf=%g: %w", e.tf, err)
	}
	if !e.raw.IsValid() {
		return &traj.EvalError{Time: e.tf, Wrapped: traj.ErrNonFinite}
	}
	traj.WrapComponents(e.raw, e.wrap)
	if err := e.adapter.Adapt(e.raw, e.xtf); err != nil {
		return fmt.Errorf("cost: adapting state at tf=%g: %w", e.tf, err)
	}

	if err := e.desired.DesiredAt(e.tf, e.rawDes); err != nil {
		return fmt.Errorf("cost: desired state at tf=%g: %w", e.tf, err)
	}
	if !e.rawDes.IsValid() {
		return &traj.EvalError{Time: e.tf, Wrapped: traj.ErrNonFinite}
	}
	for i, v := range e.rawDes {
		e.xdes.SetVec(i, v)
	}

	e.diff.SubVec(e.xtf, e.xdes)
	e.pdiff.MulVec(e.p, e.diff)
	e.termTF = e.tf
	e.termOK = true
	return nil
}

// TerminalCost returns m(x(tf)) = (x(tf)-x_des(tf))^T P (x(tf)-x_des(tf)).
func (e *Engine) TerminalCost() (float64, error) {
	if err := e.evalTerminal(); err != nil {
		return 0, err
	}
	return mat.Dot(e.diff, e.pdiff), nil
}

// TerminalGradient returns D_x m(x(tf)) = (x(tf)-x_des(tf))^T P as a 1xN
// row vector. P is symmetric, so the row equals (P diff) transposed.
func (e *Engine) TerminalGradient() ([]float64, error) {
	if err := e.evalTerminal(); err != nil {
		return nil, err
	}
	grad := make([]float64, e.n)
	for i := range grad {
		grad[i] = e.pdiff.AtVec(i)
	}
	return grad, nil
}

// TerminalState returns a copy of the wrapped state at tf from the last
// terminal evaluation.
func (e *Engine) TerminalState() traj.State {
	return e.raw.Clone()
}

// Update re-computes J1 for the current trajectory: it re-reads the
// window, seeds the accumulator with the terminal cost, and adds the
// running-cost integral over [t0, tf-eps]. The driver must call it after
// every state or control mutation; on a step-cap or non-finite failure the
// partial value is stored but the engine stays stale.
func (e *Engine) Update() error {
	e.termOK = false
	term, err := e.TerminalCost()
	if err != nil {
		e.fresh = false
		return err
	}

	e.j1 = term
	e.steps = 0

	// eps can swallow a near-zero window; the running contribution is
	// zero then, not an error
	hi := e.tf - e.eps
	if hi > e.t0 {
		integral, steps, err := e.quad.Integrate(e.integrand, e.t0, hi)
		e.j1 += integral
		e.steps = steps
		if err != nil {
			e.fresh = false
			return fmt.Errorf("cost: running cost over [%g, %g]: %w", e.t0, hi, err)
		}
	}

	e.fresh = true
	return nil
}

// Cost returns the last computed J1. Meaningful only while Fresh reports
// true; a stale read reflects the trajectory before the last mutation.
func (e *Engine) Cost() float64 { return e.j1 }

// Steps returns the number of integration steps consumed by the last
// running-cost integration.
func (e *Engine) Steps() int { return e.steps }

// Fresh reports whether the stored cost reflects the current trajectory.
func (e *Engine) Fresh() bool { return e.fresh }

// Invalidate marks the stored cost stale. Drivers call it after mutating
// the trajectory the interpolator reads from.
func (e *Engine) Invalidate() {
	e.fresh = false
	e.termOK = false
}

// Ensure returns the current cost, refreshing first if the engine is
// stale.
func (e *Engine) Ensure() (float64, error) {
	if !e.fresh {
		if err := e.Update(); err != nil {
			return e.j1, err
		}
	}
	return e.j1, nil
}
