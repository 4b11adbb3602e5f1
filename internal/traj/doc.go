// Package traj provides the core primitives for trajectory cost
// evaluation.
//
// The package defines the fundamental types and collaborator interfaces:
//
//   - [State]: vector representing the system state at a point in time
//   - [Interpolator]: continuous-time state reconstruction over [t0, tf]
//   - [DesiredTrajectory]: reference trajectory provider
//   - [Integrand]: running-cost rate l(x(t)) consumed by a quadrature
//   - [Adapter]: projection of a raw state into the fixed cost vector
//
// Angular state components are normalized with [WrapAngle] before any
// difference is taken, so a raw angle of 3π and one of -π/2 compare the
// way the physical configuration does.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. The cost engine
// and its collaborators are designed for a single-threaded control loop;
// callers needing concurrency must synchronize externally.
package traj
