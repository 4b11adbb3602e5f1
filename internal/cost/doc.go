// Package cost tracks the trajectory tracking cost
//
//	J1 = ∫[t0,tf] l(x(t)) dt + m(x(tf))
//
// where the terminal penalty is the quadratic form
// (x(tf)-x_des(tf))ᵀ P (x(tf)-x_des(tf)).
//
// An [Engine] borrows a state interpolator and only needs [Engine.Update]
// to re-compute the cost after the driver has modified the state or
// control trajectory. Between updates the stored value is served as-is;
// [Engine.Fresh] tells the two apart and [Engine.Ensure] refreshes
// transparently.
//
// # Example
//
//	integrand := cost.NewRunningCost(itp, n, rate)
//	engine, _ := cost.New(itp, desired, integrand, cost.Options{Weights: p})
//	_ = engine.Update()
//	j1 := engine.Cost()
package cost
