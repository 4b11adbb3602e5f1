package traj

import "math"

// WrapAngle maps an angle to the canonical range [-pi, pi).
func WrapAngle(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}

// WrapComponents normalizes the listed state components in place.
// Indices must already be validated against the state dimension.
func WrapComponents(x State, indices []int) {
	for _, i := range indices {
		x[i] = WrapAngle(x[i])
	}
}
