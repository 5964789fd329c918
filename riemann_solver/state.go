package riemann_solver

import "math"

// Default Newton iteration controls for the exact solver, used by callers
// that do not need to override them.
const (
	DefaultTolerance = 1.e-9
	DefaultMaxIter   = 500
)

// State holds the primitive variables to one side of an interface. Gamma may
// differ between the two sides for two-component flow.
type State struct {
	Rho, U, P float64
	Gamma     float64
}

func (s State) SoundSpeed() float64 {
	return math.Sqrt(s.Gamma * s.P / s.Rho)
}

func (s State) Finite() bool {
	return finite(s.Rho) && finite(s.U) && finite(s.P)
}

// Slope holds the spatial derivatives of the primitive variables on one side
// of an interface, as produced by the limiter reconstruction.
type Slope struct {
	DRho, DU, DP float64
}

// StarState is the resolved contact-region solution of a Riemann problem.
// CRWLeft/CRWRight mark the corresponding nonlinear wave as a centered
// rarefaction rather than a shock.
type StarState struct {
	UStar, PStar       float64
	RhoStarL, RhoStarR float64
	CRWLeft, CRWRight  bool
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ConsVars converts a primitive state to the conserved vector
// (rho, rho*u, E) with E the total energy per unit volume
func ConsVars(s State) (q [3]float64) {
	q[0] = s.Rho
	q[1] = s.Rho * s.U
	q[2] = s.P/(s.Gamma-1) + 0.5*s.Rho*s.U*s.U
	return
}

// EulerFlux is the physical flux of the conserved vector for state s
func EulerFlux(s State) (f [3]float64) {
	E := s.P/(s.Gamma-1) + 0.5*s.Rho*s.U*s.U
	f[0] = s.Rho * s.U
	f[1] = s.Rho*s.U*s.U + s.P
	f[2] = s.U * (E + s.P)
	return
}
