package riemann_solver

import "math"

// State2D extends State with the tangential velocity component, which is
// passively advected across the normal-direction wave fan.
type State2D struct {
	State
	V float64
}

// Slope2D extends Slope with the normal-direction derivative of the
// tangential velocity.
type Slope2D struct {
	Slope
	DV float64
}

// GRPResult2D adds the tangential velocity and its derivative.
type GRPResult2D struct {
	GRPResult
	V, DVDt float64
}

func (g GRPResult2D) Midpoint2D(dt float64) (rho, u, v, p float64) {
	rho, u, p = g.Midpoint(dt)
	v = g.V + 0.5*dt*g.DVDt
	return
}

// GRPEulerDir2D solves the GRP normal to a 2D interface. The normal
// components are resolved as in GRPEulerDir; the tangential velocity is
// upwinded by the contact speed. Non-nil tangential slopes (tanL/tanR, the
// d/dy derivatives for an x-interface) fold the transverse convection terms
// into the time derivative, giving the genuinely multi-dimensional variant.
func GRPEulerDir2D(left, right State2D, slopeL, slopeR Slope2D, tanL, tanR *Slope2D, eps, atc float64) (res GRPResult2D, err error) {
	res.GRPResult, err = GRPEulerDir(left.State, right.State, slopeL.Slope, slopeR.Slope, eps, atc)
	if err != nil {
		return
	}
	// Tangential velocity rides the contact: upwind side by the sign of the
	// interface velocity
	up := left
	upSlope := slopeL
	upTan := tanL
	if res.U < 0 {
		up = right
		upSlope = slopeR
		upTan = tanR
	}
	res.V = up.V
	res.DVDt = -res.U * upSlope.DV

	if upTan != nil {
		// Transverse flux gradient G(U)_y treated as a source on the normal
		// derivatives, evaluated with the upwind-side tangential slopes
		var (
			gamma = up.Gamma
			t     = *upTan
		)
		res.DRhoDt += -(up.V*t.DRho + res.Rho*t.DV)
		res.DUDt += -up.V * t.DU
		res.DVDt += -(up.V*t.DV + t.DP/res.Rho)
		res.DPDt += -(up.V*t.DP + gamma*res.P*t.DV)
	}
	if !finite(res.DVDt) || math.IsNaN(res.V) {
		res.V, res.DVDt = up.V, 0
	}
	return
}
