package riemann_solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGRPZeroSlopes(t *testing.T) {
	// With zero slopes the GRP reduces to the Godunov interface value and
	// every time derivative vanishes
	left, right := sodStates()
	star, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.NoError(t, err)
	rho, u, p := star.Sample(left, right, 0)

	res, err := GRPEulerDir(left, right, Slope{}, Slope{}, 1.e-9, 0)
	assert.NoError(t, err)
	assert.InDelta(t, rho, res.Rho, 1.e-12)
	assert.InDelta(t, u, res.U, 1.e-12)
	assert.InDelta(t, p, res.P, 1.e-12)
	assert.InDelta(t, 0, res.DRhoDt, 1.e-12)
	assert.InDelta(t, 0, res.DUDt, 1.e-12)
	assert.InDelta(t, 0, res.DPDt, 1.e-12)
}

func TestGRPLagrangianZeroSlopes(t *testing.T) {
	left, right := sodStates()
	star, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.NoError(t, err)
	res, err := GRPLagrangian(left, right, Slope{}, Slope{}, 1.e-9, 0)
	assert.NoError(t, err)
	assert.InDelta(t, star.UStar, res.U, 1.e-12)
	assert.InDelta(t, star.PStar, res.P, 1.e-12)
	assert.InDelta(t, 0, res.DUDt, 1.e-12)
	assert.InDelta(t, 0, res.DPDt, 1.e-12)
}

func TestGRPSupersonic(t *testing.T) {
	// Uniform supersonic flow to the right: the whole fan lies right of the
	// t-axis and the derivative is the one-sided upwind value
	s := State{Rho: 1, U: 5, P: 1, Gamma: 1.4}
	sl := Slope{DRho: 0.1, DU: -0.2, DP: 0.05}
	res, err := GRPEulerDir(s, s, sl, Slope{DRho: 1, DU: 1, DP: 1}, 1.e-9, 0)
	assert.NoError(t, err)
	c := s.SoundSpeed()
	dRho, dU, dP := oneSided(s.Rho, s.U, s.P, c, sl)
	assert.InDelta(t, dRho, res.DRhoDt, 1.e-12)
	assert.InDelta(t, dU, res.DUDt, 1.e-12)
	assert.InDelta(t, dP, res.DPDt, 1.e-12)
}

func TestGRPSubsonicSymmetry(t *testing.T) {
	// A pressure peak at the interface: the flow accelerates away on both
	// sides, so u_t cancels by symmetry and p_t drops
	s := State{Rho: 1, U: 0, P: 1, Gamma: 1.4}
	slopeL := Slope{DP: 0.3}
	slopeR := Slope{DP: -0.3}
	res, err := GRPEulerDir(s, s, slopeL, slopeR, 1.e-9, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 0, res.DUDt, 1.e-12)
	assert.Less(t, res.DPDt, 0.0)
}

func TestGRPAcousticBranch(t *testing.T) {
	// Nearly identical states under a generous threshold take the linear
	// branch and agree with the full solve to leading order
	left := State{Rho: 1, U: 0.1, P: 1, Gamma: 1.4}
	right := State{Rho: 1.0001, U: 0.1, P: 1.0001, Gamma: 1.4}
	sl := Slope{DRho: 0.2, DU: 0.1, DP: 0.15}
	full, err := GRPEulerDir(left, right, sl, sl, 1.e-9, 0)
	assert.NoError(t, err)
	lin, err := GRPEulerDir(left, right, sl, sl, 1.e-9, 0.01)
	assert.NoError(t, err)
	assert.InDelta(t, full.DUDt, lin.DUDt, 1.e-2)
	assert.InDelta(t, full.DPDt, lin.DPDt, 1.e-2)
}

func TestGRPRadialGeometricSource(t *testing.T) {
	// Uniform expanding flow: the geometric source drains pressure, and the
	// planar case M=1 shows none of it
	s := State{Rho: 1, U: 1, P: 1, Gamma: 1.4}
	res3, err := GRPRadial(s, s, Slope{}, Slope{}, 0.5, 3, 1.e-9, 0)
	assert.NoError(t, err)
	assert.Less(t, res3.DPDt, 0.0)
	assert.InDelta(t, 0, res3.DUDt, 1.e-12)

	res1, err := GRPRadial(s, s, Slope{}, Slope{}, 0.5, 1, 1.e-9, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 0, res1.DPDt, 1.e-12)

	// Stronger source closer to the axis
	resNear, err := GRPRadial(s, s, Slope{}, Slope{}, 0.25, 3, 1.e-9, 0)
	assert.NoError(t, err)
	assert.Less(t, resNear.DPDt, res3.DPDt)
}

func TestGRP2DPassiveTangential(t *testing.T) {
	// The tangential velocity rides the contact: value upwinded by the
	// interface velocity, derivative pure advection
	left := State2D{State: State{Rho: 1, U: 0.5, P: 1, Gamma: 1.4}, V: 2}
	right := State2D{State: State{Rho: 1, U: 0.5, P: 1, Gamma: 1.4}, V: -3}
	slope := Slope2D{DV: 0.4}
	res, err := GRPEulerDir2D(left, right, slope, slope, nil, nil, 1.e-9, 0)
	assert.NoError(t, err)
	assert.InDelta(t, left.V, res.V, 1.e-12)
	assert.InDelta(t, -res.U*slope.DV, res.DVDt, 1.e-12)
}
