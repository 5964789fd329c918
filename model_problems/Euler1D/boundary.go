package Euler1D

import (
	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/utils"
)

// Ghost is the resolved boundary state for one domain edge: a ghost cell
// value, its width, and its slope in the ghost cell's own coordinates.
// The left ghost sits left of face 0 and is reconstructed at its right
// edge (+h/2); the right ghost sits right of face m and is reconstructed
// at its left edge (-h/2).
type Ghost struct {
	Rho, U, P    float64
	H            float64
	SRho, SU, SP float64
	Gamma        float64
}

// BoundaryResolver maps the configured boundary code to ghost states and
// ghost slopes each step. The code is validated and any fixed data captured
// once at setup; resolution in the stepping loop is branch-per-code with no
// mutable state.
type BoundaryResolver struct {
	Code InputParameters.BoundaryCode

	// Edge values captured at setup for the Initial code
	initL, initR Ghost
}

func NewBoundaryResolver(code InputParameters.BoundaryCode, c *Euler) (br *BoundaryResolver, err error) {
	if !code.Valid() {
		err = utils.ArgsErrorf("unrecognized boundary code %d", int(code))
		return
	}
	m := c.Ncells
	br = &BoundaryResolver{Code: code}
	br.initL = Ghost{Rho: c.Rho[0], U: c.U[0], P: c.P[0],
		H: c.X[1] - c.X[0], Gamma: c.gammaOf(0)}
	br.initR = Ghost{Rho: c.Rho[m-1], U: c.U[m-1], P: c.P[m-1],
		H: c.X[m] - c.X[m-1], Gamma: c.gammaOf(m - 1)}
	return
}

// ResolveStates yields the ghost values for the current step, before slope
// reconstruction.
func (br *BoundaryResolver) ResolveStates(c *Euler) (left, right Ghost) {
	m := c.Ncells
	edge := func(cell int) Ghost {
		return Ghost{Rho: c.Rho[cell], U: c.U[cell], P: c.P[cell],
			Gamma: c.gammaOf(cell)}
	}
	switch br.Code {
	case InputParameters.BCInitial:
		left, right = br.initL, br.initR
		return
	case InputParameters.BCReflective:
		left, right = edge(0), edge(m-1)
		left.U, right.U = -left.U, -right.U
	case InputParameters.BCFree:
		left, right = edge(0), edge(m-1)
	case InputParameters.BCPeriodic:
		left, right = edge(m-1), edge(0)
	case InputParameters.BCReflectiveFree:
		left, right = edge(0), edge(m-1)
		left.U = -left.U
	}
	switch br.Code {
	case InputParameters.BCPeriodic:
		left.H = c.X[m] - c.X[m-1]
		right.H = c.X[1] - c.X[0]
	default:
		left.H = c.X[1] - c.X[0]
		right.H = c.X[m] - c.X[m-1]
	}
	return
}

// ResolveSlopes fills the ghost slopes once the interior slopes of the
// current step are known. Reflective mirroring negates the scalar slopes
// and keeps the velocity slope; periodic copies the opposite edge.
func (br *BoundaryResolver) ResolveSlopes(c *Euler, left, right *Ghost) {
	m := c.Ncells
	switch br.Code {
	case InputParameters.BCReflective:
		left.SRho, left.SU, left.SP = -c.SRho[0], c.SU[0], -c.SP[0]
		right.SRho, right.SU, right.SP = -c.SRho[m-1], c.SU[m-1], -c.SP[m-1]
	case InputParameters.BCPeriodic:
		left.SRho, left.SU, left.SP = c.SRho[m-1], c.SU[m-1], c.SP[m-1]
		right.SRho, right.SU, right.SP = c.SRho[0], c.SU[0], c.SP[0]
	case InputParameters.BCReflectiveFree:
		left.SRho, left.SU, left.SP = -c.SRho[0], c.SU[0], -c.SP[0]
	}
}
