package riemann_solver

import (
	"math"

	"github.com/notargets/gohydro/utils"
)

/*
	Generalized Riemann Problem solvers.

	Each solver resolves the associated Riemann problem for the interface
	value, then linearizes the characteristic compatibility relations around
	the star state to obtain the interface time derivative. With zero input
	slopes every derivative vanishes and the result is the plain Godunov
	interface value.
*/

// GRPResult carries the interface value at x/t = 0 and its time derivative.
type GRPResult struct {
	Rho, U, P          float64
	DRhoDt, DUDt, DPDt float64
}

// Value reports the interface primitive state advanced by dt/2, the
// mid-point value used by a single-stage second-order flux evaluation.
func (g GRPResult) Midpoint(dt float64) (rho, u, p float64) {
	rho = g.Rho + 0.5*dt*g.DRhoDt
	u = g.U + 0.5*dt*g.DUDt
	p = g.P + 0.5*dt*g.DPDt
	return
}

// oneSided evaluates the primitive-form Euler time derivatives
// w_t = -A(w) w_x from a single side, used when the whole wave fan lies on
// one side of the interface.
func oneSided(rho, u, p, c float64, sl Slope) (dRho, dU, dP float64) {
	dRho = -(u*sl.DRho + rho*sl.DU)
	dU = -(u*sl.DU + sl.DP/rho)
	dP = -(u*sl.DP + rho*c*c*sl.DU)
	return
}

// acousticCase reports whether the two states are close enough for the
// linear (acoustic) derivative resolution to bypass the Newton iteration.
func acousticCase(left, right State, atc float64) bool {
	if atc <= 0 {
		return false
	}
	dRho := math.Abs(left.Rho - right.Rho)
	dU := math.Abs(left.U - right.U)
	dP := math.Abs(left.P - right.P)
	scale := math.Min(left.P, right.P)
	return dRho < atc*math.Min(left.Rho, right.Rho) && dP < atc*scale &&
		dU < atc*left.SoundSpeed() && left.Gamma == right.Gamma
}

// GRPEulerDir solves the GRP in the fixed (Eulerian) frame for the
// direction-aligned interface. The returned derivative is d/dt along the
// t-axis (x/t = 0).
func GRPEulerDir(left, right State, slopeL, slopeR Slope, eps, atc float64) (res GRPResult, err error) {
	if acousticCase(left, right, atc) {
		res = acousticEulerDir(left, right, slopeL, slopeR)
		return
	}
	star, err := Exact(left, right, eps, DefaultTolerance, DefaultMaxIter)
	if err != nil {
		return
	}
	res.Rho, res.U, res.P = star.Sample(left, right, 0)

	var (
		cL = left.SoundSpeed()
		cR = right.SoundSpeed()
		// Star-side sound speeds adjacent to the contact
		cStarL = math.Sqrt(left.Gamma * star.PStar / star.RhoStarL)
		cStarR = math.Sqrt(right.Gamma * star.PStar / star.RhoStarR)
	)
	// Leftmost and rightmost signal speeds bound the wave fan
	headL := left.U - cL
	if !star.CRWLeft {
		headL = left.U - cL*math.Sqrt((left.Gamma+1)/(2*left.Gamma)*star.PStar/left.P+(left.Gamma-1)/(2*left.Gamma))
	}
	headR := right.U + cR
	if !star.CRWRight {
		headR = right.U + cR*math.Sqrt((right.Gamma+1)/(2*right.Gamma)*star.PStar/right.P+(right.Gamma-1)/(2*right.Gamma))
	}

	switch {
	case headL >= 0:
		// Fully supersonic to the right: upwind entirely from the left
		res.DRhoDt, res.DUDt, res.DPDt = oneSided(left.Rho, left.U, left.P, cL, slopeL)
	case headR <= 0:
		res.DRhoDt, res.DUDt, res.DPDt = oneSided(right.Rho, right.U, right.P, cR, slopeR)
	case star.CRWLeft && star.UStar-cStarL > 0:
		// t-axis inside the left rarefaction fan: sonic-point linearization
		res.DRhoDt, res.DUDt, res.DPDt = oneSided(res.Rho, res.U, res.P,
			math.Sqrt(left.Gamma*res.P/res.Rho), slopeL)
	case star.CRWRight && star.UStar+cStarR < 0:
		res.DRhoDt, res.DUDt, res.DPDt = oneSided(res.Rho, res.U, res.P,
			math.Sqrt(right.Gamma*res.P/res.Rho), slopeR)
	default:
		// Subsonic: both acoustic characteristics reach the t-axis.
		// C+ from the left region, C- from the right region:
		//   p_t + (rho c)* u_t = -(u*+c*)(p_x + (rho c)* u_x)|L
		//   p_t - (rho c)* u_t = -(u*-c*)(p_x - (rho c)* u_x)|R
		var (
			alphaL = star.RhoStarL * cStarL
			alphaR = star.RhoStarR * cStarR
			rL     = -(star.UStar + cStarL) * (slopeL.DP + alphaL*slopeL.DU)
			rR     = -(star.UStar - cStarR) * (slopeR.DP - alphaR*slopeR.DU)
		)
		res.DUDt = (rL - rR) / (alphaL + alphaR)
		res.DPDt = (alphaR*rL + alphaL*rR) / (alphaL + alphaR)
		// Entropy advects with the contact: rho_t from the upwind side
		if star.UStar >= 0 {
			res.DRhoDt = (res.DPDt+star.UStar*slopeL.DP)/(cStarL*cStarL) - star.UStar*slopeL.DRho
		} else {
			res.DRhoDt = (res.DPDt+star.UStar*slopeR.DP)/(cStarR*cStarR) - star.UStar*slopeR.DRho
		}
	}
	if !finite(res.DUDt) || !finite(res.DPDt) || !finite(res.DRhoDt) {
		err = utils.CalcErrorf("GRP solver produced non-finite time derivative")
	}
	return
}

// acousticEulerDir is the linear resolution used when left and right states
// coincide to within the acoustic threshold.
func acousticEulerDir(left, right State, slopeL, slopeR Slope) (res GRPResult) {
	var (
		rho   = 0.5 * (left.Rho + right.Rho)
		u     = 0.5 * (left.U + right.U)
		p     = 0.5 * (left.P + right.P)
		c     = math.Sqrt(left.Gamma * p / rho)
		alpha = rho * c
		rL    = -(u + c) * (slopeL.DP + alpha*slopeL.DU)
		rR    = -(u - c) * (slopeR.DP - alpha*slopeR.DU)
	)
	res.Rho, res.U, res.P = rho, u, p
	res.DUDt = (rL - rR) / (2 * alpha)
	res.DPDt = 0.5 * (rL + rR)
	sl := slopeL
	if u < 0 {
		sl = slopeR
	}
	res.DRhoDt = (res.DPDt+u*sl.DP)/(c*c) - u*sl.DRho
	return
}

// GRPLagrangian solves the GRP in the frame moving with the contact: the
// returned derivatives are material derivatives D/Dt at the interface, and
// the value part is the star state itself.
func GRPLagrangian(left, right State, slopeL, slopeR Slope, eps, atc float64) (res GRPResult, err error) {
	return grpMoving(left, right, slopeL, slopeR, 0, 1, eps, atc)
}

// GRPRadial solves the Lagrangian GRP at radius r for radially symmetric
// flow with dimension index M (1 planar, 2 cylindrical, 3 spherical),
// folding the geometric source -(M-1) rho c^2 u / r into the compatibility
// relations. M=1 reduces to GRPLagrangian.
func GRPRadial(left, right State, slopeL, slopeR Slope, r float64, M int, eps, atc float64) (res GRPResult, err error) {
	return grpMoving(left, right, slopeL, slopeR, r, M, eps, atc)
}

func grpMoving(left, right State, slopeL, slopeR Slope, r float64, M int, eps, atc float64) (res GRPResult, err error) {
	var star StarState
	if acousticCase(left, right, atc) {
		star.UStar = 0.5 * (left.U + right.U)
		star.PStar = 0.5 * (left.P + right.P)
		star.RhoStarL = left.Rho
		star.RhoStarR = right.Rho
	} else {
		star, err = Exact(left, right, eps, DefaultTolerance, DefaultMaxIter)
		if err != nil {
			return
		}
	}
	var (
		cStarL = math.Sqrt(left.Gamma * star.PStar / star.RhoStarL)
		cStarR = math.Sqrt(right.Gamma * star.PStar / star.RhoStarR)
		alphaL = star.RhoStarL * cStarL
		alphaR = star.RhoStarR * cStarR
		// In the contact frame the acoustic speeds are -c*L and +c*R
		rL = -cStarL * (slopeL.DP + alphaL*slopeL.DU)
		rR = cStarR * (slopeR.DP - alphaR*slopeR.DU)
	)
	if M > 1 && r > eps {
		// Geometric source of radial symmetry
		geo := float64(M-1) * star.UStar / r
		rL -= geo * alphaL * cStarL
		rR -= geo * alphaR * cStarR
	}
	res.U = star.UStar
	res.P = star.PStar
	res.Rho = 0.5 * (star.RhoStarL + star.RhoStarR)
	res.DUDt = (rL - rR) / (alphaL + alphaR)
	res.DPDt = (alphaR*rL + alphaL*rR) / (alphaL + alphaR)
	// Isentropic along the contact on each side; report the mean
	res.DRhoDt = 0.5 * (res.DPDt/(cStarL*cStarL) + res.DPDt/(cStarR*cStarR))
	if !finite(res.DUDt) || !finite(res.DPDt) {
		err = utils.CalcErrorf("Lagrangian GRP produced non-finite time derivative")
	}
	return
}
