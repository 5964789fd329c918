package riemann_solver

import (
	"math"

	"github.com/notargets/gohydro/utils"
)

/*
	Exact Riemann solver for the 1D Euler equations.

	Newton-Raphson iteration on the star pressure using the shock
	(Rankine-Hugoniot) branch when the star pressure exceeds the side
	pressure and the isentropic rarefaction branch otherwise. The two sides
	may carry distinct adiabatic indices for two-component flow.
*/

// pressureFunc evaluates the side contribution f(P) to the star velocity
// jump condition and its derivative df/dP
func pressureFunc(P float64, s State) (f, df float64) {
	var (
		gamma = s.Gamma
		c     = s.SoundSpeed()
	)
	if P > s.P {
		// Shock branch
		A := 2. / ((gamma + 1) * s.Rho)
		B := (gamma - 1) / (gamma + 1) * s.P
		sq := math.Sqrt(A / (P + B))
		f = (P - s.P) * sq
		df = sq * (1 - 0.5*(P-s.P)/(B+P))
	} else {
		// Rarefaction branch
		pr := P / s.P
		f = 2 * c / (gamma - 1) * (math.Pow(pr, (gamma-1)/(2*gamma)) - 1)
		df = math.Pow(pr, -(gamma+1)/(2*gamma)) / (s.Rho * c)
	}
	return
}

// Exact solves the Riemann problem for left and right states, iterating on
// the star pressure until successive estimates agree to within tol, bounded
// by maxIter iterations. Non-convergence, vacuum formation and invalid
// input states are calculation errors.
func Exact(left, right State, eps, tol float64, maxIter int) (star StarState, err error) {
	if left.P < eps || left.Rho < eps || right.P < eps || right.Rho < eps {
		err = utils.CalcErrorf("non-physical input state: pL=%g rhoL=%g pR=%g rhoR=%g",
			left.P, left.Rho, right.P, right.Rho)
		return
	}
	if !left.Finite() || !right.Finite() {
		err = utils.CalcErrorf("NaN or Inf in Riemann input states")
		return
	}
	var (
		cL = left.SoundSpeed()
		cR = right.SoundSpeed()
		du = right.U - left.U
	)
	// Vacuum forms when the two rarefaction fans separate
	if 2*cL/(left.Gamma-1)+2*cR/(right.Gamma-1) <= du {
		err = utils.CalcErrorf("vacuum formation: uR-uL=%g exceeds rarefaction closure", du)
		return
	}

	// Two-rarefaction style initial guess, floored to the tolerance
	P := 0.5*(left.P+right.P) - 0.125*du*(left.Rho+right.Rho)*(cL+cR)
	if P < tol {
		P = tol
	}
	var converged bool
	for iter := 0; iter < maxIter; iter++ {
		fL, dfL := pressureFunc(P, left)
		fR, dfR := pressureFunc(P, right)
		Pnew := P - (fL+fR+du)/(dfL+dfR)
		if Pnew < tol {
			Pnew = tol
		}
		change := 2 * math.Abs(Pnew-P) / (Pnew + P)
		P = Pnew
		if change < tol {
			converged = true
			break
		}
	}
	if !converged {
		err = utils.CalcErrorf("exact Riemann solver failed to converge in %d iterations, P=%g", maxIter, P)
		return
	}
	fL, _ := pressureFunc(P, left)
	fR, _ := pressureFunc(P, right)

	star.PStar = P
	star.UStar = 0.5*(left.U+right.U) + 0.5*(fR-fL)
	star.CRWLeft = P < left.P
	star.CRWRight = P < right.P
	star.RhoStarL = starDensity(P, left)
	star.RhoStarR = starDensity(P, right)
	if !finite(star.PStar) || !finite(star.UStar) {
		err = utils.CalcErrorf("exact Riemann solver produced non-finite star state")
	}
	return
}

// starDensity gives the density adjacent to the contact on side s
func starDensity(PStar float64, s State) float64 {
	pr := PStar / s.P
	if PStar < s.P {
		// Isentropic through the rarefaction
		return s.Rho * math.Pow(pr, 1/s.Gamma)
	}
	// Rankine-Hugoniot across the shock
	mu2 := (s.Gamma - 1) / (s.Gamma + 1)
	return s.Rho * (pr + mu2) / (mu2*pr + 1)
}

// Sample evaluates the self-similar Riemann solution along the ray x/t = xi.
func (star StarState) Sample(left, right State, xi float64) (rho, u, p float64) {
	if xi <= star.UStar {
		// Left of the contact
		var (
			gamma = left.Gamma
			cL    = left.SoundSpeed()
		)
		if star.CRWLeft {
			cStarL := cL * math.Pow(star.PStar/left.P, (gamma-1)/(2*gamma))
			head := left.U - cL
			tail := star.UStar - cStarL
			switch {
			case xi <= head:
				rho, u, p = left.Rho, left.U, left.P
			case xi >= tail:
				rho, u, p = star.RhoStarL, star.UStar, star.PStar
			default:
				// Inside the fan
				u = 2 / (gamma + 1) * (cL + 0.5*(gamma-1)*left.U + xi)
				c := u - xi
				rho = left.Rho * math.Pow(c/cL, 2/(gamma-1))
				p = left.P * math.Pow(c/cL, 2*gamma/(gamma-1))
			}
		} else {
			S := left.U - cL*math.Sqrt((gamma+1)/(2*gamma)*star.PStar/left.P+(gamma-1)/(2*gamma))
			if xi <= S {
				rho, u, p = left.Rho, left.U, left.P
			} else {
				rho, u, p = star.RhoStarL, star.UStar, star.PStar
			}
		}
		return
	}
	// Right of the contact
	var (
		gamma = right.Gamma
		cR    = right.SoundSpeed()
	)
	if star.CRWRight {
		cStarR := cR * math.Pow(star.PStar/right.P, (gamma-1)/(2*gamma))
		head := right.U + cR
		tail := star.UStar + cStarR
		switch {
		case xi >= head:
			rho, u, p = right.Rho, right.U, right.P
		case xi <= tail:
			rho, u, p = star.RhoStarR, star.UStar, star.PStar
		default:
			u = 2 / (gamma + 1) * (-cR + 0.5*(gamma-1)*right.U + xi)
			c := xi - u
			rho = right.Rho * math.Pow(c/cR, 2/(gamma-1))
			p = right.P * math.Pow(c/cR, 2*gamma/(gamma-1))
		}
	} else {
		S := right.U + cR*math.Sqrt((gamma+1)/(2*gamma)*star.PStar/right.P+(gamma-1)/(2*gamma))
		if xi >= S {
			rho, u, p = right.Rho, right.U, right.P
		} else {
			rho, u, p = star.RhoStarR, star.UStar, star.PStar
		}
	}
	return
}
