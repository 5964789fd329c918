package sod_shock_tube

import "math"

/*
	Analytic solution of Sod's shock tube, used as the reference for solver
	verification: left state (1, 0, 1), right state (0.125, 0, 0.1),
	gamma = 1.4, diaphragm at x0.
*/

const (
	Gamma = 1.4
	RhoL  = 1.
	PL    = 1.
	UL    = 0.
	RhoR  = 0.125
	PR    = 0.1
	UR    = 0.
)

// StarState returns the post-shock (star region) pressure and velocity,
// P* ~ 0.30313 and U* ~ 0.92745.
func StarState() (PStar, UStar float64) {
	PStar = fzero(sodFunc, math.Pi)
	UStar = 2 * (math.Sqrt(Gamma) / (Gamma - 1)) * (1 - math.Pow(PStar, (Gamma-1)/(2*Gamma)))
	return
}

// Sample evaluates the exact solution at positions X and time t with the
// diaphragm at x0, returning total specific energy alongside the primitives.
func Sample(X []float64, x0, t float64) (Rho, U, P, E []float64) {
	var (
		mu           = math.Sqrt((Gamma - 1) / (Gamma + 1))
		mu2          = mu * mu
		cL           = math.Sqrt(Gamma * PL / RhoL)
		PPost, vPost = StarState()
		rhoPost      = RhoR * ((PPost / PR) + mu2) / (1 + mu2*(PPost/PR))
		vShock       = vPost * (rhoPost / RhoR) / ((rhoPost / RhoR) - 1)
		rhoMiddle    = RhoL * math.Pow(PPost/PL, 1/Gamma)
		// Wave positions
		x1 = x0 - cL*t                // rarefaction head
		c2 = cL - 0.5*(Gamma-1)*vPost // sound speed at the tail
		x2 = x0 + t*(vPost-c2)        // rarefaction tail
		x3 = x0 + vPost*t             // contact
		x4 = x0 + vShock*t            // shock
	)
	Rho = make([]float64, len(X))
	U = make([]float64, len(X))
	P = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		switch {
		case x < x1:
			Rho[i], P[i], U[i] = RhoL, PL, UL
		case x <= x2:
			c := mu2*((x0-x)/t) + (1-mu2)*cL
			Rho[i] = RhoL * math.Pow(c/cL, 2/(Gamma-1))
			P[i] = PL * math.Pow(Rho[i]/RhoL, Gamma)
			U[i] = (1 - mu2) * ((x-x0)/t + cL)
		case x <= x3:
			Rho[i], P[i], U[i] = rhoMiddle, PPost, vPost
		case x <= x4:
			Rho[i], P[i], U[i] = rhoPost, PPost, vPost
		default:
			Rho[i], P[i], U[i] = RhoR, PR, UR
		}
		E[i] = 0.5*U[i]*U[i] + P[i]/((Gamma-1)*Rho[i])
	}
	return
}

// L1Error is the cell-averaged L1 distance between a computed field and the
// exact solution sampled at the same positions
func L1Error(computed, exact []float64) (l1 float64) {
	for i := range computed {
		l1 += math.Abs(computed[i] - exact[i])
	}
	l1 /= float64(len(computed))
	return
}

func fzero(f func(P float64) (y float64), start float64) float64 {
	var (
		tol = 0.0000001
		res float64
	)
	startOld := start / 2
	res = f(startOld)
	for math.Abs(res) > tol {
		resNew := f(start)
		deriv := (start - startOld) / (resNew - res)
		startNew := math.Abs(start - 0.01*f(start)/deriv)
		startOld = start
		start = startNew
		res = resNew
	}
	return start
}

func sodFunc(P float64) (y float64) {
	var (
		mu  = math.Sqrt((Gamma - 1) / (Gamma + 1))
		mu2 = mu * mu
	)
	y = (P-PR)*math.Sqrt((1-mu2)/(RhoR*(P+mu2*PR))) -
		2*(math.Sqrt(Gamma)/(Gamma-1))*(1-math.Pow(P, (Gamma-1)/(2*Gamma)))
	return
}
