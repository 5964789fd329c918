package riemann_solver

import "math"

// Roe computes the Roe-averaged approximate flux with the Harten entropy
// correction, plus the maximum signal speed at the interface.
func Roe(left, right State) (flux [3]float64, lambdaMax float64) {
	var (
		gamma = left.Gamma
		qL    = ConsVars(left)
		qR    = ConsVars(right)
		fL    = EulerFlux(left)
		fR    = EulerFlux(right)
		srL   = math.Sqrt(left.Rho)
		srR   = math.Sqrt(right.Rho)
	)
	// Roe averages of velocity and total enthalpy
	htL := (qL[2] + left.P) / left.Rho
	htR := (qR[2] + right.P) / right.Rho
	uRL := (srL*left.U + srR*right.U) / (srL + srR)
	htRL := (srL*htL + srR*htR) / (srL + srR)
	aRL := math.Sqrt((gamma - 1) * (htRL - 0.5*uRL*uRL))
	rhoRL := srL * srR

	delRho := right.Rho - left.Rho
	delU := right.U - left.U
	delP := right.P - left.P

	// Harten entropy correction keeps transonic eigenvalues away from zero
	phi := func(eig, del float64) (res float64) {
		absLam := math.Abs(eig)
		if absLam > del {
			res = absLam
		} else {
			res = (eig*eig + del*del) / (2 * del)
		}
		return
	}
	var (
		delta            = aRL / 20
		phi1, phi2, phi3 = phi(uRL-aRL, delta), phi(uRL, delta), phi(uRL+aRL, delta)
		ooarl2           = 1 / (aRL * aRL)
		f1               = (delP - rhoRL*aRL*delU) * 0.5 * ooarl2
		f2               = delRho - delP*ooarl2
		f3               = (delP + rhoRL*aRL*delU) * 0.5 * ooarl2
	)
	flux[0] = 0.5*(fL[0]+fR[0]) - 0.5*(phi1*f1+phi2*f2+phi3*f3)
	flux[1] = 0.5*(fL[1]+fR[1]) - 0.5*(phi1*f1*(uRL-aRL)+phi2*f2*uRL+phi3*f3*(uRL+aRL))
	flux[2] = 0.5*(fL[2]+fR[2]) - 0.5*(phi1*f1*(htRL-aRL*uRL)+phi2*f2*0.5*uRL*uRL+phi3*f3*(htRL+aRL*uRL))
	lambdaMax = math.Abs(uRL) + aRL
	return
}

// RoeHLL is the hybrid solver: Roe everywhere except across transonic
// expansions, where the diffusive HLL flux avoids the entropy-violating
// Roe solution.
func RoeHLL(left, right State) (flux [3]float64, lambdaMax float64) {
	var (
		cL = left.SoundSpeed()
		cR = right.SoundSpeed()
	)
	if left.U-cL < 0 && right.U-cR > 0 || left.U+cL < 0 && right.U+cR > 0 {
		return HLL(left, right)
	}
	return Roe(left, right)
}
