package riemann_solver

import "math"

// HLL computes the Harten-Lax-van Leer approximate flux and the maximum
// signal speed for a single-component interface, using Davis wave speed
// estimates.
func HLL(left, right State) (flux [3]float64, lambdaMax float64) {
	var (
		cL = left.SoundSpeed()
		cR = right.SoundSpeed()
		sL = math.Min(left.U-cL, right.U-cR)
		sR = math.Max(left.U+cL, right.U+cR)
		fL = EulerFlux(left)
		fR = EulerFlux(right)
	)
	lambdaMax = math.Max(math.Abs(sL), math.Abs(sR))
	switch {
	case sL >= 0:
		flux = fL
	case sR <= 0:
		flux = fR
	default:
		qL := ConsVars(left)
		qR := ConsVars(right)
		oosd := 1 / (sR - sL)
		for n := 0; n < 3; n++ {
			flux[n] = (sR*fL[n] - sL*fR[n] + sL*sR*(qR[n]-qL[n])) * oosd
		}
	}
	return
}
