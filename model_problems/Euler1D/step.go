package Euler1D

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/riemann_solver"
	"github.com/notargets/gohydro/utils"
)

// faceWork is the transient interface state of one step: reconstructed
// values, resolved star values and derivatives, and the assembled fluxes.
// It is recreated every step and never persisted.
type faceWork struct {
	RhoMid, UMid, PMid []float64 // Riemann value at the interface
	RhoT, UT, PT       []float64 // interface time derivatives (GRP)
	F1, F2, F3         []float64 // conservative fluxes
	HoS                []float64 // per-face h / max signal speed
	ghostL, ghostR     Ghost
}

func newFaceWork(m int) *faceWork {
	return &faceWork{
		RhoMid: make([]float64, m+1),
		UMid:   make([]float64, m+1),
		PMid:   make([]float64, m+1),
		RhoT:   make([]float64, m+1),
		UT:     make([]float64, m+1),
		PT:     make([]float64, m+1),
		F1:     make([]float64, m+1),
		F2:     make([]float64, m+1),
		F3:     make([]float64, m+1),
		HoS:    make([]float64, m+1),
	}
}

func (c *Euler) step(k int) (cpuTime float64, err error) {
	tic := time.Now()
	defer func() {
		cpuTime = time.Since(tic).Seconds()
	}()
	m := c.Ncells
	ws := newFaceWork(m)
	ws.ghostL, ws.ghostR = c.boundary.ResolveStates(c)
	if c.Scheme == SchemeGRP {
		c.reconstruct(k, ws.ghostL, ws.ghostR)
		c.boundary.ResolveSlopes(c, &ws.ghostL, &ws.ghostR)
	}

	// The per-face solves are independent; fan out over contiguous face
	// ranges. Every goroutine writes disjoint indices of ws, so the only
	// synchronization is the join.
	var (
		wg   sync.WaitGroup
		errs = make([]error, c.pm.ParallelDegree)
	)
	for n := 0; n < c.pm.ParallelDegree; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			jmin, jmax := c.pm.GetBucketRange(n)
			for j := jmin; j < jmax; j++ {
				if ferr := c.solveFace(k, j, ws); ferr != nil {
					if errs[n] == nil {
						errs[n] = ferr
					}
					return
				}
			}
		}(n)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return cpuTime, e
		}
	}

	c.Tau = c.CalculateDT(floats.Min(ws.HoS))

	switch c.Params.Frame {
	case InputParameters.FrameLagrangian:
		err = c.updateLagrangian(k, ws)
	default:
		// ALE currently advances with zero mesh velocity and is otherwise
		// the Eulerian update on the movable mesh (extension point)
		err = c.updateEulerian(k, ws)
	}
	return
}

// reconstruct computes the limited slopes for every cell. The first step
// has no retained slope and falls back to the two-argument limiter.
func (c *Euler) reconstruct(k int, gl, gr Ghost) {
	var (
		m     = c.Ncells
		alpha = c.Params.Alpha
	)
	for j := 0; j < m; j++ {
		var (
			hL, hR          float64
			sRhoL, sUL, sPL float64
			sRhoR, sUR, sPR float64
		)
		if j > 0 {
			hL = 0.5 * (c.X[j+1] - c.X[j-1])
			sRhoL = (c.Rho[j] - c.Rho[j-1]) / hL
			sUL = (c.U[j] - c.U[j-1]) / hL
			sPL = (c.P[j] - c.P[j-1]) / hL
		} else {
			hL = 0.5 * (c.X[1] - c.X[0] + gl.H)
			sRhoL = (c.Rho[0] - gl.Rho) / hL
			sUL = (c.U[0] - gl.U) / hL
			sPL = (c.P[0] - gl.P) / hL
		}
		if j < m-1 {
			hR = 0.5 * (c.X[j+2] - c.X[j])
			sRhoR = (c.Rho[j+1] - c.Rho[j]) / hR
			sUR = (c.U[j+1] - c.U[j]) / hR
			sPR = (c.P[j+1] - c.P[j]) / hR
		} else {
			hR = 0.5 * (c.X[m] - c.X[m-1] + gr.H)
			sRhoR = (gr.Rho - c.Rho[m-1]) / hR
			sUR = (gr.U - c.U[m-1]) / hR
			sPR = (gr.P - c.P[m-1]) / hR
		}
		if k == 1 {
			c.SRho[j] = utils.Minmod2(sRhoL, sRhoR)
			c.SU[j] = utils.Minmod2(sUL, sUR)
			c.SP[j] = utils.Minmod2(sPL, sPR)
		} else {
			c.SRho[j] = utils.Minmod3(alpha*sRhoL, alpha*sRhoR, c.SRho[j])
			c.SU[j] = utils.Minmod3(alpha*sUL, alpha*sUR, c.SU[j])
			c.SP[j] = utils.Minmod3(alpha*sPL, alpha*sPR, c.SP[j])
		}
	}
}

// solveFace reconstructs the interface states of face j and resolves the
// Riemann or generalized Riemann problem there.
func (c *Euler) solveFace(k, j int, ws *faceWork) (err error) {
	var (
		m              = c.Ncells
		sp             = c.Params
		left, right    riemann_solver.State
		slopeL, slopeR riemann_solver.Slope
		hL, hR         float64
	)
	if j > 0 {
		hL = c.X[j] - c.X[j-1]
		left = riemann_solver.State{
			Rho:   c.Rho[j-1] + 0.5*hL*c.SRho[j-1],
			U:     c.U[j-1] + 0.5*hL*c.SU[j-1],
			P:     c.P[j-1] + 0.5*hL*c.SP[j-1],
			Gamma: c.gammaOf(j - 1),
		}
		slopeL = riemann_solver.Slope{DRho: c.SRho[j-1], DU: c.SU[j-1], DP: c.SP[j-1]}
	} else {
		g := ws.ghostL
		hL = g.H
		left = riemann_solver.State{
			Rho:   g.Rho + 0.5*hL*g.SRho,
			U:     g.U + 0.5*hL*g.SU,
			P:     g.P + 0.5*hL*g.SP,
			Gamma: g.Gamma,
		}
		slopeL = riemann_solver.Slope{DRho: g.SRho, DU: g.SU, DP: g.SP}
	}
	if j < m {
		hR = c.X[j+1] - c.X[j]
		right = riemann_solver.State{
			Rho:   c.Rho[j] - 0.5*hR*c.SRho[j],
			U:     c.U[j] - 0.5*hR*c.SU[j],
			P:     c.P[j] - 0.5*hR*c.SP[j],
			Gamma: c.gammaOf(j),
		}
		slopeR = riemann_solver.Slope{DRho: c.SRho[j], DU: c.SU[j], DP: c.SP[j]}
	} else {
		g := ws.ghostR
		hR = g.H
		right = riemann_solver.State{
			Rho:   g.Rho - 0.5*hR*g.SRho,
			U:     g.U - 0.5*hR*g.SU,
			P:     g.P - 0.5*hR*g.SP,
			Gamma: g.Gamma,
		}
		slopeR = riemann_solver.Slope{DRho: g.SRho, DU: g.SU, DP: g.SP}
	}
	if left.P < sp.Eps || left.Rho < sp.Eps || right.P < sp.Eps || right.Rho < sp.Eps {
		return utils.CalcErrorf("non-physical state on [%d, %d] (step, face) - reconstruction", k, j)
	}
	if !left.Finite() || !right.Finite() {
		return utils.CalcErrorf("NaN or Inf on [%d, %d] (step, face) - reconstruction", k, j)
	}
	var (
		cL = left.SoundSpeed()
		cR = right.SoundSpeed()
	)
	ws.HoS[j] = math.Min(hL/(math.Abs(left.U)+cL), hR/(math.Abs(right.U)+cR))

	lagrangian := sp.Frame == InputParameters.FrameLagrangian
	switch c.Scheme {
	case SchemeHLL:
		flux, lambdaMax := riemann_solver.HLL(left, right)
		ws.F1[j], ws.F2[j], ws.F3[j] = flux[0], flux[1], flux[2]
		ws.HoS[j] = math.Min(hL, hR) / lambdaMax
	case SchemeRoe:
		flux, lambdaMax := riemann_solver.Roe(left, right)
		ws.F1[j], ws.F2[j], ws.F3[j] = flux[0], flux[1], flux[2]
		ws.HoS[j] = math.Min(hL, hR) / lambdaMax
	case SchemeRoeHLL:
		flux, lambdaMax := riemann_solver.RoeHLL(left, right)
		ws.F1[j], ws.F2[j], ws.F3[j] = flux[0], flux[1], flux[2]
		ws.HoS[j] = math.Min(hL, hR) / lambdaMax
	case SchemeGodunov:
		star, serr := riemann_solver.Exact(left, right, sp.Eps, sp.Tol, sp.MaxIter)
		if serr != nil {
			return utils.CalcErrorf("[%d, %d] (step, face): %v", k, j, serr)
		}
		if lagrangian {
			ws.RhoMid[j] = 0.5 * (star.RhoStarL + star.RhoStarR)
			ws.UMid[j], ws.PMid[j] = star.UStar, star.PStar
		} else {
			ws.RhoMid[j], ws.UMid[j], ws.PMid[j] = star.Sample(left, right, 0)
		}
	case SchemeGRP:
		var (
			res  riemann_solver.GRPResult
			gerr error
		)
		if lagrangian {
			res, gerr = riemann_solver.GRPLagrangian(left, right, slopeL, slopeR, sp.Eps, sp.Acoustic)
		} else {
			res, gerr = riemann_solver.GRPEulerDir(left, right, slopeL, slopeR, sp.Eps, sp.Acoustic)
		}
		if gerr != nil {
			return utils.CalcErrorf("[%d, %d] (step, face): %v", k, j, gerr)
		}
		ws.RhoMid[j], ws.UMid[j], ws.PMid[j] = res.Rho, res.U, res.P
		ws.RhoT[j], ws.UT[j], ws.PT[j] = res.DRhoDt, res.DUDt, res.DPDt
	}
	if c.Scheme == SchemeGodunov || c.Scheme == SchemeGRP {
		if ws.PMid[j] < sp.Eps || !finiteAll(ws.RhoMid[j], ws.UMid[j], ws.PMid[j]) {
			return utils.CalcErrorf("non-physical state on [%d, %d] (step, face) - star", k, j)
		}
	}
	return nil
}

// updateEulerian assembles the mid-point fluxes and applies the explicit
// conservative update on the fixed mesh.
func (c *Euler) updateEulerian(k int, ws *faceWork) (err error) {
	var (
		m   = c.Ncells
		tau = c.Tau
	)
	if c.Scheme == SchemeGodunov || c.Scheme == SchemeGRP {
		for j := 0; j <= m; j++ {
			rho := ws.RhoMid[j] + 0.5*tau*ws.RhoT[j]
			u := ws.UMid[j] + 0.5*tau*ws.UT[j]
			p := ws.PMid[j] + 0.5*tau*ws.PT[j]
			gamma := c.faceGamma(j, u)
			ws.F1[j] = rho * u
			ws.F2[j] = ws.F1[j]*u + p
			ws.F3[j] = (gamma/(gamma-1))*p*u + 0.5*ws.F1[j]*u*u
			// Interface values at t_{n+1}, kept for the retained slopes
			ws.RhoMid[j] = rho + 0.5*tau*ws.RhoT[j]
			ws.UMid[j] = u + 0.5*tau*ws.UT[j]
			ws.PMid[j] = p + 0.5*tau*ws.PT[j]
		}
	}
	for j := 0; j < m; j++ {
		var (
			h     = c.X[j+1] - c.X[j]
			nu    = tau / h
			gamma = c.gammaOf(j)
		)
		c.RhoNext[j] = c.Rho[j] - nu*(ws.F1[j+1]-ws.F1[j])
		mom := c.Rho[j]*c.U[j] - nu*(ws.F2[j+1]-ws.F2[j])
		ene := c.Rho[j]*c.E[j] - nu*(ws.F3[j+1]-ws.F3[j])
		c.UNext[j] = mom / c.RhoNext[j]
		c.ENext[j] = ene / c.RhoNext[j]
		c.PNext[j] = (ene - 0.5*mom*c.UNext[j]) * (gamma - 1)
		if cerr := c.checkCell(k, j); cerr != nil && err == nil {
			err = cerr
		}
	}
	copy(c.XNext, c.X)
	if c.Scheme == SchemeGRP {
		c.updateRetainedSlopes(ws, c.XNext)
	}
	return
}

// updateLagrangian moves the nodes with the resolved interface velocity and
// updates the cells in mass coordinates.
func (c *Euler) updateLagrangian(k int, ws *faceWork) (err error) {
	var (
		m   = c.Ncells
		sp  = c.Params
		tau = c.Tau
	)
	// Mid-point interface velocity and pressure
	for j := 0; j <= m; j++ {
		ws.UMid[j] += 0.5 * tau * ws.UT[j]
		ws.PMid[j] += 0.5 * tau * ws.PT[j]
		c.XNext[j] = c.X[j] + tau*ws.UMid[j]
	}
	for j := 0; j < m; j++ {
		var (
			hn    = c.XNext[j+1] - c.XNext[j]
			gamma = c.gammaOf(j)
		)
		if hn < sp.Eps {
			if err == nil {
				err = utils.CalcErrorf("mesh tangling on [%d, %d] (step, cell): width %g", k, j, hn)
			}
			continue
		}
		c.RhoNext[j] = c.Mass[j] / hn
		c.UNext[j] = c.U[j] - tau/c.Mass[j]*(ws.PMid[j+1]-ws.PMid[j])
		c.ENext[j] = c.E[j] - tau/c.Mass[j]*(ws.PMid[j+1]*ws.UMid[j+1]-ws.PMid[j]*ws.UMid[j])
		c.PNext[j] = (gamma - 1) * c.RhoNext[j] * (c.ENext[j] - 0.5*c.UNext[j]*c.UNext[j])
		if cerr := c.checkCell(k, j); cerr != nil && err == nil {
			err = cerr
		}
	}
	if c.Scheme == SchemeGRP {
		// Advance the interface values to t_{n+1} for the retained slopes
		for j := 0; j <= m; j++ {
			ws.RhoMid[j] += tau * ws.RhoT[j]
			ws.UMid[j] += 0.5 * tau * ws.UT[j]
			ws.PMid[j] += 0.5 * tau * ws.PT[j]
		}
		c.updateRetainedSlopes(ws, c.XNext)
	}
	return
}

// updateRetainedSlopes derives the next step's retained slopes from the
// t_{n+1} interface values
func (c *Euler) updateRetainedSlopes(ws *faceWork, X []float64) {
	for j := 0; j < c.Ncells; j++ {
		h := X[j+1] - X[j]
		c.SRho[j] = (ws.RhoMid[j+1] - ws.RhoMid[j]) / h
		c.SU[j] = (ws.UMid[j+1] - ws.UMid[j]) / h
		c.SP[j] = (ws.PMid[j+1] - ws.PMid[j]) / h
	}
}

// checkCell enforces the physical-validity invariant on an updated cell
func (c *Euler) checkCell(k, j int) error {
	var sp = c.Params
	if c.PNext[j] < sp.Eps || c.RhoNext[j] < sp.Eps {
		return utils.CalcErrorf("non-physical state on [%d, %d] (step, cell) - update: rho=%g p=%g",
			k, j, c.RhoNext[j], c.PNext[j])
	}
	if !finiteAll(c.RhoNext[j], c.UNext[j], c.PNext[j], c.ENext[j]) {
		return utils.CalcErrorf("NaN or Inf on [%d, %d] (step, cell) - update", k, j)
	}
	return nil
}

// faceGamma picks the adiabatic index at a face, upwinded by the interface
// velocity for two-component flow
func (c *Euler) faceGamma(j int, u float64) float64 {
	if c.CellGamma == nil {
		return c.Params.Gamma
	}
	switch {
	case j == 0:
		return c.gammaOf(0)
	case j == c.Ncells:
		return c.gammaOf(c.Ncells - 1)
	case u >= 0:
		return c.gammaOf(j - 1)
	default:
		return c.gammaOf(j)
	}
}

func finiteAll(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
