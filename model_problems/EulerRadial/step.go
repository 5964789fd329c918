package EulerRadial

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/model_problems/Euler1D"
	"github.com/notargets/gohydro/riemann_solver"
	"github.com/notargets/gohydro/utils"
)

// ghost is the mirrored or extrapolated state just beyond a domain edge
type ghost struct {
	Rho, U, P, H float64
	SRho, SU, SP float64
	Gamma        float64
}

type faceWork struct {
	UMid, PMid []float64
	RhoMid     []float64
	RhoT       []float64
	UT, PT     []float64
	HoS        []float64
	inner      ghost
	outer      ghost
}

func newFaceWork(m int) *faceWork {
	return &faceWork{
		UMid:   make([]float64, m+1),
		PMid:   make([]float64, m+1),
		RhoMid: make([]float64, m+1),
		RhoT:   make([]float64, m+1),
		UT:     make([]float64, m+1),
		PT:     make([]float64, m+1),
		HoS:    make([]float64, m+1),
	}
}

// resolveGhosts mirrors the first cell across the axis and applies the
// outer boundary code. The axis is always reflective.
func (c *Euler) resolveGhosts() (inner, outer ghost, err error) {
	m := c.Ncells
	inner = ghost{
		Rho:   c.Rho[0],
		U:     -c.U[0],
		P:     c.P[0],
		H:     c.R[1] - c.R[0],
		SRho:  -c.SRho[0],
		SU:    c.SU[0],
		SP:    -c.SP[0],
		Gamma: c.gammaOf(0),
	}
	h := c.R[m] - c.R[m-1]
	switch InputParameters.BoundaryCode(c.Params.BoundaryX) {
	case InputParameters.BCReflective:
		outer = ghost{
			Rho:   c.Rho[m-1],
			U:     -c.U[m-1],
			P:     c.P[m-1],
			H:     h,
			SRho:  -c.SRho[m-1],
			SU:    c.SU[m-1],
			SP:    -c.SP[m-1],
			Gamma: c.gammaOf(m - 1),
		}
	case InputParameters.BCFree, InputParameters.BCInitial:
		outer = ghost{
			Rho:   c.Rho[m-1],
			U:     c.U[m-1],
			P:     c.P[m-1],
			H:     h,
			Gamma: c.gammaOf(m - 1),
		}
	default:
		err = utils.ArgsErrorf("boundary code %d not available in the radial frame",
			c.Params.BoundaryX)
	}
	return
}

func (c *Euler) step(k int) (cpuTime float64, err error) {
	tic := time.Now()
	defer func() {
		cpuTime = time.Since(tic).Seconds()
	}()
	var (
		m  = c.Ncells
		ws = newFaceWork(m)
	)
	if c.Scheme == Euler1D.SchemeGRP {
		c.reconstruct(k)
	}
	if ws.inner, ws.outer, err = c.resolveGhosts(); err != nil {
		return
	}

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
	err = c.update(k, ws)
	return
}

// reconstruct computes the limited slopes in r for every cell
func (c *Euler) reconstruct(k int) {
	var (
		m     = c.Ncells
		alpha = c.Params.Alpha
	)
	for j := 0; j < m; j++ {
		var sRhoL, sUL, sPL, sRhoR, sUR, sPR float64
		if j > 0 {
			h := 0.5 * (c.R[j+1] - c.R[j-1])
			sRhoL = (c.Rho[j] - c.Rho[j-1]) / h
			sUL = (c.U[j] - c.U[j-1]) / h
			sPL = (c.P[j] - c.P[j-1]) / h
		} else {
			// axis mirror: scalar gradients vanish, velocity is odd
			h := c.R[1] - c.R[0]
			sUL = 2 * c.U[0] / h
		}
		if j < m-1 {
			h := 0.5 * (c.R[j+2] - c.R[j])
			sRhoR = (c.Rho[j+1] - c.Rho[j]) / h
			sUR = (c.U[j+1] - c.U[j]) / h
			sPR = (c.P[j+1] - c.P[j]) / h
		} else {
			switch InputParameters.BoundaryCode(c.Params.BoundaryX) {
			case InputParameters.BCReflective:
				h := c.R[m] - c.R[m-1]
				sUR = -2 * c.U[m-1] / h
			default:
				// free or initial: zero gradient
			}
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

func (c *Euler) solveFace(k, j int, ws *faceWork) (err error) {
	var (
		m              = c.Ncells
		sp             = c.Params
		left, right    riemann_solver.State
		slopeL, slopeR riemann_solver.Slope
		hL, hR         float64
	)
	if j > 0 {
		hL = c.R[j] - c.R[j-1]
		left = riemann_solver.State{
			Rho:   c.Rho[j-1] + 0.5*hL*c.SRho[j-1],
			U:     c.U[j-1] + 0.5*hL*c.SU[j-1],
			P:     c.P[j-1] + 0.5*hL*c.SP[j-1],
			Gamma: c.gammaOf(j - 1),
		}
		slopeL = riemann_solver.Slope{DRho: c.SRho[j-1], DU: c.SU[j-1], DP: c.SP[j-1]}
	} else {
		g := ws.inner
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
		hR = c.R[j+1] - c.R[j]
		right = riemann_solver.State{
			Rho:   c.Rho[j] - 0.5*hR*c.SRho[j],
			U:     c.U[j] - 0.5*hR*c.SU[j],
			P:     c.P[j] - 0.5*hR*c.SP[j],
			Gamma: c.gammaOf(j),
		}
		slopeR = riemann_solver.Slope{DRho: c.SRho[j], DU: c.SU[j], DP: c.SP[j]}
	} else {
		g := ws.outer
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
	ws.HoS[j] = math.Min(
		hL/(math.Abs(left.U)+left.SoundSpeed()),
		hR/(math.Abs(right.U)+right.SoundSpeed()))

	if c.Scheme == Euler1D.SchemeGodunov {
		star, serr := riemann_solver.Exact(left, right, sp.Eps, sp.Tol, sp.MaxIter)
		if serr != nil {
			return utils.CalcErrorf("[%d, %d] (step, face): %v", k, j, serr)
		}
		ws.RhoMid[j] = 0.5 * (star.RhoStarL + star.RhoStarR)
		ws.UMid[j], ws.PMid[j] = star.UStar, star.PStar
	} else {
		res, gerr := riemann_solver.GRPRadial(left, right, slopeL, slopeR,
			c.R[j], c.M, sp.Eps, sp.Acoustic)
		if gerr != nil {
			return utils.CalcErrorf("[%d, %d] (step, face): %v", k, j, gerr)
		}
		ws.RhoMid[j], ws.UMid[j], ws.PMid[j] = res.Rho, res.U, res.P
		ws.RhoT[j], ws.UT[j], ws.PT[j] = res.DRhoDt, res.DUDt, res.DPDt
	}
	if ws.PMid[j] < sp.Eps || !finiteAll(ws.RhoMid[j], ws.UMid[j], ws.PMid[j]) {
		return utils.CalcErrorf("non-physical state on [%d, %d] (step, face) - star", k, j)
	}
	return nil
}

// update moves the radii with the interface velocity and applies the
// Lagrangian update in mass coordinates. The momentum equation carries the
// p dA geometric source so that a uniform pressure field stays at rest.
func (c *Euler) update(k int, ws *faceWork) (err error) {
	var (
		m    = c.Ncells
		sp   = c.Params
		tau  = c.Tau
		area = make([]float64, m+1)
	)
	for j := 0; j <= m; j++ {
		ws.UMid[j] += 0.5 * tau * ws.UT[j]
		ws.PMid[j] += 0.5 * tau * ws.PT[j]
		c.RNext[j] = c.R[j] + tau*ws.UMid[j]
		rmid := c.R[j] + 0.5*tau*ws.UMid[j]
		area[j] = utils.POW(rmid, c.M-1)
	}
	if c.R[0] < sp.Eps {
		// pin the axis
		c.RNext[0], ws.UMid[0] = c.R[0], 0
		area[0] = utils.POW(c.R[0], c.M-1)
	}
	for j := 0; j < m; j++ {
		var (
			vn    = c.volume(c.RNext, j)
			gamma = c.gammaOf(j)
		)
		if vn < sp.Eps {
			if err == nil {
				err = utils.CalcErrorf("mesh tangling on [%d, %d] (step, cell): volume %g", k, j, vn)
			}
			continue
		}
		pbar := 0.5 * (ws.PMid[j] + ws.PMid[j+1])
		c.RhoNext[j] = c.Mass[j] / vn
		c.UNext[j] = c.U[j] - tau/c.Mass[j]*
			(area[j+1]*ws.PMid[j+1]-area[j]*ws.PMid[j]-pbar*(area[j+1]-area[j]))
		c.ENext[j] = c.E[j] - tau/c.Mass[j]*
			(area[j+1]*ws.PMid[j+1]*ws.UMid[j+1]-area[j]*ws.PMid[j]*ws.UMid[j])
		c.PNext[j] = (gamma - 1) * c.RhoNext[j] * (c.ENext[j] - 0.5*c.UNext[j]*c.UNext[j])
		if c.PNext[j] < sp.Eps || c.RhoNext[j] < sp.Eps {
			if err == nil {
				err = utils.CalcErrorf("non-physical state on [%d, %d] (step, cell) - update: rho=%g p=%g",
					k, j, c.RhoNext[j], c.PNext[j])
			}
			continue
		}
		if !finiteAll(c.RhoNext[j], c.UNext[j], c.PNext[j], c.ENext[j]) {
			if err == nil {
				err = utils.CalcErrorf("NaN or Inf on [%d, %d] (step, cell) - update", k, j)
			}
		}
	}
	if c.Scheme == Euler1D.SchemeGRP && err == nil {
		for j := 0; j <= m; j++ {
			ws.RhoMid[j] += tau * ws.RhoT[j]
			ws.UMid[j] += 0.5 * tau * ws.UT[j]
			ws.PMid[j] += 0.5 * tau * ws.PT[j]
		}
		for j := 0; j < m; j++ {
			h := c.RNext[j+1] - c.RNext[j]
			c.SRho[j] = (ws.RhoMid[j+1] - ws.RhoMid[j]) / h
			c.SU[j] = (ws.UMid[j+1] - ws.UMid[j]) / h
			c.SP[j] = (ws.PMid[j+1] - ws.PMid[j]) / h
		}
	}
	return
}
