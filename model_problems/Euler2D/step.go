package Euler2D

import (
	"sync"
	"time"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/model_problems/Euler1D"
	"github.com/notargets/gohydro/riemann_solver"
	"github.com/notargets/gohydro/utils"
)

// ghost2D is the state just beyond a domain edge: cell averages, slopes
// normal to the edge, and slopes along it.
type ghost2D struct {
	Rho, U, V, P     float64
	SRho, SU, SV, SP float64
	TRho, TU, TV, TP float64
}

type faceWork2D struct {
	// x-direction fluxes and t_{n+1} interface values, (Nx+1)*Ny
	F1, F2, F3, F4       []float64
	xIRho, xIU, xIV, xIP []float64
	// y-direction fluxes and t_{n+1} interface values, Nx*(Ny+1)
	G1, G2, G3, G4       []float64
	yIRho, yIU, yIV, yIP []float64
}

func newFaceWork2D(nx, ny int) *faceWork2D {
	var (
		mx = (nx + 1) * ny
		my = nx * (ny + 1)
	)
	return &faceWork2D{
		F1: make([]float64, mx), F2: make([]float64, mx),
		F3: make([]float64, mx), F4: make([]float64, mx),
		xIRho: make([]float64, mx), xIU: make([]float64, mx),
		xIV: make([]float64, mx), xIP: make([]float64, mx),
		G1: make([]float64, my), G2: make([]float64, my),
		G3: make([]float64, my), G4: make([]float64, my),
		yIRho: make([]float64, my), yIU: make([]float64, my),
		yIV: make([]float64, my), yIP: make([]float64, my),
	}
}

func (c *Euler) xf(i, j int) int { return j*(c.Nx+1) + i }
func (c *Euler) yf(i, j int) int { return j*c.Nx + i }

func (c *Euler) step(k int) (cpuTime float64, err error) {
	tic := time.Now()
	defer func() {
		cpuTime = time.Since(tic).Seconds()
	}()
	if c.Scheme == Euler1D.SchemeGRP {
		c.reconstruct(k)
	}
	if c.Tau, err = c.CalculateDT(); err != nil {
		return
	}
	ws := newFaceWork2D(c.Nx, c.Ny)
	if err = c.fluxGeneratorX(k, ws); err != nil {
		return
	}
	if err = c.fluxGeneratorY(k, ws); err != nil {
		return
	}
	err = c.update(k, ws)
	return
}

// edgeStateX is the ghost cell average beyond the west or east edge of
// row j, used during reconstruction before any slopes exist.
func (c *Euler) edgeStateX(j int, west bool) (g edgeVals) {
	var n int
	if west {
		n = c.idx(0, j)
	} else {
		n = c.idx(c.Nx-1, j)
	}
	g = edgeVals{c.Rho[n], c.U[n], c.V[n], c.P[n]}
	code := InputParameters.BoundaryCode(c.Params.BoundaryX)
	if code == InputParameters.BCReflectiveFree {
		if west {
			code = InputParameters.BCReflective
		} else {
			code = InputParameters.BCFree
		}
	}
	switch code {
	case InputParameters.BCReflective:
		g.U = -g.U
	case InputParameters.BCInitial:
		if west {
			g = c.initW[j]
		} else {
			g = c.initE[j]
		}
	case InputParameters.BCPeriodic:
		if west {
			n = c.idx(c.Nx-1, j)
		} else {
			n = c.idx(0, j)
		}
		g = edgeVals{c.Rho[n], c.U[n], c.V[n], c.P[n]}
	}
	return
}

func (c *Euler) edgeStateY(i int, south bool) (g edgeVals) {
	var n int
	if south {
		n = c.idx(i, 0)
	} else {
		n = c.idx(i, c.Ny-1)
	}
	g = edgeVals{c.Rho[n], c.U[n], c.V[n], c.P[n]}
	code := InputParameters.BoundaryCode(c.Params.BoundaryY)
	if code == InputParameters.BCReflectiveFree {
		if south {
			code = InputParameters.BCReflective
		} else {
			code = InputParameters.BCFree
		}
	}
	switch code {
	case InputParameters.BCReflective:
		g.V = -g.V
	case InputParameters.BCInitial:
		if south {
			g = c.initS[i]
		} else {
			g = c.initN[i]
		}
	case InputParameters.BCPeriodic:
		if south {
			n = c.idx(i, c.Ny-1)
		} else {
			n = c.idx(i, 0)
		}
		g = edgeVals{c.Rho[n], c.U[n], c.V[n], c.P[n]}
	}
	return
}

// ghostX resolves the full west or east ghost of row j, slopes included
func (c *Euler) ghostX(j int, west bool) (g ghost2D) {
	var n int
	if west {
		n = c.idx(0, j)
	} else {
		n = c.idx(c.Nx-1, j)
	}
	code := InputParameters.BoundaryCode(c.Params.BoundaryX)
	if code == InputParameters.BCReflectiveFree {
		if west {
			code = InputParameters.BCReflective
		} else {
			code = InputParameters.BCFree
		}
	}
	switch code {
	case InputParameters.BCReflective:
		g = ghost2D{
			Rho: c.Rho[n], U: -c.U[n], V: c.V[n], P: c.P[n],
			SRho: -c.SxRho[n], SU: c.SxU[n], SV: -c.SxV[n], SP: -c.SxP[n],
			TRho: c.SyRho[n], TU: -c.SyU[n], TV: c.SyV[n], TP: c.SyP[n],
		}
	case InputParameters.BCFree:
		g = ghost2D{
			Rho: c.Rho[n], U: c.U[n], V: c.V[n], P: c.P[n],
			TRho: c.SyRho[n], TU: c.SyU[n], TV: c.SyV[n], TP: c.SyP[n],
		}
	case InputParameters.BCInitial:
		e := c.initW[j]
		if !west {
			e = c.initE[j]
		}
		g = ghost2D{Rho: e.Rho, U: e.U, V: e.V, P: e.P}
	case InputParameters.BCPeriodic:
		if west {
			n = c.idx(c.Nx-1, j)
		} else {
			n = c.idx(0, j)
		}
		g = ghost2D{
			Rho: c.Rho[n], U: c.U[n], V: c.V[n], P: c.P[n],
			SRho: c.SxRho[n], SU: c.SxU[n], SV: c.SxV[n], SP: c.SxP[n],
			TRho: c.SyRho[n], TU: c.SyU[n], TV: c.SyV[n], TP: c.SyP[n],
		}
	}
	return
}

func (c *Euler) ghostY(i int, south bool) (g ghost2D) {
	var n int
	if south {
		n = c.idx(i, 0)
	} else {
		n = c.idx(i, c.Ny-1)
	}
	code := InputParameters.BoundaryCode(c.Params.BoundaryY)
	if code == InputParameters.BCReflectiveFree {
		if south {
			code = InputParameters.BCReflective
		} else {
			code = InputParameters.BCFree
		}
	}
	switch code {
	case InputParameters.BCReflective:
		g = ghost2D{
			Rho: c.Rho[n], U: c.U[n], V: -c.V[n], P: c.P[n],
			SRho: -c.SyRho[n], SU: -c.SyU[n], SV: c.SyV[n], SP: -c.SyP[n],
			TRho: c.SxRho[n], TU: c.SxU[n], TV: -c.SxV[n], TP: c.SxP[n],
		}
	case InputParameters.BCFree:
		g = ghost2D{
			Rho: c.Rho[n], U: c.U[n], V: c.V[n], P: c.P[n],
			TRho: c.SxRho[n], TU: c.SxU[n], TV: c.SxV[n], TP: c.SxP[n],
		}
	case InputParameters.BCInitial:
		e := c.initS[i]
		if !south {
			e = c.initN[i]
		}
		g = ghost2D{Rho: e.Rho, U: e.U, V: e.V, P: e.P}
	case InputParameters.BCPeriodic:
		if south {
			n = c.idx(i, c.Ny-1)
		} else {
			n = c.idx(i, 0)
		}
		g = ghost2D{
			Rho: c.Rho[n], U: c.U[n], V: c.V[n], P: c.P[n],
			SRho: c.SyRho[n], SU: c.SyU[n], SV: c.SyV[n], SP: c.SyP[n],
			TRho: c.SxRho[n], TU: c.SxU[n], TV: c.SxV[n], TP: c.SxP[n],
		}
	}
	return
}

// reconstruct computes the limited slopes in both directions
func (c *Euler) reconstruct(k int) {
	var (
		sp    = c.Params
		alpha = sp.Alpha
	)
	limit := func(sx, sy, retained float64) float64 {
		if k == 1 {
			return utils.Minmod2(sx, sy)
		}
		return utils.Minmod3(alpha*sx, alpha*sy, retained)
	}
	for j := 0; j < c.Ny; j++ {
		for i := 0; i < c.Nx; i++ {
			var (
				n      = c.idx(i, j)
				wv, ev edgeVals
			)
			if i > 0 {
				m := c.idx(i-1, j)
				wv = edgeVals{c.Rho[m], c.U[m], c.V[m], c.P[m]}
			} else {
				wv = c.edgeStateX(j, true)
			}
			if i < c.Nx-1 {
				m := c.idx(i+1, j)
				ev = edgeVals{c.Rho[m], c.U[m], c.V[m], c.P[m]}
			} else {
				ev = c.edgeStateX(j, false)
			}
			c.SxRho[n] = limit((c.Rho[n]-wv.Rho)/c.Hx, (ev.Rho-c.Rho[n])/c.Hx, c.SxRho[n])
			c.SxU[n] = limit((c.U[n]-wv.U)/c.Hx, (ev.U-c.U[n])/c.Hx, c.SxU[n])
			c.SxV[n] = limit((c.V[n]-wv.V)/c.Hx, (ev.V-c.V[n])/c.Hx, c.SxV[n])
			c.SxP[n] = limit((c.P[n]-wv.P)/c.Hx, (ev.P-c.P[n])/c.Hx, c.SxP[n])

			var sv, nv edgeVals
			if j > 0 {
				m := c.idx(i, j-1)
				sv = edgeVals{c.Rho[m], c.U[m], c.V[m], c.P[m]}
			} else {
				sv = c.edgeStateY(i, true)
			}
			if j < c.Ny-1 {
				m := c.idx(i, j+1)
				nv = edgeVals{c.Rho[m], c.U[m], c.V[m], c.P[m]}
			} else {
				nv = c.edgeStateY(i, false)
			}
			c.SyRho[n] = limit((c.Rho[n]-sv.Rho)/c.Hy, (nv.Rho-c.Rho[n])/c.Hy, c.SyRho[n])
			c.SyU[n] = limit((c.U[n]-sv.U)/c.Hy, (nv.U-c.U[n])/c.Hy, c.SyU[n])
			c.SyV[n] = limit((c.V[n]-sv.V)/c.Hy, (nv.V-c.V[n])/c.Hy, c.SyV[n])
			c.SyP[n] = limit((c.P[n]-sv.P)/c.Hy, (nv.P-c.P[n])/c.Hy, c.SyP[n])
		}
	}
}

// fluxGeneratorX resolves every x-normal face and assembles the
// time-integrated fluxes F. Rows are independent and fan out over the
// partition map.
func (c *Euler) fluxGeneratorX(k int, ws *faceWork2D) error {
	var (
		wg   sync.WaitGroup
		errs = make([]error, c.pmRow.ParallelDegree)
	)
	for np := 0; np < c.pmRow.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			jmin, jmax := c.pmRow.GetBucketRange(np)
			for j := jmin; j < jmax; j++ {
				for i := 0; i <= c.Nx; i++ {
					if ferr := c.solveFaceX(k, i, j, ws); ferr != nil {
						if errs[np] == nil {
							errs[np] = ferr
						}
						return
					}
				}
			}
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *Euler) fluxGeneratorY(k int, ws *faceWork2D) error {
	var (
		wg   sync.WaitGroup
		errs = make([]error, c.pmCol.ParallelDegree)
	)
	for np := 0; np < c.pmCol.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			imin, imax := c.pmCol.GetBucketRange(np)
			for i := imin; i < imax; i++ {
				for j := 0; j <= c.Ny; j++ {
					if ferr := c.solveFaceY(k, i, j, ws); ferr != nil {
						if errs[np] == nil {
							errs[np] = ferr
						}
						return
					}
				}
			}
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *Euler) solveFaceX(k, i, j int, ws *faceWork2D) error {
	var (
		sp             = c.Params
		left, right    riemann_solver.State2D
		slopeL, slopeR riemann_solver.Slope2D
		tanL, tanR     riemann_solver.Slope2D
	)
	if i > 0 {
		n := c.idx(i-1, j)
		left = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   c.Rho[n] + 0.5*c.Hx*c.SxRho[n],
				U:     c.U[n] + 0.5*c.Hx*c.SxU[n],
				P:     c.P[n] + 0.5*c.Hx*c.SxP[n],
				Gamma: sp.Gamma,
			},
			V: c.V[n] + 0.5*c.Hx*c.SxV[n],
		}
		slopeL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SxRho[n], DU: c.SxU[n], DP: c.SxP[n]},
			DV:    c.SxV[n],
		}
		tanL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SyRho[n], DU: c.SyU[n], DP: c.SyP[n]},
			DV:    c.SyV[n],
		}
	} else {
		g := c.ghostX(j, true)
		left = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   g.Rho + 0.5*c.Hx*g.SRho,
				U:     g.U + 0.5*c.Hx*g.SU,
				P:     g.P + 0.5*c.Hx*g.SP,
				Gamma: sp.Gamma,
			},
			V: g.V + 0.5*c.Hx*g.SV,
		}
		slopeL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.SRho, DU: g.SU, DP: g.SP},
			DV:    g.SV,
		}
		tanL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.TRho, DU: g.TU, DP: g.TP},
			DV:    g.TV,
		}
	}
	if i < c.Nx {
		n := c.idx(i, j)
		right = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   c.Rho[n] - 0.5*c.Hx*c.SxRho[n],
				U:     c.U[n] - 0.5*c.Hx*c.SxU[n],
				P:     c.P[n] - 0.5*c.Hx*c.SxP[n],
				Gamma: sp.Gamma,
			},
			V: c.V[n] - 0.5*c.Hx*c.SxV[n],
		}
		slopeR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SxRho[n], DU: c.SxU[n], DP: c.SxP[n]},
			DV:    c.SxV[n],
		}
		tanR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SyRho[n], DU: c.SyU[n], DP: c.SyP[n]},
			DV:    c.SyV[n],
		}
	} else {
		g := c.ghostX(j, false)
		right = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   g.Rho - 0.5*c.Hx*g.SRho,
				U:     g.U - 0.5*c.Hx*g.SU,
				P:     g.P - 0.5*c.Hx*g.SP,
				Gamma: sp.Gamma,
			},
			V: g.V - 0.5*c.Hx*g.SV,
		}
		slopeR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.SRho, DU: g.SU, DP: g.SP},
			DV:    g.SV,
		}
		tanR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.TRho, DU: g.TU, DP: g.TP},
			DV:    g.TV,
		}
	}
	rho, u, v, p, iv, err := c.solveNormal(k, i, j, "x", left, right, slopeL, slopeR, tanL, tanR)
	if err != nil {
		return err
	}
	var (
		nf    = c.xf(i, j)
		gamma = sp.Gamma
	)
	ws.F1[nf] = rho * u
	ws.F2[nf] = ws.F1[nf]*u + p
	ws.F3[nf] = ws.F1[nf] * v
	ws.F4[nf] = (gamma/(gamma-1))*p*u + 0.5*ws.F1[nf]*(u*u+v*v)
	ws.xIRho[nf], ws.xIU[nf], ws.xIV[nf], ws.xIP[nf] = iv[0], iv[1], iv[2], iv[3]
	return nil
}

func (c *Euler) solveFaceY(k, i, j int, ws *faceWork2D) error {
	var (
		sp             = c.Params
		left, right    riemann_solver.State2D
		slopeL, slopeR riemann_solver.Slope2D
		tanL, tanR     riemann_solver.Slope2D
	)
	// The y-normal solve runs in the rotated frame: normal velocity is V,
	// tangential velocity is U.
	if j > 0 {
		n := c.idx(i, j-1)
		left = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   c.Rho[n] + 0.5*c.Hy*c.SyRho[n],
				U:     c.V[n] + 0.5*c.Hy*c.SyV[n],
				P:     c.P[n] + 0.5*c.Hy*c.SyP[n],
				Gamma: sp.Gamma,
			},
			V: c.U[n] + 0.5*c.Hy*c.SyU[n],
		}
		slopeL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SyRho[n], DU: c.SyV[n], DP: c.SyP[n]},
			DV:    c.SyU[n],
		}
		tanL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SxRho[n], DU: c.SxV[n], DP: c.SxP[n]},
			DV:    c.SxU[n],
		}
	} else {
		g := c.ghostY(i, true)
		left = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   g.Rho + 0.5*c.Hy*g.SRho,
				U:     g.V + 0.5*c.Hy*g.SV,
				P:     g.P + 0.5*c.Hy*g.SP,
				Gamma: sp.Gamma,
			},
			V: g.U + 0.5*c.Hy*g.SU,
		}
		slopeL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.SRho, DU: g.SV, DP: g.SP},
			DV:    g.SU,
		}
		tanL = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.TRho, DU: g.TV, DP: g.TP},
			DV:    g.TU,
		}
	}
	if j < c.Ny {
		n := c.idx(i, j)
		right = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   c.Rho[n] - 0.5*c.Hy*c.SyRho[n],
				U:     c.V[n] - 0.5*c.Hy*c.SyV[n],
				P:     c.P[n] - 0.5*c.Hy*c.SyP[n],
				Gamma: sp.Gamma,
			},
			V: c.U[n] - 0.5*c.Hy*c.SyU[n],
		}
		slopeR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SyRho[n], DU: c.SyV[n], DP: c.SyP[n]},
			DV:    c.SyU[n],
		}
		tanR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: c.SxRho[n], DU: c.SxV[n], DP: c.SxP[n]},
			DV:    c.SxU[n],
		}
	} else {
		g := c.ghostY(i, false)
		right = riemann_solver.State2D{
			State: riemann_solver.State{
				Rho:   g.Rho - 0.5*c.Hy*g.SRho,
				U:     g.V - 0.5*c.Hy*g.SV,
				P:     g.P - 0.5*c.Hy*g.SP,
				Gamma: sp.Gamma,
			},
			V: g.U - 0.5*c.Hy*g.SU,
		}
		slopeR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.SRho, DU: g.SV, DP: g.SP},
			DV:    g.SU,
		}
		tanR = riemann_solver.Slope2D{
			Slope: riemann_solver.Slope{DRho: g.TRho, DU: g.TV, DP: g.TP},
			DV:    g.TU,
		}
	}
	rho, vn, vt, p, iv, err := c.solveNormal(k, i, j, "y", left, right, slopeL, slopeR, tanL, tanR)
	if err != nil {
		return err
	}
	var (
		nf    = c.yf(i, j)
		gamma = sp.Gamma
	)
	ws.G1[nf] = rho * vn
	ws.G2[nf] = ws.G1[nf] * vt
	ws.G3[nf] = ws.G1[nf]*vn + p
	ws.G4[nf] = (gamma/(gamma-1))*p*vn + 0.5*ws.G1[nf]*(vn*vn+vt*vt)
	// rotate back: iv holds (rho, normal, tangential, p)
	ws.yIRho[nf], ws.yIU[nf], ws.yIV[nf], ws.yIP[nf] = iv[0], iv[2], iv[1], iv[3]
	return nil
}

// solveNormal resolves one face in its normal frame and returns the
// mid-point values (rho, normal velocity, tangential velocity, p) plus the
// t_{n+1} interface values for the retained slopes.
func (c *Euler) solveNormal(k, i, j int, dir string, left, right riemann_solver.State2D,
	slopeL, slopeR, tanL, tanR riemann_solver.Slope2D) (rho, un, ut, p float64, iv [4]float64, err error) {
	sp := c.Params
	if left.P < sp.Eps || left.Rho < sp.Eps || right.P < sp.Eps || right.Rho < sp.Eps {
		err = utils.CalcErrorf("non-physical state on [%d, %d, %d] (step, %s-face) - reconstruction",
			k, i, j, dir)
		return
	}
	if !left.Finite() || !right.Finite() {
		err = utils.CalcErrorf("NaN or Inf on [%d, %d, %d] (step, %s-face) - reconstruction",
			k, i, j, dir)
		return
	}
	if c.Scheme == Euler1D.SchemeGodunov {
		star, serr := riemann_solver.Exact(left.State, right.State, sp.Eps, sp.Tol, sp.MaxIter)
		if serr != nil {
			err = utils.CalcErrorf("[%d, %d, %d] (step, %s-face): %v", k, i, j, dir, serr)
			return
		}
		rho, un, p = star.Sample(left.State, right.State, 0)
		ut = left.V
		if un < 0 {
			ut = right.V
		}
		iv = [4]float64{rho, un, ut, p}
	} else {
		var tl, tr *riemann_solver.Slope2D
		if sp.Transverse {
			tl, tr = &tanL, &tanR
		}
		res, gerr := riemann_solver.GRPEulerDir2D(left, right, slopeL, slopeR, tl, tr, sp.Eps, sp.Acoustic)
		if gerr != nil {
			err = utils.CalcErrorf("[%d, %d, %d] (step, %s-face): %v", k, i, j, dir, gerr)
			return
		}
		rho, un, ut, p = res.Midpoint2D(c.Tau)
		iv = [4]float64{
			rho + 0.5*c.Tau*res.DRhoDt,
			un + 0.5*c.Tau*res.DUDt,
			ut + 0.5*c.Tau*res.DVDt,
			p + 0.5*c.Tau*res.DPDt,
		}
	}
	if p < sp.Eps || !finiteAll(rho, un, ut, p) {
		err = utils.CalcErrorf("non-physical state on [%d, %d, %d] (step, %s-face) - star",
			k, i, j, dir)
	}
	return
}

// update applies the unsplit conservative update over both directions
func (c *Euler) update(k int, ws *faceWork2D) (err error) {
	var (
		sp    = c.Params
		gamma = sp.Gamma
		nux   = c.Tau / c.Hx
		nuy   = c.Tau / c.Hy
	)
	for j := 0; j < c.Ny; j++ {
		for i := 0; i < c.Nx; i++ {
			var (
				n      = c.idx(i, j)
				w, e   = c.xf(i, j), c.xf(i+1, j)
				s, nth = c.yf(i, j), c.yf(i, j+1)
			)
			c.RhoNext[n] = c.Rho[n] - nux*(ws.F1[e]-ws.F1[w]) - nuy*(ws.G1[nth]-ws.G1[s])
			momx := c.Rho[n]*c.U[n] - nux*(ws.F2[e]-ws.F2[w]) - nuy*(ws.G2[nth]-ws.G2[s])
			momy := c.Rho[n]*c.V[n] - nux*(ws.F3[e]-ws.F3[w]) - nuy*(ws.G3[nth]-ws.G3[s])
			ene := c.Rho[n]*c.E[n] - nux*(ws.F4[e]-ws.F4[w]) - nuy*(ws.G4[nth]-ws.G4[s])
			c.UNext[n] = momx / c.RhoNext[n]
			c.VNext[n] = momy / c.RhoNext[n]
			c.ENext[n] = ene / c.RhoNext[n]
			c.PNext[n] = (ene - 0.5*(momx*c.UNext[n]+momy*c.VNext[n])) * (gamma - 1)
			if c.PNext[n] < sp.Eps || c.RhoNext[n] < sp.Eps {
				if err == nil {
					err = utils.CalcErrorf("non-physical state on [%d, %d, %d] (step, cell) - update: rho=%g p=%g",
						k, i, j, c.RhoNext[n], c.PNext[n])
				}
				continue
			}
			if !finiteAll(c.RhoNext[n], c.UNext[n], c.VNext[n], c.PNext[n], c.ENext[n]) {
				if err == nil {
					err = utils.CalcErrorf("NaN or Inf on [%d, %d, %d] (step, cell) - update", k, i, j)
				}
			}
		}
	}
	if c.Scheme == Euler1D.SchemeGRP && err == nil {
		for j := 0; j < c.Ny; j++ {
			for i := 0; i < c.Nx; i++ {
				var (
					n      = c.idx(i, j)
					w, e   = c.xf(i, j), c.xf(i+1, j)
					s, nth = c.yf(i, j), c.yf(i, j+1)
				)
				c.SxRho[n] = (ws.xIRho[e] - ws.xIRho[w]) / c.Hx
				c.SxU[n] = (ws.xIU[e] - ws.xIU[w]) / c.Hx
				c.SxV[n] = (ws.xIV[e] - ws.xIV[w]) / c.Hx
				c.SxP[n] = (ws.xIP[e] - ws.xIP[w]) / c.Hx
				c.SyRho[n] = (ws.yIRho[nth] - ws.yIRho[s]) / c.Hy
				c.SyU[n] = (ws.yIU[nth] - ws.yIU[s]) / c.Hy
				c.SyV[n] = (ws.yIV[nth] - ws.yIV[s]) / c.Hy
				c.SyP[n] = (ws.yIP[nth] - ws.yIP[s]) / c.Hy
			}
		}
	}
	return
}
