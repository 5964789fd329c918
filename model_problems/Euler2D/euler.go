package Euler2D

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/model_problems/Euler1D"
	"github.com/notargets/gohydro/utils"
)

/*
Two-dimensional Eulerian engine on a uniform Nx x Ny grid.

Cell fields are flat row-major slices indexed j*Nx+i with i the x index and
j the y index. Each step runs an x-direction and a y-direction flux
generator over the cell faces and applies one unsplit forward-Euler update.
The second-order scheme resolves the generalized Riemann problem normal to
each face; with the Transverse option the upwind-side tangential
derivatives are folded in as source terms on the interface time
derivatives.
*/
type Euler struct {
	Params *InputParameters.SimParameters
	Scheme Euler1D.SchemeType
	State  Euler1D.SolverState
	Nx, Ny int
	Hx, Hy float64

	Rho, U, V, P, E                     []float64
	RhoNext, UNext, VNext, PNext, ENext []float64

	// Retained slopes per direction
	SxRho, SxU, SxV, SxP []float64
	SyRho, SyU, SyV, SyP []float64

	// Initial edge values, captured for the Initial boundary code
	initW, initE []edgeVals // per y row
	initS, initN []edgeVals // per x column

	Time, Tau float64
	StepTimes []float64
	history   *history
	pmRow     *utils.PartitionMap // partitions the y rows (x sweep)
	pmCol     *utils.PartitionMap // partitions the x columns (y sweep)
}

type edgeVals struct {
	Rho, U, V, P float64
}

// NewEuler builds the 2D engine from the parameter deck and the initial
// cell averages, each of length nx*ny in row-major order.
func NewEuler(sp *InputParameters.SimParameters, nx, ny int, rho, u, v, p []float64) (c *Euler, err error) {
	if err = sp.Validate(); err != nil {
		return nil, err
	}
	if sp.Frame != InputParameters.FrameEulerian {
		return nil, utils.ArgsErrorf("frame %s not available in two dimensions", sp.Frame)
	}
	if nx < 1 || ny < 1 {
		return nil, utils.ArgsErrorf("grid %dx%d", nx, ny)
	}
	m := nx * ny
	if len(rho) != m || len(u) != m || len(v) != m || len(p) != m {
		return nil, utils.DataErrorf("field lengths unequal: num_rho=%d, num_u=%d, num_v=%d, num_p=%d, num_cell=%d",
			len(rho), len(u), len(v), len(p), m)
	}
	if math.IsInf(sp.DeltaX, 1) || math.IsInf(sp.DeltaY, 1) {
		return nil, utils.ArgsErrorf("DeltaX and DeltaY are required in two dimensions")
	}
	scheme, err := Euler1D.ParseScheme(sp.Scheme, sp.Order)
	if err != nil {
		return nil, err
	}
	if scheme != Euler1D.SchemeGodunov && scheme != Euler1D.SchemeGRP {
		return nil, utils.ArgsErrorf("scheme %s not available in two dimensions", sp.Scheme)
	}
	c = &Euler{
		Params:  sp,
		Scheme:  scheme,
		State:   Euler1D.Init,
		Nx:      nx,
		Ny:      ny,
		Hx:      sp.DeltaX,
		Hy:      sp.DeltaY,
		Rho:     append([]float64{}, rho...),
		U:       append([]float64{}, u...),
		V:       append([]float64{}, v...),
		P:       append([]float64{}, p...),
		E:       make([]float64, m),
		RhoNext: make([]float64, m),
		UNext:   make([]float64, m),
		VNext:   make([]float64, m),
		PNext:   make([]float64, m),
		ENext:   make([]float64, m),
		SxRho:   make([]float64, m),
		SxU:     make([]float64, m),
		SxV:     make([]float64, m),
		SxP:     make([]float64, m),
		SyRho:   make([]float64, m),
		SyU:     make([]float64, m),
		SyV:     make([]float64, m),
		SyP:     make([]float64, m),
		history: newHistory(sp.PlotTimes, sp.Eps),
		pmRow:   utils.NewPartitionMap(runtime.NumCPU(), ny),
		pmCol:   utils.NewPartitionMap(runtime.NumCPU(), nx),
	}
	gamma := sp.Gamma
	for n := 0; n < m; n++ {
		if rho[n] < sp.Eps || p[n] < sp.Eps {
			return nil, utils.DataErrorf("non-physical initial state at cell %d: rho=%g p=%g",
				n, rho[n], p[n])
		}
		c.E[n] = 0.5*(u[n]*u[n]+v[n]*v[n]) + p[n]/(gamma-1)/rho[n]
	}
	c.captureInitialEdges()
	return c, nil
}

func (c *Euler) idx(i, j int) int { return j*c.Nx + i }

func (c *Euler) captureInitialEdges() {
	c.initW = make([]edgeVals, c.Ny)
	c.initE = make([]edgeVals, c.Ny)
	for j := 0; j < c.Ny; j++ {
		w, e := c.idx(0, j), c.idx(c.Nx-1, j)
		c.initW[j] = edgeVals{c.Rho[w], c.U[w], c.V[w], c.P[w]}
		c.initE[j] = edgeVals{c.Rho[e], c.U[e], c.V[e], c.P[e]}
	}
	c.initS = make([]edgeVals, c.Nx)
	c.initN = make([]edgeVals, c.Nx)
	for i := 0; i < c.Nx; i++ {
		s, n := c.idx(i, 0), c.idx(i, c.Ny-1)
		c.initS[i] = edgeVals{c.Rho[s], c.U[s], c.V[s], c.P[s]}
		c.initN[i] = edgeVals{c.Rho[n], c.U[n], c.V[n], c.P[n]}
	}
}

// Run marches the solution to TotalTime or MaxSteps.
func (c *Euler) Run() (err error) {
	var (
		sp = c.Params
		k  int
	)
	c.State = Euler1D.Stepping
	fmt.Printf("Running 2D %s, %dx%d cells, CFL=%8.4f\n",
		sp.Scheme, c.Nx, c.Ny, sp.CFL)
	for k = 1; ; k++ {
		stepTime, serr := c.step(k)
		c.StepTimes = append(c.StepTimes, stepTime)
		if serr != nil {
			c.State = Euler1D.FatalError
			sp.ActualSteps, sp.LastTau = k, c.Tau
			return serr
		}
		c.Time += c.Tau
		utils.DispProgress(100*c.Time/sp.TotalTime, k)
		c.swap()
		c.history.capture(c)
		if c.Time >= sp.TotalTime-sp.Eps {
			c.State = Euler1D.TerminatedByTime
			break
		}
		if sp.MaxSteps > 0 && k >= sp.MaxSteps {
			c.State = Euler1D.TerminatedByStepLimit
			break
		}
	}
	sp.ActualSteps, sp.LastTau = k, c.Tau
	fmt.Printf("\nDone: %d steps, time %8.5f, last tau %8.5g\n", k, c.Time, c.Tau)
	return nil
}

func (c *Euler) swap() {
	c.Rho, c.RhoNext = c.RhoNext, c.Rho
	c.U, c.UNext = c.UNext, c.U
	c.V, c.VNext = c.VNext, c.V
	c.P, c.PNext = c.PNext, c.P
	c.E, c.ENext = c.ENext, c.E
}

// CalculateDT picks the CFL step from the cell-based signal speeds in both
// directions, clipped to the remaining run time.
func (c *Euler) CalculateDT() (tau float64, err error) {
	var (
		sp    = c.Params
		gamma = sp.Gamma
		hOS   = math.Inf(1)
	)
	for n := range c.Rho {
		if c.P[n] < sp.Eps || c.Rho[n] < sp.Eps {
			return 0, utils.CalcErrorf("non-physical state at cell %d: rho=%g p=%g",
				n, c.Rho[n], c.P[n])
		}
		cs := math.Sqrt(gamma * c.P[n] / c.Rho[n])
		hOS = math.Min(hOS, c.Hx/(math.Abs(c.U[n])+cs))
		hOS = math.Min(hOS, c.Hy/(math.Abs(c.V[n])+cs))
	}
	tau = sp.CFL * hOS
	if c.Time+tau > sp.TotalTime {
		tau = sp.TotalTime - c.Time
	}
	return
}

// Totals returns the total mass and total energy over the domain
func (c *Euler) Totals() (mass, energy float64) {
	vol := c.Hx * c.Hy
	ene := make([]float64, len(c.Rho))
	for n := range ene {
		ene[n] = c.Rho[n] * c.E[n] * vol
	}
	return floats.Sum(c.Rho) * vol, floats.Sum(ene)
}

func (c *Euler) Snapshots() []Snapshot { return c.history.Snaps }

// Snapshot is the full cell state at one recorded time
type Snapshot struct {
	Time            float64
	Rho, U, V, P, E []float64
}

type history struct {
	Times []float64
	Snaps []Snapshot
	next  int
	eps   float64
}

func newHistory(times []float64, eps float64) *history {
	h := &history{
		Times: append([]float64{}, times...),
		eps:   eps,
	}
	sort.Float64s(h.Times)
	return h
}

func (h *history) capture(c *Euler) {
	for h.next < len(h.Times) && c.Time >= h.Times[h.next]-h.eps {
		h.Snaps = append(h.Snaps, Snapshot{
			Time: c.Time,
			Rho:  append([]float64{}, c.Rho...),
			U:    append([]float64{}, c.U...),
			V:    append([]float64{}, c.V...),
			P:    append([]float64{}, c.P...),
			E:    append([]float64{}, c.E...),
		})
		h.next++
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
