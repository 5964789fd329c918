package EulerRadial

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
Radially symmetric Lagrangian engine for the compressible Euler equations.

The mesh is a sequence of radii R[0..m] moving with the fluid. The dimension
index M selects the geometry: M=1 planar, M=2 cylindrical, M=3 spherical.
Cell volumes are (R[j+1]^M - R[j]^M)/M and cell masses are constant for the
whole run. Face pressures and velocities come from the exact Riemann solver
(first order) or the radial GRP solve with its geometric source (second
order).
*/
type Euler struct {
	Params *InputParameters.SimParameters
	Scheme Euler1D.SchemeType
	State  Euler1D.SolverState
	Ncells int
	M      int // 1 planar, 2 cylindrical, 3 spherical

	Rho, U, P, E                 []float64
	RhoNext, UNext, PNext, ENext []float64
	R, RNext                     []float64 // len Ncells+1, cell boundary radii
	Mass                         []float64
	SRho, SU, SP                 []float64 // retained slopes in r
	CellGamma                    []float64 // nil for single component

	Time, Tau float64
	StepTimes []float64
	history   *history
	pm        *utils.PartitionMap
}

// NewEuler builds the radial engine from the parameter deck, the initial
// cell averages and the initial radii. R must have len(rho)+1 strictly
// increasing entries with R[0] >= 0.
func NewEuler(sp *InputParameters.SimParameters, rho, u, p, R []float64) (c *Euler, err error) {
	if err = sp.Validate(); err != nil {
		return nil, err
	}
	m := len(rho)
	if m == 0 || len(u) != m || len(p) != m {
		return nil, utils.DataErrorf("field lengths unequal: num_rho=%d, num_u=%d, num_p=%d",
			len(rho), len(u), len(p))
	}
	if len(R) != m+1 {
		return nil, utils.DataErrorf("radii length %d, expected %d", len(R), m+1)
	}
	if R[0] < 0 {
		return nil, utils.DataErrorf("negative inner radius %g", R[0])
	}
	M := sp.RadialDim
	if M < 1 || M > 3 {
		return nil, utils.ArgsErrorf("wrong spatial dimension number %d", M)
	}
	scheme, err := Euler1D.ParseScheme(sp.Scheme, sp.Order)
	if err != nil {
		return nil, err
	}
	if scheme != Euler1D.SchemeGodunov && scheme != Euler1D.SchemeGRP {
		return nil, utils.ArgsErrorf("scheme %s not available in the radial frame", sp.Scheme)
	}
	c = &Euler{
		Params:  sp,
		Scheme:  scheme,
		State:   Euler1D.Init,
		Ncells:  m,
		M:       M,
		Rho:     append([]float64{}, rho...),
		U:       append([]float64{}, u...),
		P:       append([]float64{}, p...),
		E:       make([]float64, m),
		RhoNext: make([]float64, m),
		UNext:   make([]float64, m),
		PNext:   make([]float64, m),
		ENext:   make([]float64, m),
		R:       append([]float64{}, R...),
		RNext:   make([]float64, m+1),
		Mass:    make([]float64, m),
		SRho:    make([]float64, m),
		SU:      make([]float64, m),
		SP:      make([]float64, m),
		history: newHistory(sp.PlotTimes, sp.Eps),
		pm:      utils.NewPartitionMap(runtime.NumCPU(), m+1),
	}
	for j := 0; j < m; j++ {
		if R[j+1]-R[j] < sp.Eps {
			return nil, utils.DataErrorf("radii not increasing at cell %d", j)
		}
		if rho[j] < sp.Eps || p[j] < sp.Eps {
			return nil, utils.DataErrorf("non-physical initial state at cell %d: rho=%g p=%g",
				j, rho[j], p[j])
		}
		gamma := c.gammaOf(j)
		c.E[j] = 0.5*u[j]*u[j] + p[j]/(gamma-1)/rho[j]
		c.Mass[j] = rho[j] * c.volume(R, j)
	}
	return c, nil
}

// SetCellGamma supplies a per-cell adiabatic index for two-component runs.
func (c *Euler) SetCellGamma(gamma []float64) error {
	if len(gamma) != c.Ncells {
		return utils.DataErrorf("input count unequal: num_gamma=%d, num_cell=%d",
			len(gamma), c.Ncells)
	}
	for j, g := range gamma {
		if g <= 1 {
			return utils.DataErrorf("non-physical gamma %g at cell %d", g, j)
		}
	}
	c.CellGamma = append([]float64{}, gamma...)
	return nil
}

func (c *Euler) gammaOf(j int) float64 {
	if c.CellGamma != nil {
		return c.CellGamma[j]
	}
	return c.Params.Gamma
}

// volume is the M-dimensional cell volume between R[j] and R[j+1]
func (c *Euler) volume(R []float64, j int) float64 {
	return (utils.POW(R[j+1], c.M) - utils.POW(R[j], c.M)) / float64(c.M)
}

// Run marches the solution to TotalTime or MaxSteps.
func (c *Euler) Run() (err error) {
	var (
		sp = c.Params
		k  int
	)
	c.State = Euler1D.Stepping
	fmt.Printf("Running radial Lagrangian %s, M=%d, Ncells=%d, CFL=%8.4f\n",
		sp.Scheme, c.M, c.Ncells, sp.CFL)
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
	c.P, c.PNext = c.PNext, c.P
	c.E, c.ENext = c.ENext, c.E
	c.R, c.RNext = c.RNext, c.R
}

// CalculateDT clips the CFL step to the remaining run time
func (c *Euler) CalculateDT(hOverS float64) (tau float64) {
	tau = c.Params.CFL * hOverS
	if c.Time+tau > c.Params.TotalTime {
		tau = c.Params.TotalTime - c.Time
	}
	return
}

// Totals returns the total mass and total energy of the domain, used by
// conservation checks.
func (c *Euler) Totals() (mass, energy float64) {
	ene := make([]float64, c.Ncells)
	for j := range ene {
		ene[j] = c.Mass[j] * c.E[j]
	}
	return floats.Sum(c.Mass), floats.Sum(ene)
}

func (c *Euler) Snapshots() []Snapshot { return c.history.Snaps }

// Snapshot is the full cell state at one recorded time
type Snapshot struct {
	Time            float64
	Rho, U, P, E, R []float64
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
			P:    append([]float64{}, c.P...),
			E:    append([]float64{}, c.E...),
			R:    append([]float64{}, c.R...),
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
