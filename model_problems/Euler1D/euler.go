package Euler1D

import (
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/utils"
)

// SolverState is the engine life cycle:
// Init -> Stepping -> one of the terminal states.
type SolverState int

const (
	Init SolverState = iota
	Stepping
	Converged
	TerminatedByTime
	TerminatedByStepLimit
	FatalError
)

func (ss SolverState) String() string {
	return [...]string{"Init", "Stepping", "Converged", "TerminatedByTime",
		"TerminatedByStepLimit", "FatalError"}[ss]
}

// SchemeType selects the interface solver
type SchemeType int

const (
	SchemeGodunov SchemeType = iota // first order, exact Riemann flux
	SchemeGRP                       // second order, GRP flux
	SchemeHLL
	SchemeRoe
	SchemeRoeHLL
)

func ParseScheme(name string, order int) (st SchemeType, err error) {
	switch name {
	case "", "Riemann_exact", "Godunov":
		st = SchemeGodunov
	case "GRP":
		st = SchemeGRP
	case "HLL":
		st = SchemeHLL
	case "Roe":
		st = SchemeRoe
	case "Roe_HLL":
		st = SchemeRoeHLL
	default:
		err = utils.ArgsErrorf("unknown scheme %q", name)
		return
	}
	if order == 2 && st != SchemeGRP {
		err = utils.ArgsErrorf("order 2 requires the GRP scheme, got %q", name)
	}
	return
}

// Euler is the 1D finite-volume time-marching engine for the compressible
// Euler equations on Eulerian, Lagrangian or ALE coordinates. It owns the
// cell state history and the node geometry for the lifetime of a run.
type Euler struct {
	Params *InputParameters.SimParameters
	Scheme SchemeType
	State  SolverState

	Ncells int
	// Working state, double buffered: current and next time level
	Rho, U, P, E                 []float64
	RhoNext, UNext, PNext, ENext []float64
	X, XNext                     []float64 // node coordinates, len Ncells+1
	Mass                         []float64 // cell masses, constant in Lagrangian frames
	SRho, SU, SP                 []float64 // retained slopes for minmod3
	CellGamma                    []float64 // per-cell gamma for two-component flow, optional

	boundary *BoundaryResolver
	history  *History

	Time      float64
	Tau       float64
	StepTimes []float64 // per-step CPU time samples

	pm *utils.PartitionMap
}

// NewEuler validates the configuration and the initial primitive fields and
// builds the engine in its Init state. The field arrays are copied; the
// caller's slices are not retained.
func NewEuler(sp *InputParameters.SimParameters, rho, u, p []float64) (c *Euler, err error) {
	if err = sp.Validate(); err != nil {
		return
	}
	m := len(rho)
	if m < 2 || len(u) != m || len(p) != m {
		err = utils.DataErrorf("field lengths unequal: rho=%d u=%d p=%d", m, len(u), len(p))
		return
	}
	h := sp.DeltaX
	if math.IsInf(h, 1) {
		h = 1. / float64(m)
	}
	scheme, err := ParseScheme(sp.Scheme, sp.Order)
	if err != nil {
		return
	}
	if sp.Frame != InputParameters.FrameEulerian &&
		(scheme == SchemeHLL || scheme == SchemeRoe || scheme == SchemeRoeHLL) {
		err = utils.ArgsErrorf("scheme %q runs on the Eulerian frame only", sp.Scheme)
		return
	}
	c = &Euler{
		Params:  sp,
		Scheme:  scheme,
		State:   Init,
		Ncells:  m,
		Rho:     append([]float64(nil), rho...),
		U:       append([]float64(nil), u...),
		P:       append([]float64(nil), p...),
		E:       make([]float64, m),
		RhoNext: make([]float64, m),
		UNext:   make([]float64, m),
		PNext:   make([]float64, m),
		ENext:   make([]float64, m),
		X:       make([]float64, m+1),
		XNext:   make([]float64, m+1),
		SRho:    make([]float64, m),
		SU:      make([]float64, m),
		SP:      make([]float64, m),
		history: newHistory(sp.PlotTimes, sp.Eps),
		pm:      utils.NewPartitionMap(runtime.NumCPU(), m+1),
	}
	for j := 0; j <= m; j++ {
		c.X[j] = h * float64(j)
	}
	for j := 0; j < m; j++ {
		gamma := c.gammaOf(j)
		if rho[j] < sp.Eps || p[j] < sp.Eps {
			err = utils.CalcErrorf("non-physical initial state in cell %d: rho=%g p=%g", j, rho[j], p[j])
			return
		}
		c.E[j] = 0.5*u[j]*u[j] + p[j]/(gamma-1)/rho[j]
	}
	if sp.Frame != InputParameters.FrameEulerian {
		c.Mass = make([]float64, m)
		for j := 0; j < m; j++ {
			c.Mass[j] = rho[j] * (c.X[j+1] - c.X[j])
		}
	}
	if c.boundary, err = NewBoundaryResolver(InputParameters.BoundaryCode(sp.BoundaryX), c); err != nil {
		return
	}
	return
}

// SetCellGamma enables two-component flow with a per-cell adiabatic index.
// Approximate solvers cannot handle disparate gammas, so the scheme is
// forced onto the exact-solver family.
func (c *Euler) SetCellGamma(gamma []float64) error {
	if len(gamma) != c.Ncells {
		return utils.DataErrorf("gamma field length %d, want %d", len(gamma), c.Ncells)
	}
	if c.Scheme != SchemeGodunov && c.Scheme != SchemeGRP {
		return utils.ArgsErrorf("two-component flow requires the exact or GRP scheme")
	}
	c.CellGamma = append([]float64(nil), gamma...)
	return nil
}

func (c *Euler) gammaOf(cell int) float64 {
	if c.CellGamma != nil {
		return c.CellGamma[cell]
	}
	return c.Params.Gamma
}

// Run executes the time-marching loop to completion. On a fatal calculation
// error the run halts at the end of the offending step and the engine is
// left in the FatalError state.
func (c *Euler) Run() (err error) {
	var (
		sp  = c.Params
		cpu float64
	)
	c.State = Stepping
	for k := 1; ; k++ {
		stepTime, stepErr := c.step(k)
		c.StepTimes = append(c.StepTimes, stepTime)
		cpu += stepTime
		if stepErr != nil {
			c.State = FatalError
			sp.ActualSteps = k
			sp.LastTau = c.Tau
			return stepErr
		}
		c.Time += c.Tau
		if math.IsInf(sp.TotalTime, 1) {
			utils.DispProgress(100*float64(k)/float64(sp.MaxSteps), k)
		} else {
			utils.DispProgress(100*c.Time/sp.TotalTime, k)
		}
		if !math.IsInf(sp.TotalTime, 1) && c.Time > sp.TotalTime-sp.Eps {
			c.State = TerminatedByTime
		} else if c.residual() < sp.Eps && k > 1 {
			c.State = Converged
		} else if sp.MaxSteps > 0 && k >= sp.MaxSteps {
			c.State = TerminatedByStepLimit
		}
		c.swap()
		c.history.capture(c)
		if c.State != Stepping {
			sp.ActualSteps = k
			sp.LastTau = c.Tau
			break
		}
	}
	fmt.Printf("\n%s after %d steps, %.4g seconds of CPU time\n", c.State, sp.ActualSteps, cpu)
	return
}

// residual is the largest density change of the last update, used for the
// steady-state (Converged) check
func (c *Euler) residual() (res float64) {
	for j := 0; j < c.Ncells; j++ {
		res = math.Max(res, math.Abs(c.RhoNext[j]-c.Rho[j]))
	}
	return
}

func (c *Euler) swap() {
	c.Rho, c.RhoNext = c.RhoNext, c.Rho
	c.U, c.UNext = c.UNext, c.U
	c.P, c.PNext = c.PNext, c.P
	c.E, c.ENext = c.ENext, c.E
	c.X, c.XNext = c.XNext, c.X
}

// CalculateDT selects the time step from the CFL condition given the
// minimum of h/(|u|+c) over the interfaces, clipped so the run does not
// overshoot the configured total time.
func (c *Euler) CalculateDT(hOverS float64) (tau float64) {
	var sp = c.Params
	tau = sp.CFL * hOverS
	if !math.IsInf(sp.TotalTime, 1) && c.Time+tau > sp.TotalTime-sp.Eps {
		tau = sp.TotalTime - c.Time
	}
	return
}

// Totals reports the domain sums of mass, momentum and energy, the
// conserved quantities of the scheme
func (c *Euler) Totals() (mass, momentum, energy float64) {
	var (
		m  = c.Ncells
		dm = make([]float64, m)
		dp = make([]float64, m)
		de = make([]float64, m)
	)
	for j := 0; j < m; j++ {
		h := c.X[j+1] - c.X[j]
		dm[j] = c.Rho[j] * h
		dp[j] = c.Rho[j] * c.U[j] * h
		de[j] = c.Rho[j] * c.E[j] * h
	}
	mass, momentum, energy = floats.Sum(dm), floats.Sum(dp), floats.Sum(de)
	return
}

// Snapshots returns the sampled output states collected during the run
func (c *Euler) Snapshots() []Snapshot {
	return c.history.Snaps
}
