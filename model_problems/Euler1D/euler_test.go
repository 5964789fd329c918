package Euler1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/sod_shock_tube"
	"github.com/notargets/gohydro/utils"
)

func sodParams(m int) (sp *InputParameters.SimParameters, rho, u, p []float64) {
	sp = InputParameters.NewSimParameters()
	sp.TotalTime = 0.2
	sp.MaxSteps = 10000
	sp.DeltaX = 1. / float64(m)
	sp.BoundaryX = int(InputParameters.BCFree)
	rho = make([]float64, m)
	u = make([]float64, m)
	p = make([]float64, m)
	for j := 0; j < m; j++ {
		x := (float64(j) + 0.5) * sp.DeltaX
		if x < 0.5 {
			rho[j], p[j] = sod_shock_tube.RhoL, sod_shock_tube.PL
		} else {
			rho[j], p[j] = sod_shock_tube.RhoR, sod_shock_tube.PR
		}
	}
	return
}

func cellCenters(c *Euler) (X []float64) {
	X = make([]float64, c.Ncells)
	for j := range X {
		X[j] = 0.5 * (c.X[j] + c.X[j+1])
	}
	return
}

func TestParseScheme(t *testing.T) {
	for name, want := range map[string]SchemeType{
		"":              SchemeGodunov,
		"Riemann_exact": SchemeGodunov,
		"Godunov":       SchemeGodunov,
		"GRP":           SchemeGRP,
		"HLL":           SchemeHLL,
		"Roe":           SchemeRoe,
		"Roe_HLL":       SchemeRoeHLL,
	} {
		st, err := ParseScheme(name, 1)
		assert.NoError(t, err)
		assert.Equal(t, want, st)
	}
	_, err := ParseScheme("SuperBee", 1)
	assert.Error(t, err)
	assert.Equal(t, 4, utils.ExitCode(err))
	// Second order is the GRP flux only
	_, err = ParseScheme("HLL", 2)
	assert.Error(t, err)
	_, err = ParseScheme("GRP", 2)
	assert.NoError(t, err)
}

func TestNewEulerValidation(t *testing.T) {
	sp, rho, u, p := sodParams(10)
	sp.BoundaryX = -3
	_, err := NewEuler(sp, rho, u, p)
	assert.Error(t, err)
	assert.Equal(t, 4, utils.ExitCode(err))

	sp, rho, u, p = sodParams(10)
	_, err = NewEuler(sp, rho, u[:9], p)
	assert.Error(t, err)
	assert.Equal(t, 2, utils.ExitCode(err))

	sp, rho, u, p = sodParams(10)
	p[3] = -0.1
	_, err = NewEuler(sp, rho, u, p)
	assert.Error(t, err)
	assert.Equal(t, 3, utils.ExitCode(err))

	sp, rho, u, p = sodParams(10)
	sp.Frame = InputParameters.FrameLagrangian
	sp.Scheme = "HLL"
	_, err = NewEuler(sp, rho, u, p)
	assert.Error(t, err)
}

func TestBoundaryResolver(t *testing.T) {
	sp, rho, u, p := sodParams(10)
	for j := range u {
		u[j] = 0.1 * float64(j+1)
	}
	// Periodic ghosts are the opposite edge cells
	sp.BoundaryX = int(InputParameters.BCPeriodic)
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	left, right := c.boundary.ResolveStates(c)
	assert.Equal(t, c.Rho[9], left.Rho)
	assert.Equal(t, c.U[9], left.U)
	assert.Equal(t, c.Rho[0], right.Rho)
	assert.Equal(t, c.U[0], right.U)

	// Reflective mirrors the edge cell and negates the velocity
	sp.BoundaryX = int(InputParameters.BCReflective)
	c, err = NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	left, right = c.boundary.ResolveStates(c)
	assert.Equal(t, -c.U[0], left.U)
	assert.Equal(t, -c.U[9], right.U)
	assert.Equal(t, c.Rho[0], left.Rho)

	c.SRho[0], c.SU[0], c.SP[0] = 0.1, 0.2, 0.3
	c.boundary.ResolveSlopes(c, &left, &right)
	assert.Equal(t, -0.1, left.SRho)
	assert.Equal(t, 0.2, left.SU)
	assert.Equal(t, -0.3, left.SP)
}

func TestSodGodunov(t *testing.T) {
	sp, rho, u, p := sodParams(100)
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.Equal(t, TerminatedByTime, c.State)
	assert.InDelta(t, 0.2, c.Time, 1.e-6)

	exactRho, exactU, exactP, _ := sod_shock_tube.Sample(cellCenters(c), 0.5, c.Time)
	assert.Less(t, sod_shock_tube.L1Error(c.Rho, exactRho), 0.05)
	assert.Less(t, sod_shock_tube.L1Error(c.U, exactU), 0.1)
	assert.Less(t, sod_shock_tube.L1Error(c.P, exactP), 0.05)
}

func TestSodGRPSharper(t *testing.T) {
	sp, rho, u, p := sodParams(100)
	god, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	assert.NoError(t, god.Run())

	sp2, rho, u, p := sodParams(100)
	sp2.Order = 2
	sp2.Scheme = "GRP"
	grp, err := NewEuler(sp2, rho, u, p)
	assert.NoError(t, err)
	assert.NoError(t, grp.Run())

	exactRho, _, _, _ := sod_shock_tube.Sample(cellCenters(grp), 0.5, grp.Time)
	grpErr := sod_shock_tube.L1Error(grp.Rho, exactRho)
	exactRho, _, _, _ = sod_shock_tube.Sample(cellCenters(god), 0.5, god.Time)
	godErr := sod_shock_tube.L1Error(god.Rho, exactRho)
	assert.Less(t, grpErr, godErr)
}

func TestSodLagrangian(t *testing.T) {
	sp, rho, u, p := sodParams(100)
	sp.Frame = InputParameters.FrameLagrangian
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	massBefore := 0.0
	for j := 0; j < c.Ncells; j++ {
		massBefore += c.Mass[j]
	}
	assert.NoError(t, c.Run())
	assert.Equal(t, TerminatedByTime, c.State)

	// Cell masses are constant; total mass from the moved mesh matches
	mass, _, _ := c.Totals()
	assert.InDelta(t, massBefore, mass, 1.e-9)

	exactRho, _, _, _ := sod_shock_tube.Sample(cellCenters(c), 0.5, c.Time)
	assert.Less(t, sod_shock_tube.L1Error(c.Rho, exactRho), 0.05)
}

func TestConservationPeriodic(t *testing.T) {
	// Smooth density wave on a periodic domain: the telescoping flux sum
	// conserves mass, momentum and energy exactly
	var (
		m  = 64
		sp = InputParameters.NewSimParameters()
	)
	sp.TotalTime = InputParameters.Unset
	sp.MaxSteps = 25
	sp.DeltaX = 1. / float64(m)
	sp.BoundaryX = int(InputParameters.BCPeriodic)
	rho := make([]float64, m)
	u := make([]float64, m)
	p := make([]float64, m)
	for j := 0; j < m; j++ {
		x := (float64(j) + 0.5) * sp.DeltaX
		rho[j] = 1 + 0.2*math.Sin(2*math.Pi*x)
		u[j] = 1
		p[j] = 1
	}
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	m0, p0, e0 := c.Totals()
	assert.NoError(t, c.Run())
	m1, p1, e1 := c.Totals()
	assert.InDelta(t, m0, m1, 1.e-11)
	assert.InDelta(t, p0, p1, 1.e-11)
	assert.InDelta(t, e0, e1, 1.e-11)
}

func TestCFLBound(t *testing.T) {
	sp, rho, u, p := sodParams(50)
	sp.MaxSteps = 1
	sp.TotalTime = InputParameters.Unset
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	// First order reconstructs the cell averages, so the face signal speeds
	// are exactly the cell values
	bound := math.Inf(1)
	h := sp.DeltaX
	for j := 0; j < c.Ncells; j++ {
		cs := math.Sqrt(c.gammaOf(j) * p[j] / rho[j])
		bound = math.Min(bound, h/(math.Abs(u[j])+cs))
	}
	assert.NoError(t, c.Run())
	assert.LessOrEqual(t, sp.LastTau, sp.CFL*bound+1.e-12)
	assert.Greater(t, sp.LastTau, 0.0)
}

func TestRunWithoutStepLimit(t *testing.T) {
	// A deck with a final time and no step cap marches to the final time
	sp, rho, u, p := sodParams(20)
	sp.MaxSteps = 0
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.Equal(t, TerminatedByTime, c.State)
	assert.InDelta(t, 0.2, c.Time, 1.e-6)
	assert.Greater(t, c.Params.ActualSteps, 0)
}

func TestSteadyStateConverges(t *testing.T) {
	sp, _, _, _ := sodParams(10)
	sp.TotalTime = InputParameters.Unset
	sp.MaxSteps = 50
	rho := utils.ConstArray(10, 1)
	u := utils.ConstArray(10, 0)
	p := utils.ConstArray(10, 1)
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.Equal(t, Converged, c.State)
	assert.Less(t, c.Params.ActualSteps, 50)
}

func TestHistoryCapture(t *testing.T) {
	sp, rho, u, p := sodParams(50)
	sp.PlotTimes = []float64{0.1, 0.2}
	c, err := NewEuler(sp, rho, u, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	snaps := c.Snapshots()
	assert.Len(t, snaps, 2)
	assert.GreaterOrEqual(t, snaps[0].Time, 0.1-sp.Eps)
	assert.Less(t, snaps[0].Time, 0.2)
	assert.InDelta(t, 0.2, snaps[1].Time, 1.e-6)
	assert.Len(t, snaps[0].Rho, 50)
}
