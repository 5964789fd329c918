package Euler2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/model_problems/Euler1D"
	"github.com/notargets/gohydro/sod_shock_tube"
	"github.com/notargets/gohydro/utils"
)

func gridParams(nx, ny int) *InputParameters.SimParameters {
	sp := InputParameters.NewSimParameters()
	sp.Dim = 2
	sp.TotalTime = 0.1
	sp.DeltaX = 1. / float64(nx)
	sp.DeltaY = 1. / float64(ny)
	sp.BoundaryX = int(InputParameters.BCFree)
	sp.BoundaryY = int(InputParameters.BCFree)
	return sp
}

func uniformFields(n int, rho0, u0, v0, p0 float64) (rho, u, v, p []float64) {
	rho = utils.ConstArray(n, rho0)
	u = utils.ConstArray(n, u0)
	v = utils.ConstArray(n, v0)
	p = utils.ConstArray(n, p0)
	return
}

func TestNewEulerValidation(t *testing.T) {
	sp := gridParams(8, 8)
	rho, u, v, p := uniformFields(64, 1, 0, 0, 1)

	sp.Frame = InputParameters.FrameLagrangian
	_, err := NewEuler(sp, 8, 8, rho, u, v, p)
	assert.Error(t, err)
	assert.Equal(t, 4, utils.ExitCode(err))

	sp = gridParams(8, 8)
	sp.DeltaY = InputParameters.Unset
	_, err = NewEuler(sp, 8, 8, rho, u, v, p)
	assert.Error(t, err)

	sp = gridParams(8, 8)
	_, err = NewEuler(sp, 8, 8, rho[:63], u, v, p)
	assert.Error(t, err)
	assert.Equal(t, 2, utils.ExitCode(err))

	sp = gridParams(8, 8)
	sp.Scheme = "HLL"
	_, err = NewEuler(sp, 8, 8, rho, u, v, p)
	assert.Error(t, err)
}

func TestUniformStateStaysUniform(t *testing.T) {
	sp := gridParams(12, 8)
	sp.BoundaryX = int(InputParameters.BCReflective)
	sp.BoundaryY = int(InputParameters.BCReflective)
	rho, u, v, p := uniformFields(12*8, 1.3, 0, 0, 0.7)
	c, err := NewEuler(sp, 12, 8, rho, u, v, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	for n := range c.Rho {
		assert.InDelta(t, 1.3, c.Rho[n], 1.e-13)
		assert.InDelta(t, 0.0, c.U[n], 1.e-13)
		assert.InDelta(t, 0.0, c.V[n], 1.e-13)
		assert.InDelta(t, 0.7, c.P[n], 1.e-13)
	}
}

// A Sod tube extruded along y stays one-dimensional: every row evolves
// identically and matches the analytic solution.
func TestSodExtrudedInY(t *testing.T) {
	var (
		nx, ny = 100, 4
		sp     = gridParams(nx, ny)
	)
	sp.TotalTime = 0.2
	rho := make([]float64, nx*ny)
	u := make([]float64, nx*ny)
	v := make([]float64, nx*ny)
	p := make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n := j*nx + i
			x := (float64(i) + 0.5) * sp.DeltaX
			if x < 0.5 {
				rho[n], p[n] = sod_shock_tube.RhoL, sod_shock_tube.PL
			} else {
				rho[n], p[n] = sod_shock_tube.RhoR, sod_shock_tube.PR
			}
		}
	}
	c, err := NewEuler(sp, nx, ny, rho, u, v, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.Equal(t, Euler1D.TerminatedByTime, c.State)

	for j := 1; j < ny; j++ {
		for i := 0; i < nx; i++ {
			assert.InDelta(t, c.Rho[i], c.Rho[j*nx+i], 1.e-11)
			assert.InDelta(t, c.V[j*nx+i], 0, 1.e-11)
		}
	}
	X := make([]float64, nx)
	for i := range X {
		X[i] = (float64(i) + 0.5) * sp.DeltaX
	}
	exactRho, _, _, _ := sod_shock_tube.Sample(X, 0.5, c.Time)
	assert.Less(t, sod_shock_tube.L1Error(c.Rho[:nx], exactRho), 0.05)
}

func TestCalculateDT(t *testing.T) {
	sp := gridParams(10, 10)
	rho, u, v, p := uniformFields(100, 1, 2, -1, 1)
	c, err := NewEuler(sp, 10, 10, rho, u, v, p)
	assert.NoError(t, err)
	tau, err := c.CalculateDT()
	assert.NoError(t, err)
	cs := math.Sqrt(1.4)
	want := sp.CFL * math.Min(c.Hx/(2+cs), c.Hy/(1+cs))
	assert.InDelta(t, want, tau, 1.e-12)
}

func TestConservationReflectiveBox(t *testing.T) {
	var (
		nx, ny = 16, 16
		sp     = gridParams(nx, ny)
	)
	sp.TotalTime = InputParameters.Unset
	sp.MaxSteps = 10
	sp.BoundaryX = int(InputParameters.BCReflective)
	sp.BoundaryY = int(InputParameters.BCReflective)
	rho := make([]float64, nx*ny)
	u := make([]float64, nx*ny)
	v := make([]float64, nx*ny)
	p := make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n := j*nx + i
			x := (float64(i) + 0.5) * sp.DeltaX
			y := (float64(j) + 0.5) * sp.DeltaY
			rho[n] = 1
			p[n] = 1 + math.Exp(-40*((x-0.5)*(x-0.5)+(y-0.5)*(y-0.5)))
		}
	}
	c, err := NewEuler(sp, nx, ny, rho, u, v, p)
	assert.NoError(t, err)
	m0, e0 := c.Totals()
	assert.NoError(t, c.Run())
	m1, e1 := c.Totals()
	assert.InDelta(t, m0, m1, 1.e-9)
	assert.InDelta(t, e0, e1, 1.e-9)
}

func TestGRPSecondOrder2D(t *testing.T) {
	sp := gridParams(20, 20)
	sp.Order = 2
	sp.Scheme = "GRP"
	sp.Transverse = true
	sp.TotalTime = 0.05
	rho, u, v, p := uniformFields(400, 1, 0.5, 0.25, 1)
	c, err := NewEuler(sp, 20, 20, rho, u, v, p)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	// Uniform advection is an exact solution of the scheme
	for n := range c.Rho {
		assert.InDelta(t, 1.0, c.Rho[n], 1.e-12)
		assert.InDelta(t, 0.5, c.U[n], 1.e-12)
		assert.InDelta(t, 0.25, c.V[n], 1.e-12)
	}
}
