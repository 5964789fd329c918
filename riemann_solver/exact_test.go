package riemann_solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/utils"
)

func sodStates() (left, right State) {
	left = State{Rho: 1, U: 0, P: 1, Gamma: 1.4}
	right = State{Rho: 0.125, U: 0, P: 0.1, Gamma: 1.4}
	return
}

func TestExactSod(t *testing.T) {
	left, right := sodStates()
	star, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.NoError(t, err)
	// Star state of the Sod tube: left rarefaction, right shock
	assert.InDelta(t, 0.30313, star.PStar, 1.e-4)
	assert.InDelta(t, 0.92745, star.UStar, 1.e-4)
	assert.True(t, star.CRWLeft)
	assert.False(t, star.CRWRight)
	assert.InDelta(t, 0.42632, star.RhoStarL, 1.e-4)
	assert.InDelta(t, 0.26557, star.RhoStarR, 1.e-4)
}

func TestExactSymmetric(t *testing.T) {
	// Mirror-symmetric colliding states: the contact sits still and both
	// waves are shocks of equal strength
	left := State{Rho: 1, U: 2, P: 1, Gamma: 1.4}
	right := State{Rho: 1, U: -2, P: 1, Gamma: 1.4}
	star, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.NoError(t, err)
	assert.InDelta(t, 0, star.UStar, 1.e-9)
	assert.Greater(t, star.PStar, 1.0)
	assert.InDelta(t, star.RhoStarL, star.RhoStarR, 1.e-9)
}

func TestExactVacuum(t *testing.T) {
	// Receding rarefactions that open a vacuum must be rejected
	left := State{Rho: 1, U: -5, P: 0.1, Gamma: 1.4}
	right := State{Rho: 1, U: 5, P: 0.1, Gamma: 1.4}
	_, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vacuum")
	assert.Equal(t, 3, utils.ExitCode(err))
}

func TestExactInvalidInput(t *testing.T) {
	left, right := sodStates()
	left.P = -1
	_, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.Error(t, err)
	assert.Equal(t, 3, utils.ExitCode(err))
}

func TestExactNonConvergence(t *testing.T) {
	// Starving the Newton iteration must surface a calculation error
	// rather than an unconverged star state
	left, right := sodStates()
	_, err := Exact(left, right, 1.e-9, 1.e-15, 1)
	assert.Error(t, err)
	assert.Equal(t, 3, utils.ExitCode(err))
}

func TestExactTwoGamma(t *testing.T) {
	// Two-component interface: each side keeps its own adiabatic index and
	// the star velocity jump condition closes
	left := State{Rho: 1, U: 0, P: 1, Gamma: 1.4}
	right := State{Rho: 0.5, U: 0, P: 0.4, Gamma: 1.6}
	star, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.NoError(t, err)
	fL, _ := pressureFunc(star.PStar, left)
	fR, _ := pressureFunc(star.PStar, right)
	du := right.U - left.U
	assert.InDelta(t, 0, fL+fR+du, 1.e-6)
	assert.Greater(t, star.PStar, right.P)
	assert.Less(t, star.PStar, left.P)
}

func TestSample(t *testing.T) {
	left, right := sodStates()
	star, err := Exact(left, right, 1.e-9, 1.e-9, 500)
	assert.NoError(t, err)
	// Far field returns the input states untouched
	rho, u, p := star.Sample(left, right, -10)
	assert.Equal(t, [3]float64{left.Rho, left.U, left.P}, [3]float64{rho, u, p})
	rho, u, p = star.Sample(left, right, 10)
	assert.Equal(t, [3]float64{right.Rho, right.U, right.P}, [3]float64{rho, u, p})
	// On the t-axis the Sod solution is in the star region left of the
	// contact
	rho, u, p = star.Sample(left, right, 0)
	assert.InDelta(t, star.RhoStarL, rho, 1.e-9)
	assert.InDelta(t, star.UStar, u, 1.e-9)
	assert.InDelta(t, star.PStar, p, 1.e-9)
	// Monotone velocity through the left fan
	_, uHead, _ := star.Sample(left, right, left.U-left.SoundSpeed()+1.e-6)
	assert.Greater(t, u, uHead)
}
