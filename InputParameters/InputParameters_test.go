package InputParameters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/utils"
)

func TestParseDeck(t *testing.T) {
	deck := []byte(`
Title: Sod shock tube
CFL: 0.5
TotalTime: 0.2
Gamma: 1.4
Order: 2
Scheme: GRP
Frame: EUL
DeltaX: 0.01
BoundaryX: -4
PlotTimes: [0.1, 0.2]
`)
	sp := NewSimParameters()
	assert.NoError(t, sp.Parse(deck))
	assert.Equal(t, "Sod shock tube", sp.Title)
	assert.Equal(t, 0.5, sp.CFL)
	assert.Equal(t, 0.2, sp.TotalTime)
	assert.Equal(t, 2, sp.Order)
	assert.Equal(t, "GRP", sp.Scheme)
	assert.Equal(t, []float64{0.1, 0.2}, sp.PlotTimes)
	assert.NoError(t, sp.Validate())
}

func TestParseKeepsDefaults(t *testing.T) {
	sp := NewSimParameters()
	assert.NoError(t, sp.Parse([]byte("Title: defaults only\n")))
	assert.Equal(t, 0.45, sp.CFL)
	assert.Equal(t, "Riemann_exact", sp.Scheme)
	assert.Equal(t, FrameEulerian, sp.Frame)
	assert.True(t, math.IsInf(sp.TotalTime, 1))
	assert.True(t, math.IsInf(sp.DeltaX, 1))
	assert.Equal(t, 10000, sp.MaxSteps)
}

func TestParseBadYAML(t *testing.T) {
	sp := NewSimParameters()
	assert.Error(t, sp.Parse([]byte("CFL: [not, a, number\n")))
}

func TestValidate(t *testing.T) {
	mutations := map[string]func(sp *SimParameters){
		"order":     func(sp *SimParameters) { sp.Order = 3 },
		"frame":     func(sp *SimParameters) { sp.Frame = "polar" },
		"boundary":  func(sp *SimParameters) { sp.BoundaryX = -3 },
		"boundaryY": func(sp *SimParameters) { sp.Dim = 2; sp.BoundaryY = 7 },
		"radialDim": func(sp *SimParameters) { sp.RadialDim = 4 },
		"noLimit":   func(sp *SimParameters) { sp.MaxSteps = 0 },
		"cflHigh":   func(sp *SimParameters) { sp.CFL = 1.0 },
		"cflZero":   func(sp *SimParameters) { sp.CFL = 0 },
	}
	for name, mutate := range mutations {
		sp := NewSimParameters()
		mutate(sp)
		err := sp.Validate()
		assert.Error(t, err, name)
		assert.Equal(t, 4, utils.ExitCode(err), name)
	}

	sp := NewSimParameters()
	sp.MaxSteps = 0
	sp.TotalTime = 1.0
	assert.NoError(t, sp.Validate())
}

func TestBoundaryCode(t *testing.T) {
	for _, bc := range []BoundaryCode{BCInitial, BCReflective, BCFree, BCPeriodic, BCReflectiveFree} {
		assert.True(t, bc.Valid())
		assert.NotEmpty(t, bc.String())
	}
	assert.False(t, BoundaryCode(-3).Valid())
	assert.False(t, BoundaryCode(0).Valid())
}

func TestTwoComponent(t *testing.T) {
	sp := NewSimParameters()
	assert.False(t, sp.TwoComponent())
	sp.Gamma2 = 1.4
	assert.False(t, sp.TwoComponent())
	sp.Gamma2 = 1.6667
	assert.True(t, sp.TwoComponent())
}
