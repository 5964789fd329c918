package InputParameters

import (
	"fmt"
	"math"

	"github.com/ghodss/yaml"

	"github.com/notargets/gohydro/utils"
)

// Unset marks a parameter as "derive from input data or use the scheme
// default"
var Unset = math.Inf(1)

// Coordinate frames for the time-marching engine
const (
	FrameEulerian   = "EUL"
	FrameLagrangian = "LAG"
	FrameALE        = "ALE"
)

// Boundary condition codes, matching the integer codes of the input decks
type BoundaryCode int

const (
	BCInitial        BoundaryCode = -1  // ghost fixed to the initial edge values
	BCReflective     BoundaryCode = -2  // ghost velocity negated, scalars mirrored
	BCFree           BoundaryCode = -4  // zero-gradient
	BCPeriodic       BoundaryCode = -5  // ghost from the opposite edge
	BCReflectiveFree BoundaryCode = -24 // reflective left, free right
)

func (bc BoundaryCode) Valid() bool {
	switch bc {
	case BCInitial, BCReflective, BCFree, BCPeriodic, BCReflectiveFree:
		return true
	}
	return false
}

func (bc BoundaryCode) String() string {
	switch bc {
	case BCInitial:
		return "Initial"
	case BCReflective:
		return "Reflective"
	case BCFree:
		return "Free"
	case BCPeriodic:
		return "Periodic"
	case BCReflectiveFree:
		return "Reflective+Free"
	}
	return fmt.Sprintf("Unknown(%d)", int(bc))
}

// SimParameters are obtained from the YAML input deck. The struct is
// populated once before a run and treated as read-only by every solver
// component; only ActualSteps and LastTau are written back at termination
// for downstream reporting.
type SimParameters struct {
	Title      string    `yaml:"Title"`
	Dim        int       `yaml:"Dim"`
	TotalTime  float64   `yaml:"TotalTime"`
	MaxSteps   int       `yaml:"MaxSteps"`
	Gamma      float64   `yaml:"Gamma"`
	Gamma2     float64   `yaml:"Gamma2"` // second fluid component, if any
	CFL        float64   `yaml:"CFL"`
	Eps        float64   `yaml:"Eps"` // largest value treated as zero
	Tol        float64   `yaml:"Tol"` // Newton convergence tolerance
	MaxIter    int       `yaml:"MaxIter"`
	DeltaX     float64   `yaml:"DeltaX"`
	DeltaY     float64   `yaml:"DeltaY"`
	NumX       int       `yaml:"NumX"` // 2D grid shape; NumX*NumY must match the input data
	NumY       int       `yaml:"NumY"`
	Order      int       `yaml:"Order"`  // 1 Godunov, 2 GRP
	Scheme     string    `yaml:"Scheme"` // Riemann_exact, GRP, HLL, Roe, Roe_HLL
	Frame      string    `yaml:"Frame"`  // EUL, LAG, ALE
	BoundaryX  int       `yaml:"BoundaryX"`
	BoundaryY  int       `yaml:"BoundaryY"`
	Alpha      float64   `yaml:"Alpha"`      // limiter compressiveness
	Acoustic   float64   `yaml:"Acoustic"`   // GRP acoustic-case threshold
	RadialDim  int       `yaml:"RadialDim"`  // M: 1 planar, 2 cylindrical, 3 spherical
	Transverse bool      `yaml:"Transverse"` // 2D: couple transversal derivatives
	PlotTimes  []float64 `yaml:"PlotTimes"`

	// Results of the run, filled at termination
	ActualSteps int     `yaml:"-"`
	LastTau     float64 `yaml:"-"`
}

// NewSimParameters returns the parameter set with every derivable entry at
// the Unset sentinel and the scheme constants at their usual defaults.
func NewSimParameters() (sp *SimParameters) {
	sp = &SimParameters{
		Dim:       1,
		TotalTime: Unset,
		MaxSteps:  10000,
		Gamma:     1.4,
		Gamma2:    Unset,
		CFL:       0.45,
		Eps:       1.e-9,
		Tol:       1.e-9,
		MaxIter:   500,
		DeltaX:    Unset,
		DeltaY:    Unset,
		Order:     1,
		Scheme:    "Riemann_exact",
		Frame:     FrameEulerian,
		BoundaryX: int(BCFree),
		BoundaryY: int(BCFree),
		Alpha:     1.9,
		Acoustic:  0,
		RadialDim: 1,
	}
	return
}

func (sp *SimParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SimParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", sp.CFL)
	fmt.Printf("%8.5f\t\t= TotalTime\n", sp.TotalTime)
	fmt.Printf("%8.5f\t\t= Gamma\n", sp.Gamma)
	fmt.Printf("[%d]\t\t\t= Order\n", sp.Order)
	fmt.Printf("[%s]\t\t= Scheme\n", sp.Scheme)
	fmt.Printf("[%s]\t\t\t= Frame\n", sp.Frame)
	fmt.Printf("[%s]\t\t= BoundaryX\n", BoundaryCode(sp.BoundaryX))
	if sp.Dim == 2 {
		fmt.Printf("[%s]\t\t= BoundaryY\n", BoundaryCode(sp.BoundaryY))
	}
	fmt.Printf("%8.5f\t\t= Alpha (limiter)\n", sp.Alpha)
}

// Validate checks the entries a run cannot start without. Violations are
// configuration errors reported before any stepping begins.
func (sp *SimParameters) Validate() error {
	if sp.Order != 1 && sp.Order != 2 {
		return utils.ArgsErrorf("unsupported scheme order %d (want 1 or 2)", sp.Order)
	}
	switch sp.Frame {
	case FrameEulerian, FrameLagrangian, FrameALE:
	default:
		return utils.ArgsErrorf("unsupported coordinate frame %q", sp.Frame)
	}
	if !BoundaryCode(sp.BoundaryX).Valid() {
		return utils.ArgsErrorf("unrecognized boundary code %d", sp.BoundaryX)
	}
	if sp.Dim == 2 && !BoundaryCode(sp.BoundaryY).Valid() {
		return utils.ArgsErrorf("unrecognized boundary code %d (y)", sp.BoundaryY)
	}
	if sp.RadialDim < 1 || sp.RadialDim > 3 {
		return utils.ArgsErrorf("radial dimension index M=%d (want 1, 2 or 3)", sp.RadialDim)
	}
	if math.IsInf(sp.TotalTime, 1) && sp.MaxSteps <= 0 {
		return utils.ArgsErrorf("neither TotalTime nor MaxSteps is set")
	}
	if sp.CFL <= 0 || sp.CFL >= 1 {
		return utils.ArgsErrorf("CFL number %g outside (0,1)", sp.CFL)
	}
	return nil
}

// TwoComponent reports whether a second adiabatic index is configured
func (sp *SimParameters) TwoComponent() bool {
	return !math.IsInf(sp.Gamma2, 1) && sp.Gamma2 != sp.Gamma
}
