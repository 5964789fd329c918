package utils

import "fmt"

const (
	NODETOL = 1.e-12
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func POW(x float64, pp int) (y float64) {
	switch pp {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	default:
		panic(fmt.Sprintf("POW supports exponents 0..4, got %d", pp))
	}
	return
}

// DispProgress overwrites the current terminal line with a percentage and
// step counter, mirroring the usual progress banner of batch solvers
func DispProgress(percent float64, step int) {
	fmt.Printf("\r%6.2f%% complete, step %d", percent, step)
}
