package file_io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gohydro/utils"
)

// WriteRunLog records the per-step CPU time samples and run totals
// alongside the field output.
func WriteRunLog(dir string, stepTimes []float64, steps int, lastTau float64) (err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return utils.FileErrorf("cannot create output directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, "log.txt")
	f, err := os.Create(path)
	if err != nil {
		return utils.FileErrorf("cannot create log file %s: %v", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "steps = %d\n", steps)
	fmt.Fprintf(w, "last_tau = %.10g\n", lastTau)
	fmt.Fprintf(w, "cpu_time_total = %.6g\n", floats.Sum(stepTimes))
	for k, t := range stepTimes {
		fmt.Fprintf(w, "%d %.6g\n", k+1, t)
	}
	if err = w.Flush(); err != nil {
		err = utils.DataErrorf("writing %s: %v", path, err)
	}
	return
}
