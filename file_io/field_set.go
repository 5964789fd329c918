package file_io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/gohydro/utils"
)

/*
	Field-set input: one plain-text numeric file per primitive field, flat
	whitespace-separated values. All files of a set must agree on the value
	count; the count becomes the run's cell count.
*/

// Schema is the ordered list of field names active under a model
// configuration. Optional names may be absent from the input directory.
type Schema struct {
	Required []string
	Optional []string
}

var (
	SingleFluid1D = Schema{Required: []string{"RHO", "U", "P"}}
	SingleFluid2D = Schema{Required: []string{"RHO", "U", "V", "P"}}
	MultiFluid1D  = Schema{Required: []string{"RHO", "U", "P"}, Optional: []string{"PHI", "GAMMA"}}
	// Radii have one more value than the cell fields and load as their own set
	Radial1D  = Schema{Required: []string{"RHO", "U", "P"}, Optional: []string{"PHI", "GAMMA"}}
	RadiiOnly = Schema{Optional: []string{"R"}}
)

// FieldSet maps field names to their value arrays, preserving schema order.
type FieldSet struct {
	Names    []string
	Fields   map[string][]float64
	NumCells int
}

func (fs *FieldSet) Get(name string) []float64 {
	return fs.Fields[name]
}

func (fs *FieldSet) Has(name string) bool {
	_, ok := fs.Fields[name]
	return ok
}

// ReadFieldSet loads every schema field from dir, trying name.txt then
// name.dat. Missing required files are file errors; count mismatches
// between files are data errors.
func ReadFieldSet(dir string, schema Schema) (fs *FieldSet, err error) {
	fs = &FieldSet{Fields: make(map[string][]float64)}
	load := func(name string, required bool) error {
		var (
			path string
			f    *os.File
			oerr error
		)
		for _, ext := range []string{".txt", ".dat"} {
			path = filepath.Join(dir, name+ext)
			if f, oerr = os.Open(path); oerr == nil {
				break
			}
		}
		if oerr != nil {
			if !required {
				return nil
			}
			return utils.FileErrorf("cannot open initial data file %s in %s", name, dir)
		}
		defer f.Close()
		vals, rerr := readValues(f, path)
		if rerr != nil {
			return rerr
		}
		if len(vals) < 1 {
			return utils.DataErrorf("no values in initial data file %s", path)
		}
		if fs.NumCells == 0 {
			fs.NumCells = len(vals)
		} else if len(vals) != fs.NumCells {
			return utils.DataErrorf("input count unequal: num_%s=%d, num_cell=%d",
				name, len(vals), fs.NumCells)
		}
		fs.Names = append(fs.Names, name)
		fs.Fields[name] = vals
		return nil
	}
	for _, name := range schema.Required {
		if err = load(name, true); err != nil {
			return
		}
	}
	for _, name := range schema.Optional {
		if err = load(name, false); err != nil {
			return
		}
	}
	return
}

func readValues(f *os.File, path string) (vals []float64, err error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, tok := range strings.Fields(scanner.Text()) {
			v, perr := strconv.ParseFloat(tok, 64)
			if perr != nil {
				err = utils.DataErrorf("%s:%d: bad value %q", path, line, tok)
				return
			}
			vals = append(vals, v)
		}
	}
	if serr := scanner.Err(); serr != nil {
		err = utils.DataErrorf("reading %s: %v", path, serr)
	}
	return
}

// WriteFieldSet writes one file per field into dir, one value per line.
func WriteFieldSet(dir string, fs *FieldSet) (err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return utils.FileErrorf("cannot create output directory %s: %v", dir, err)
	}
	for _, name := range fs.Names {
		if err = writeField(filepath.Join(dir, name+".txt"), fs.Fields[name]); err != nil {
			return
		}
	}
	return
}

func writeField(path string, vals []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return utils.FileErrorf("cannot create output file %s: %v", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, v := range vals {
		fmt.Fprintf(w, "%.10g\n", v)
	}
	if err = w.Flush(); err != nil {
		err = utils.DataErrorf("writing %s: %v", path, err)
	}
	return
}
