package file_io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gohydro/utils"
)

func writeTestField(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadFieldSet(t *testing.T) {
	dir := t.TempDir()
	writeTestField(t, dir, "RHO.txt", "1.0 1.0\n0.125 0.125\n")
	writeTestField(t, dir, "U.txt", "0 0 0 0\n")
	writeTestField(t, dir, "P.dat", "1\n1\n0.1\n0.1\n")

	fs, err := ReadFieldSet(dir, SingleFluid1D)
	assert.NoError(t, err)
	assert.Equal(t, 4, fs.NumCells)
	assert.Equal(t, []string{"RHO", "U", "P"}, fs.Names)
	assert.Equal(t, []float64{1, 1, 0.125, 0.125}, fs.Get("RHO"))
	assert.Equal(t, []float64{1, 1, 0.1, 0.1}, fs.Get("P"))
	assert.False(t, fs.Has("PHI"))
}

func TestReadFieldSetMissingRequired(t *testing.T) {
	dir := t.TempDir()
	writeTestField(t, dir, "RHO.txt", "1 1\n")
	_, err := ReadFieldSet(dir, SingleFluid1D)
	assert.Error(t, err)
	assert.Equal(t, 1, utils.ExitCode(err))
	assert.Contains(t, err.Error(), "U")
}

func TestReadFieldSetCountMismatch(t *testing.T) {
	dir := t.TempDir()
	writeTestField(t, dir, "RHO.txt", "1 1 1\n")
	writeTestField(t, dir, "U.txt", "0 0\n")
	writeTestField(t, dir, "P.txt", "1 1 1\n")
	_, err := ReadFieldSet(dir, SingleFluid1D)
	assert.Error(t, err)
	assert.Equal(t, 2, utils.ExitCode(err))
	assert.Contains(t, err.Error(), "num_U=2")
}

func TestReadFieldSetBadToken(t *testing.T) {
	dir := t.TempDir()
	writeTestField(t, dir, "RHO.txt", "1 bogus\n")
	writeTestField(t, dir, "U.txt", "0 0\n")
	writeTestField(t, dir, "P.txt", "1 1\n")
	_, err := ReadFieldSet(dir, SingleFluid1D)
	assert.Error(t, err)
	assert.Equal(t, 2, utils.ExitCode(err))
	assert.Contains(t, err.Error(), "bogus")
}

func TestReadFieldSetOptional(t *testing.T) {
	dir := t.TempDir()
	writeTestField(t, dir, "RHO.txt", "1 0.125\n")
	writeTestField(t, dir, "U.txt", "0 0\n")
	writeTestField(t, dir, "P.txt", "1 0.1\n")
	writeTestField(t, dir, "GAMMA.txt", "1.4 1.6\n")
	fs, err := ReadFieldSet(dir, MultiFluid1D)
	assert.NoError(t, err)
	assert.True(t, fs.Has("GAMMA"))
	assert.False(t, fs.Has("PHI"))
	assert.Equal(t, []float64{1.4, 1.6}, fs.Get("GAMMA"))
}

func TestRadiiLoadAsOwnSet(t *testing.T) {
	dir := t.TempDir()
	writeTestField(t, dir, "R.txt", "0 0.25 0.5 0.75 1\n")
	fs, err := ReadFieldSet(dir, RadiiOnly)
	assert.NoError(t, err)
	assert.True(t, fs.Has("R"))
	assert.Equal(t, 5, fs.NumCells)

	// Absent radii are not an error, the caller falls back to DeltaX
	fs, err = ReadFieldSet(t.TempDir(), RadiiOnly)
	assert.NoError(t, err)
	assert.False(t, fs.Has("R"))
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := &FieldSet{
		Names: []string{"RHO", "U", "P"},
		Fields: map[string][]float64{
			"RHO": {1, 0.125},
			"U":   {0, 0.5},
			"P":   {1, 0.1},
		},
		NumCells: 2,
	}
	assert.NoError(t, WriteFieldSet(dir, fs))
	back, err := ReadFieldSet(dir, SingleFluid1D)
	assert.NoError(t, err)
	assert.Equal(t, fs.Fields["RHO"], back.Get("RHO"))
	assert.Equal(t, fs.Fields["U"], back.Get("U"))
	assert.Equal(t, fs.Fields["P"], back.Get("P"))
}
