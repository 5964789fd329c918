package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/spf13/cobra"

	"github.com/notargets/gohydro/utils"
)

func TestProcessDeck(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
CFL: 0.5
TotalTime: 0.15
Gamma: 1.4
DeltaX: 0.02
Order: 2
Scheme: GRP
Frame: EUL
BoundaryX: -4
`)
	deck := filepath.Join(t.TempDir(), "deck.yaml")
	if err = os.WriteFile(deck, fileInput, 0o644); err != nil {
		panic(err)
	}
	cmd := &cobra.Command{}
	addOverrideFlags(cmd)
	sp, err := processDeck(cmd, deck)
	if err != nil {
		panic(err)
	}
	assert.Equal(t, sp.Title, "Test Case")
	assert.Equal(t, sp.CFL, 0.5)
	assert.Equal(t, sp.TotalTime, 0.15)
	assert.Equal(t, sp.Scheme, "GRP")

	// Command line overrides win over the deck
	_ = cmd.Flags().Set("CFL", "0.8")
	_ = cmd.Flags().Set("scheme", "Riemann_exact")
	_ = cmd.Flags().Set("order", "1")
	sp, err = processDeck(cmd, deck)
	if err != nil {
		panic(err)
	}
	assert.Equal(t, sp.CFL, 0.8)
	assert.Equal(t, sp.Scheme, "Riemann_exact")
	assert.Equal(t, sp.Order, 1)

	// A missing deck prints the example and reports a usage error
	_, err = processDeck(cmd, "")
	assert.Equal(t, utils.ExitCode(err), 4)
}

func TestRun1D(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Sod Tube
CFL: 0.45
TotalTime: 0.1
Gamma: 1.4
DeltaX: 0.1
Order: 1
Scheme: Riemann_exact
Frame: EUL
BoundaryX: -4
`)
	dataDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	deck := filepath.Join(dataDir, "deck.yaml")
	writeField := func(name, content string) {
		if err = os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			panic(err)
		}
	}
	if err = os.WriteFile(deck, fileInput, 0o644); err != nil {
		panic(err)
	}
	writeField("RHO.txt", "1 1 1 1 1 0.125 0.125 0.125 0.125 0.125\n")
	writeField("U.txt", "0 0 0 0 0 0 0 0 0 0\n")
	writeField("P.txt", "1 1 1 1 1 0.1 0.1 0.1 0.1 0.1\n")

	cmd := &cobra.Command{}
	addOverrideFlags(cmd)
	sp, err := processDeck(cmd, deck)
	if err != nil {
		panic(err)
	}
	m1d := &Model1D{DeckFile: deck, DataDir: dataDir, OutDir: outDir}
	if err = Run1D(m1d, sp); err != nil {
		panic(err)
	}
	for _, name := range []string{"RHO.txt", "U.txt", "P.txt", "E.txt", "log.txt"} {
		if _, serr := os.Stat(filepath.Join(outDir, name)); serr != nil {
			t.Errorf("missing output %s", name)
		}
	}

	// An empty data directory is a file error
	m1d.DataDir = t.TempDir()
	err = Run1D(m1d, sp)
	assert.Equal(t, utils.ExitCode(err), 1)
}
