/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/file_io"
	"github.com/notargets/gohydro/model_problems/Euler1D"
	"github.com/notargets/gohydro/utils"
)

type Model1D struct {
	DeckFile string
	DataDir  string
	OutDir   string
}

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional solver, Eulerian, Lagrangian or ALE frame",
	Long: `
One dimensional solver for the compressible Euler equations. Reads the
parameter deck and the RHO/U/P field files, runs the configured scheme and
writes the final fields plus a run log,

gohydro 1D -I deck.yaml -F data_in -O data_out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("1D called")
		m1d := &Model1D{}
		m1d.DeckFile, _ = cmd.Flags().GetString("inputDeck")
		m1d.DataDir, _ = cmd.Flags().GetString("dataDir")
		m1d.OutDir, _ = cmd.Flags().GetString("outDir")
		sp, err := processDeck(cmd, m1d.DeckFile)
		if err != nil {
			return err
		}
		return Run1D(m1d, sp)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("inputDeck", "I", "", "YAML parameter deck for the run")
	OneDCmd.Flags().StringP("dataDir", "F", "", "directory holding the RHO/U/P initial data files")
	OneDCmd.Flags().StringP("outDir", "O", "data_out", "directory for the result fields and run log")
	addOverrideFlags(OneDCmd)
}

// addOverrideFlags registers the deck-override flags shared by the solver
// commands
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("CFL", 0, "CFL - increase for speedup, decrease for stability")
	cmd.Flags().Float64("finalTime", 0, "FinalTime - the target end time for the sim")
	cmd.Flags().Int("order", 0, "scheme order: 1 = Godunov, 2 = GRP")
	cmd.Flags().String("scheme", "", "scheme name: Riemann_exact, GRP, HLL, Roe, Roe_HLL")
}

// processDeck loads the YAML parameter deck and applies any command line
// overrides on top of it.
func processDeck(cmd *cobra.Command, path string) (sp *InputParameters.SimParameters, err error) {
	if len(path) == 0 {
		exampleFile := `
########################################
Title: "Sod Shock Tube"
TotalTime: 0.2
Gamma: 1.4
CFL: 0.45
DeltaX: 0.01
Order: 2
Scheme: GRP
Frame: EUL
BoundaryX: -4
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, utils.ArgsErrorf("must supply a parameter deck (-I, --inputDeck) in YAML format")
	}
	data, rerr := ioutil.ReadFile(path)
	if rerr != nil {
		return nil, utils.FileErrorf("cannot open parameter deck %s: %v", path, rerr)
	}
	sp = InputParameters.NewSimParameters()
	if err = sp.Parse(data); err != nil {
		return nil, utils.DataErrorf("parameter deck %s: %v", path, err)
	}
	if cmd.Flags().Changed("CFL") {
		sp.CFL, _ = cmd.Flags().GetFloat64("CFL")
	}
	if cmd.Flags().Changed("finalTime") {
		sp.TotalTime, _ = cmd.Flags().GetFloat64("finalTime")
	}
	if cmd.Flags().Changed("order") {
		sp.Order, _ = cmd.Flags().GetInt("order")
	}
	if cmd.Flags().Changed("scheme") {
		sp.Scheme, _ = cmd.Flags().GetString("scheme")
	}
	sp.Print()
	return sp, nil
}

// cellGammaFrom derives the per-cell adiabatic index for two-component
// runs: a GAMMA file wins, otherwise the PHI level set selects between the
// two configured indices.
func cellGammaFrom(sp *InputParameters.SimParameters, fs *file_io.FieldSet) []float64 {
	if fs.Has("GAMMA") {
		return fs.Get("GAMMA")
	}
	if !fs.Has("PHI") || !sp.TwoComponent() {
		return nil
	}
	var (
		phi   = fs.Get("PHI")
		gamma = make([]float64, len(phi))
	)
	for j, f := range phi {
		if f > 0.5 {
			gamma[j] = sp.Gamma
		} else {
			gamma[j] = sp.Gamma2
		}
	}
	return gamma
}

func Run1D(m1d *Model1D, sp *InputParameters.SimParameters) (err error) {
	schema := file_io.SingleFluid1D
	if sp.TwoComponent() {
		schema = file_io.MultiFluid1D
	}
	fs, err := file_io.ReadFieldSet(m1d.DataDir, schema)
	if err != nil {
		return err
	}
	c, err := Euler1D.NewEuler(sp, fs.Get("RHO"), fs.Get("U"), fs.Get("P"))
	if err != nil {
		return err
	}
	if gamma := cellGammaFrom(sp, fs); gamma != nil {
		if err = c.SetCellGamma(gamma); err != nil {
			return err
		}
	}
	if err = c.Run(); err != nil {
		return err
	}
	out := &file_io.FieldSet{
		Names: []string{"RHO", "U", "P", "E"},
		Fields: map[string][]float64{
			"RHO": c.Rho, "U": c.U, "P": c.P, "E": c.E,
		},
		NumCells: c.Ncells,
	}
	if sp.Frame != InputParameters.FrameEulerian {
		out.Names = append(out.Names, "X")
		out.Fields["X"] = c.X
	}
	if err = file_io.WriteFieldSet(m1d.OutDir, out); err != nil {
		return err
	}
	return file_io.WriteRunLog(m1d.OutDir, c.StepTimes, sp.ActualSteps, sp.LastTau)
}
