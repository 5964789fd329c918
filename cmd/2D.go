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

	"github.com/spf13/cobra"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/file_io"
	"github.com/notargets/gohydro/model_problems/Euler2D"
	"github.com/notargets/gohydro/utils"
)

type Model2D struct {
	DeckFile string
	DataDir  string
	OutDir   string
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional Eulerian solver on a uniform grid",
	Long: `
Two dimensional solver for the compressible Euler equations on a uniform
grid. The deck supplies NumX/NumY and DeltaX/DeltaY; the RHO/U/V/P field
files hold the cell averages in row-major order,

gohydro 2D -I deck.yaml -F data_in -O data_out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("2D called")
		m2d := &Model2D{}
		m2d.DeckFile, _ = cmd.Flags().GetString("inputDeck")
		m2d.DataDir, _ = cmd.Flags().GetString("dataDir")
		m2d.OutDir, _ = cmd.Flags().GetString("outDir")
		sp, err := processDeck(cmd, m2d.DeckFile)
		if err != nil {
			return err
		}
		sp.Dim = 2
		if cmd.Flags().Changed("transverse") {
			sp.Transverse, _ = cmd.Flags().GetBool("transverse")
		}
		return Run2D(m2d, sp)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputDeck", "I", "", "YAML parameter deck for the run")
	TwoDCmd.Flags().StringP("dataDir", "F", "", "directory holding the RHO/U/V/P initial data files")
	TwoDCmd.Flags().StringP("outDir", "O", "data_out", "directory for the result fields and run log")
	TwoDCmd.Flags().Bool("transverse", false, "couple the transversal derivatives in the GRP solve")
	addOverrideFlags(TwoDCmd)
}

func Run2D(m2d *Model2D, sp *InputParameters.SimParameters) (err error) {
	fs, err := file_io.ReadFieldSet(m2d.DataDir, file_io.SingleFluid2D)
	if err != nil {
		return err
	}
	if sp.NumX < 1 || sp.NumY < 1 {
		return utils.ArgsErrorf("NumX and NumY are required in two dimensions")
	}
	if sp.NumX*sp.NumY != fs.NumCells {
		return utils.DataErrorf("input count unequal: NumX*NumY=%d, num_cell=%d",
			sp.NumX*sp.NumY, fs.NumCells)
	}
	c, err := Euler2D.NewEuler(sp, sp.NumX, sp.NumY,
		fs.Get("RHO"), fs.Get("U"), fs.Get("V"), fs.Get("P"))
	if err != nil {
		return err
	}
	if err = c.Run(); err != nil {
		return err
	}
	out := &file_io.FieldSet{
		Names: []string{"RHO", "U", "V", "P", "E"},
		Fields: map[string][]float64{
			"RHO": c.Rho, "U": c.U, "V": c.V, "P": c.P, "E": c.E,
		},
		NumCells: fs.NumCells,
	}
	if err = file_io.WriteFieldSet(m2d.OutDir, out); err != nil {
		return err
	}
	return file_io.WriteRunLog(m2d.OutDir, c.StepTimes, sp.ActualSteps, sp.LastTau)
}
