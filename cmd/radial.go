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
	"math"

	"github.com/spf13/cobra"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/file_io"
	"github.com/notargets/gohydro/model_problems/EulerRadial"
	"github.com/notargets/gohydro/utils"
)

type ModelRadial struct {
	DeckFile string
	DataDir  string
	OutDir   string
}

// RadialCmd represents the radial command
var RadialCmd = &cobra.Command{
	Use:   "radial",
	Short: "Radially symmetric Lagrangian solver",
	Long: `
Radially symmetric Lagrangian solver for the compressible Euler equations.
The dimension index M selects the geometry: 1 planar, 2 cylindrical, 3
spherical. The mesh moves with the fluid and cell masses stay constant,

gohydro radial -I deck.yaml -F data_in -O data_out -M 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("radial called")
		mr := &ModelRadial{}
		mr.DeckFile, _ = cmd.Flags().GetString("inputDeck")
		mr.DataDir, _ = cmd.Flags().GetString("dataDir")
		mr.OutDir, _ = cmd.Flags().GetString("outDir")
		sp, err := processDeck(cmd, mr.DeckFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("M") {
			sp.RadialDim, _ = cmd.Flags().GetInt("M")
		}
		return RunRadial(mr, sp)
	},
}

func init() {
	rootCmd.AddCommand(RadialCmd)
	RadialCmd.Flags().StringP("inputDeck", "I", "", "YAML parameter deck for the run")
	RadialCmd.Flags().StringP("dataDir", "F", "", "directory holding the RHO/U/P initial data files")
	RadialCmd.Flags().StringP("outDir", "O", "data_out", "directory for the result fields and run log")
	RadialCmd.Flags().IntP("M", "M", 0, "spatial dimension number: 1 planar, 2 cylindrical, 3 spherical")
	addOverrideFlags(RadialCmd)
}

func RunRadial(mr *ModelRadial, sp *InputParameters.SimParameters) (err error) {
	fs, err := file_io.ReadFieldSet(mr.DataDir, file_io.Radial1D)
	if err != nil {
		return err
	}
	// Uniform initial radii over [0, NumCells*DeltaX] unless an R file is
	// supplied alongside the fields
	var R []float64
	rfs, err := file_io.ReadFieldSet(mr.DataDir, file_io.RadiiOnly)
	if err != nil {
		return err
	}
	if rfs.Has("R") {
		R = rfs.Get("R")
	} else {
		h := sp.DeltaX
		if math.IsInf(h, 1) || h <= 0 {
			return utils.ArgsErrorf("DeltaX is required without an R file")
		}
		R = make([]float64, fs.NumCells+1)
		for j := range R {
			R[j] = float64(j) * h
		}
	}
	c, err := EulerRadial.NewEuler(sp, fs.Get("RHO"), fs.Get("U"), fs.Get("P"), R)
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
		Names: []string{"RHO", "U", "P", "E", "R"},
		Fields: map[string][]float64{
			"RHO": c.Rho, "U": c.U, "P": c.P, "E": c.E, "R": c.R,
		},
		NumCells: c.Ncells,
	}
	if err = file_io.WriteFieldSet(mr.OutDir, out); err != nil {
		return err
	}
	return file_io.WriteRunLog(mr.OutDir, c.StepTimes, sp.ActualSteps, sp.LastTau)
}
