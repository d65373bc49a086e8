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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/continuity1d/FV1D"
	"github.com/notargets/continuity1d/InputParameters"
	"github.com/notargets/continuity1d/model_problems/Continuity1D"
	"github.com/notargets/continuity1d/results"
	"github.com/notargets/continuity1d/utils"
)

type Model1D struct {
	ICFile    string
	OutputDir string
	Graph     bool
	Profile   bool
}

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "Run the one dimensional continuity equation solver",
	Long: `
Reads an input conditions file, advances the density over the requested number of
time steps and writes the result files into the output directory. With Restart set
in the input file the run continues from the files of a previous run.

continuity1d 1D -I input.yaml -o results --graph`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParameters1D
		)
		m1d := &Model1D{}
		if m1d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		m1d.OutputDir = viper.GetString("outputDir")
		m1d.Graph, _ = cmd.Flags().GetBool("graph")
		m1d.Profile, _ = cmd.Flags().GetBool("profile")
		if ip, err = processInput(m1d); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		err = func() (err error) {
			if m1d.Profile {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(m1d.OutputDir)).Stop()
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			_, err = Run1D(ctx, m1d, ip, afero.NewOsFs(), cmd.OutOrStdout())
			return
		}()
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Domain or MeshFile\n\t- TimeStep, Steps\n\t- Density, Velocity, West, East")
	OneDCmd.Flags().Bool("graph", false, "display the final density and the mass history")
	OneDCmd.Flags().Bool("profile", false, "write a CPU profile into the output directory")
}

func processInput(m1d *Model1D) (ip *InputParameters.InputParameters1D, err error) {
	var (
		data []byte
	)
	if len(m1d.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		fmt.Printf("Example File:%s\n", InputParameters.Example)
		return
	}
	if data, err = os.ReadFile(m1d.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters1D{}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", m1d.ICFile, err)
		return
	}
	if err = ip.Validate(); err != nil {
		err = fmt.Errorf("%s: %w", m1d.ICFile, err)
		return
	}
	ip.Graph = ip.Graph || m1d.Graph
	ip.Print()
	return
}

// Run1D executes one run and writes its results to fs under m1d.OutputDir.
// The stored state only changes when all steps were committed.
func Run1D(ctx context.Context, m1d *Model1D, ip *InputParameters.InputParameters1D, fs afero.Fs,
	out io.Writer) (sum *Continuity1D.Summary, err error) {
	var (
		m     *FV1D.Mesh
		store *results.Store
		rs    *Continuity1D.RestartState
		cfg   Continuity1D.Config
		c     *Continuity1D.Continuity
		w     *results.Writer
	)
	if m, err = ip.Mesh(true); err != nil {
		return
	}
	if store, err = results.NewStore(fs, m1d.OutputDir); err != nil {
		return
	}
	if ip.Restart {
		if rs, err = store.LoadRestart(m.Imax); err != nil {
			return
		}
	} else if store.Exists(results.TimesFile) {
		log.WithField("dir", m1d.OutputDir).Warn("overwriting the results of a previous run")
	}
	if cfg, err = ip.Config(m, rs); err != nil {
		return
	}
	if c, err = Continuity1D.NewContinuity(cfg); err != nil {
		return
	}
	c.Print()
	if !c.Restarted {
		if err = store.SaveInitial(c); err != nil {
			return
		}
	}
	if w, err = store.NewWriter(c.Restarted); err != nil {
		return
	}
	sum, err = c.Run(ctx, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return
	}
	if err = store.SaveTimes(c); err != nil {
		return
	}
	if err = store.SaveFinal(c); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"t0":          sum.T0,
		"te":          sum.Te,
		"steps":       sum.Steps,
		"NMAX":        sum.NMAX,
		"maxResidual": sum.MaxResidual,
		"mass0":       sum.Mass0,
		"mass":        sum.Mass,
		"Cmax":        c.MaxCourant(),
	}).Info("run complete")
	log.Debug(utils.GetMemUsage())
	if ip.Graph {
		PlotResults(out, c, w)
	}
	return
}

// PlotResults draws the final density and the sampled mass in the terminal
func PlotResults(out io.Writer, c *Continuity1D.Continuity, w *results.Writer) {
	fmt.Fprintln(out, asciigraph.Plot(c.Mesh.Physical(c.Rho),
		asciigraph.Height(15), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("density at t = %g", c.Te))))
	if len(w.Mass) < 2 {
		return
	}
	fmt.Fprintln(out, asciigraph.Plot(w.Mass,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("mass, %d samples from t = %g", len(w.Mass), w.Times[0]))))
}
