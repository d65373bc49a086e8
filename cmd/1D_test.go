package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/continuity1d/InputParameters"
	"github.com/notargets/continuity1d/results"
	"github.com/notargets/continuity1d/utils"
)

var periodicInput = `
Title: Periodic pulse
Cells: 20
XMin: 0
XMax: 1
TimeStep: 0.01
Steps: 5
MaxIterations: 50
Tolerance: 1.e-12
Density:
  Function: Gauss
  Shift: 0.5
  Width: 0.1
  Amplitude: 1
Velocity:
  Function: Constant
  Width: 1
  Amplitude: 0.5
West:
  Type: Periodic
East:
  Type: Periodic
`

func writeInput(t *testing.T, input string) string {
	fileName := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(input), 0644))
	return fileName
}

func TestRun1D(t *testing.T) {
	var (
		fs  = afero.NewMemMapFs()
		out bytes.Buffer
	)
	m1d := &Model1D{ICFile: writeInput(t, periodicInput), OutputDir: "/out", Graph: true}
	ip, err := processInput(m1d)
	require.NoError(t, err)
	assert.True(t, ip.Graph)
	sum, err := Run1D(context.Background(), m1d, ip, fs, &out)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Steps)
	assert.Equal(t, 0, sum.NMAX)
	assert.InDelta(t, sum.Mass0, sum.Mass, 1.e-10)
	assert.Less(t, sum.MaxResidual, 1.e-10)
	assert.Contains(t, out.String(), "density at t = 0.05")
	assert.Contains(t, out.String(), "mass, 6 samples from t = 0")

	s, err := results.NewStore(fs, "/out")
	require.NoError(t, err)
	for _, name := range []string{results.TimesFile, results.DensityFile, results.Density0File,
		results.VelocityFile, results.BoundaryFile, results.MassFile, results.CourantFile} {
		assert.True(t, s.Exists(name), name)
	}

	// continue the run from the stored state
	ip.Restart = true
	ip.Graph = false
	out.Reset()
	sum, err = Run1D(context.Background(), m1d, ip, fs, &out)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, sum.Ta, 1.e-15)
	assert.InDelta(t, 0.1, sum.Te, 1.e-15)
	assert.Empty(t, out.String())
	rs, err := s.LoadRestart(20)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, rs.Ta, 1.e-15)

	// a new run in the same directory starts over
	hook := logtest.NewGlobal()
	defer hook.Reset()
	ip.Restart = false
	_, err = Run1D(context.Background(), m1d, ip, fs, &out)
	require.NoError(t, err)
	var warned bool
	for _, e := range hook.AllEntries() {
		warned = warned || e.Message == "overwriting the results of a previous run"
	}
	assert.True(t, warned)
	assert.Len(t, lines(t, fs, "/out/"+results.MassFile), 6)
}

func lines(t *testing.T, fs afero.Fs, name string) []string {
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRun1DErrors(t *testing.T) {
	_, err := processInput(&Model1D{})
	assert.Error(t, err)

	_, err = processInput(&Model1D{ICFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = processInput(&Model1D{ICFile: writeInput(t, periodicInput+"Version: \"1\"\n")})
	assert.True(t, utils.IsConfigurationError(err))

	// restart without a previous run
	m1d := &Model1D{ICFile: writeInput(t, periodicInput+"Restart: true\n"), OutputDir: "/empty"}
	ip, err := processInput(m1d)
	require.NoError(t, err)
	_, err = Run1D(context.Background(), m1d, ip, afero.NewMemMapFs(), &bytes.Buffer{})
	assert.True(t, utils.IsConfigurationError(err))

	// a canceled run leaves no end state behind
	fs := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m1d = &Model1D{ICFile: writeInput(t, periodicInput), OutputDir: "/canceled"}
	ip, err = processInput(m1d)
	require.NoError(t, err)
	_, err = Run1D(ctx, m1d, ip, fs, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	ok, _ := afero.Exists(fs, filepath.Join("/canceled", results.TimesFile))
	assert.False(t, ok)
}

func TestExampleCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"example"})
	require.NoError(t, rootCmd.Execute())
	ip := &InputParameters.InputParameters1D{}
	require.NoError(t, ip.Parse(out.Bytes()))
	assert.NoError(t, ip.Validate())
	assert.Equal(t, "Step front", ip.Title)
}
