// Package results persists the fields and diagnostics of a run in plain text
// files, one value pair per line, and reads them back to continue a run.
package results

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/notargets/continuity1d/model_problems/Continuity1D"
	"github.com/notargets/continuity1d/utils"
)

const (
	TimesFile    = "te.out"       // Global start time and end time of the last run
	DensityFile  = "rho.out"      // Final density
	Density0File = "rho0.out"     // Initial density of a new run
	VelocityFile = "u.out"        // Velocity
	MassFluxFile = "jm.out"       // Final rho*u
	CourantFile  = "C.out"        // Courant numbers
	BoundaryFile = "Boundary.out" // Ghost cells of u and rho
	MassFile     = "M.out"
	EkinFile     = "Ekin.out"
	MomentumFile = "px.out"
	DefectFile   = "D.out"
)

const numberFormat = "%.13e"

type Store struct {
	Fs  afero.Fs
	Dir string
}

func NewStore(fs afero.Fs, dir string) (s *Store, err error) {
	if err = fs.MkdirAll(dir, 0755); err != nil {
		return
	}
	s = &Store{Fs: fs, Dir: dir}
	return
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *Store) writeFile(name string, fill func(w *bufio.Writer) error) (err error) {
	var (
		buf bytes.Buffer
		bw  = bufio.NewWriter(&buf)
	)
	if err = fill(bw); err != nil {
		return
	}
	if err = bw.Flush(); err != nil {
		return
	}
	return afero.WriteFile(s.Fs, s.Path(name), buf.Bytes(), 0644)
}

// SaveProfile writes "x value" for the physical cells
func (s *Store) SaveProfile(name string, x, f []float64) error {
	if len(x) != len(f) {
		panic(fmt.Errorf("%s: %d centers and %d values", name, len(x), len(f)))
	}
	return s.writeFile(name, func(w *bufio.Writer) (err error) {
		for i := 1; i < len(f)-1; i++ {
			if _, err = fmt.Fprintf(w, numberFormat+" "+numberFormat+"\n", x[i], f[i]); err != nil {
				return
			}
		}
		return
	})
}

func (s *Store) writeValues(name string, vals ...float64) error {
	return s.writeFile(name, func(w *bufio.Writer) (err error) {
		for _, v := range vals {
			if _, err = fmt.Fprintf(w, numberFormat+"\n", v); err != nil {
				return
			}
		}
		return
	})
}

// SaveTimes stores the global start time and the end time of this run,
// which becomes the local start time of a continuation
func (s *Store) SaveTimes(c *Continuity1D.Continuity) error {
	return s.writeValues(TimesFile, c.T0, c.Te)
}

// SaveInitial writes the velocity and the initial density of a new run
func (s *Store) SaveInitial(c *Continuity1D.Continuity) (err error) {
	x := c.Mesh.X
	if err = s.SaveProfile(VelocityFile, x, c.U); err != nil {
		return
	}
	if c.Rho0 != nil {
		err = s.SaveProfile(Density0File, x, c.Rho0)
	}
	return
}

// SaveFinal writes the committed state needed to continue the run, plus the
// mass flux and the Courant numbers
func (s *Store) SaveFinal(c *Continuity1D.Continuity) (err error) {
	var (
		x    = c.Mesh.X
		imax = c.Mesh.Imax
	)
	if err = s.SaveProfile(CourantFile, x, c.CourantNumbers()); err != nil {
		return
	}
	if err = s.SaveProfile(DensityFile, x, c.Rho); err != nil {
		return
	}
	if err = s.SaveProfile(MassFluxFile, x, c.MassFlux()); err != nil {
		return
	}
	return s.writeValues(BoundaryFile, c.U[0], c.U[imax+1], c.Rho[0], c.Rho[imax+1])
}

func (s *Store) readValues(name string, n int) (vals []float64, err error) {
	var (
		data []byte
	)
	if data, err = afero.ReadFile(s.Fs, s.Path(name)); err != nil {
		err = utils.NewConfigurationError("Restart", "unable to read %s: %v", name, err)
		return
	}
	r := bytes.NewReader(data)
	vals = make([]float64, n)
	for i := range vals {
		if _, err = fmt.Fscan(r, &vals[i]); err != nil {
			err = utils.NewConfigurationError("Restart", "%s: value %d of %d: %v", name, i+1, n, err)
			vals = nil
			return
		}
	}
	return
}

func (s *Store) readProfile(name string, f []float64) (err error) {
	var (
		imax = len(f) - 2
		vals []float64
	)
	if vals, err = s.readValues(name, 2*imax); err != nil {
		return
	}
	for i := 1; i <= imax; i++ {
		f[i] = vals[2*i-1]
	}
	return
}

// LoadRestart reads the state written by SaveTimes, SaveInitial and SaveFinal
func (s *Store) LoadRestart(imax int) (rs *Continuity1D.RestartState, err error) {
	var (
		times, ghosts []float64
	)
	if times, err = s.readValues(TimesFile, 2); err != nil {
		return
	}
	rs = &Continuity1D.RestartState{
		T0:  times[0],
		Ta:  times[1],
		U:   make([]float64, imax+2),
		Rho: make([]float64, imax+2),
	}
	if err = s.readProfile(VelocityFile, rs.U); err != nil {
		rs = nil
		return
	}
	if err = s.readProfile(DensityFile, rs.Rho); err != nil {
		rs = nil
		return
	}
	if ghosts, err = s.readValues(BoundaryFile, 4); err != nil {
		rs = nil
		return
	}
	rs.U[0], rs.U[imax+1] = ghosts[0], ghosts[1]
	rs.Rho[0], rs.Rho[imax+1] = ghosts[2], ghosts[3]
	return
}

// Exists reports whether the named file is present in the store
func (s *Store) Exists(name string) bool {
	ok, err := afero.Exists(s.Fs, s.Path(name))
	return ok && err == nil
}

func openFlags(appendMode bool) int {
	if appendMode {
		return os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.O_CREATE | os.O_WRONLY | os.O_TRUNC
}
