package results

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"
)

type series struct {
	file afero.File
	w    *bufio.Writer
}

func (s *Store) openSeries(name string, appendMode bool) (sr *series, err error) {
	var f afero.File
	if f, err = s.Fs.OpenFile(s.Path(name), openFlags(appendMode), 0644); err != nil {
		return
	}
	sr = &series{file: f, w: bufio.NewWriter(f)}
	return
}

func (sr *series) close() (err error) {
	if err = sr.w.Flush(); err != nil {
		sr.file.Close()
		return
	}
	return sr.file.Close()
}

// Writer streams the diagnostics time series and the defect log to the store.
// It also keeps the samples in memory for display after the run.
type Writer struct {
	mass, ekin, px, defect *series
	Times, Mass            []float64
	Defects                int
}

// NewWriter truncates the series files, or appends to them when continuing a run
func (s *Store) NewWriter(appendMode bool) (w *Writer, err error) {
	w = &Writer{}
	for _, f := range []struct {
		name string
		sr   **series
	}{
		{MassFile, &w.mass},
		{EkinFile, &w.ekin},
		{MomentumFile, &w.px},
		{DefectFile, &w.defect},
	} {
		if *f.sr, err = s.openSeries(f.name, appendMode); err != nil {
			w.Close()
			w = nil
			return
		}
	}
	return
}

func (w *Writer) Sample(t, mass, ekin, momentum float64) (err error) {
	line := numberFormat + " " + numberFormat + "\n"
	if _, err = fmt.Fprintf(w.mass.w, line, t, mass); err != nil {
		return
	}
	if _, err = fmt.Fprintf(w.ekin.w, line, t, ekin); err != nil {
		return
	}
	if _, err = fmt.Fprintf(w.px.w, line, t, momentum); err != nil {
		return
	}
	w.Times = append(w.Times, t)
	w.Mass = append(w.Mass, mass)
	return
}

func (w *Writer) Defect(d float64) (err error) {
	if _, err = fmt.Fprintf(w.defect.w, numberFormat+"\n", d); err != nil {
		return
	}
	w.Defects++
	return
}

// Close flushes and closes every series, the first error is returned
func (w *Writer) Close() (err error) {
	for _, sr := range []*series{w.mass, w.ekin, w.px, w.defect} {
		if sr == nil {
			continue
		}
		if cerr := sr.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}
