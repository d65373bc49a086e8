package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	seriesFile string
)

func main() {
	seriesFilePtr := flag.String("seriesFile", seriesFile, "time series written by a run, like M.out or Ekin.out")
	flag.Parse()
	seriesFile = *seriesFilePtr
	if len(seriesFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", seriesFile)
	f, err := os.Open(seriesFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	ts, err := ReadSeries(bufio.NewReader(f))
	if err != nil {
		panic(err)
	}
	ts.Title = seriesFile
	ts.Stats().Print()
}

// TimeSeries holds "t value" pairs in file order, a restarted run appends to the file
type TimeSeries struct {
	Title string
	T, V  []float64
}

func (ts *TimeSeries) Add(t, v float64) {
	ts.T = append(ts.T, t)
	ts.V = append(ts.V, v)
}

func ReadSeries(r io.Reader) (ts *TimeSeries, err error) {
	var (
		records [][]string
		t, v    float64
	)
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.FieldsPerRecord = 2
	cr.Comment = '#'
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	ts = &TimeSeries{}
	for i, rec := range records {
		if t, err = strconv.ParseFloat(rec[0], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if v, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		ts.Add(t, v)
	}
	if len(ts.V) == 0 {
		return nil, fmt.Errorf("empty time series")
	}
	return
}

type SeriesStats struct {
	Title                  string
	Samples                int
	T0, Te                 float64
	First, Last, Drift     float64
	RelativeDrift          float64 // Drift / |First|, zero when First is zero
	Min, Max, Mean, StdDev float64
	MaxStepChange          float64 // Largest change between two samples
}

func (ts *TimeSeries) Stats() (s SeriesStats) {
	n := len(ts.V)
	s = SeriesStats{
		Title:   ts.Title,
		Samples: n,
		T0:      ts.T[0],
		Te:      ts.T[n-1],
		First:   ts.V[0],
		Last:    ts.V[n-1],
		Min:     floats.Min(ts.V),
		Max:     floats.Max(ts.V),
	}
	s.Drift = s.Last - s.First
	if s.First != 0 {
		s.RelativeDrift = s.Drift / math.Abs(s.First)
	}
	s.Mean, s.StdDev = stat.MeanStdDev(ts.V, nil)
	for i := 1; i < n; i++ {
		if d := math.Abs(ts.V[i] - ts.V[i-1]); d > s.MaxStepChange {
			s.MaxStepChange = d
		}
	}
	return
}

func (s SeriesStats) Print() {
	fmt.Printf("Title = %s, Samples = %d, t = [%g, %g]\n", s.Title, s.Samples, s.T0, s.Te)
	fmt.Printf("first, last, drift, relative drift: %v, %v, %v, %v\n", s.First, s.Last, s.Drift, s.RelativeDrift)
	fmt.Printf("min, max, mean, stddev: %v, %v, %v, %v\n", s.Min, s.Max, s.Mean, s.StdDev)
	fmt.Printf("largest change between samples: %v\n", s.MaxStepChange)
}

