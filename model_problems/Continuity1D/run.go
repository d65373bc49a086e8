package Continuity1D

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// Reporter receives the diagnostics time series and the defect log of a run
type Reporter interface {
	Sample(t, mass, ekin, momentum float64) error
	Defect(d float64) error
}

type Summary struct {
	T0, Ta, Te  float64
	NMAX        int // Steps that hit the pass limit
	Steps       int // Steps committed
	Mass0, Mass float64
	MaxResidual float64 // Largest residual of a committed step
}

// SampleInterval is the number of steps between diagnostics samples
func (c *Continuity) SampleInterval() int { return c.sampleEvery }

// Run advances the density from Ta to Te. The context is checked between steps,
// on cancellation the state of the last committed step is kept.
func (c *Continuity) Run(ctx context.Context, rep Reporter) (s *Summary, err error) {
	var (
		N = c.sampleEvery
	)
	s = &Summary{T0: c.T0, Ta: c.Ta, Te: c.Te, Mass0: c.Mass()}
	if !c.Restarted {
		if err = c.sample(rep, c.Ta); err != nil {
			return
		}
	}
	for n := 1; n <= c.Steps; n++ {
		if err = ctx.Err(); err != nil {
			break
		}
		t := c.Ta + float64(n)*c.Dt
		sr := c.Step(t)
		s.Steps++
		s.MaxResidual = math.Max(s.MaxResidual, sr.Residual)
		for _, d := range sr.Defects {
			if err = rep.Defect(d); err != nil {
				err = fmt.Errorf("step %d: %w", n, err)
				break
			}
		}
		if err != nil {
			break
		}
		if n%N == 0 {
			if err = c.sample(rep, t); err != nil {
				break
			}
			log.WithFields(log.Fields{
				"n": n, "t": t, "K": sr.Iterations, "D": sr.Defect, "NMAX": c.State.NMAX,
			}).Info("progress")
		}
	}
	if err == nil && (c.Steps%N != 0 || c.Steps == 0) {
		err = c.sample(rep, c.Te)
	}
	s.NMAX = c.State.NMAX
	s.Mass = c.Mass()
	return
}

func (c *Continuity) sample(rep Reporter, t float64) error {
	if err := rep.Sample(t, c.Mass(), c.KineticEnergy(), c.Momentum()); err != nil {
		return fmt.Errorf("sample at t=%v: %w", t, err)
	}
	return nil
}
