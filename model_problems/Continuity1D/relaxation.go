package Continuity1D

import (
	"math"

	log "github.com/sirupsen/logrus"
)

type StepResult struct {
	Iterations int
	Defect     float64 // Defect of the last pass
	Residual   float64 // max |A f - rho| of the committed iterate
	Converged  bool
	Defects    []float64 // Defects of the passes that did not converge, in pass order
}

// Step advances the density by one implicit time step ending at time t.
// A step that exhausts IMAX passes is committed anyway and counted in NMAX.
func (c *Continuity) Step(t float64) (sr StepResult) {
	var (
		f = c.scratch
	)
	copy(f, c.Rho)
	c.refreshDynamic(f, t)
	c.defects = c.defects[:0]
	for sr.Iterations < c.IMAX {
		switch c.Assembler {
		case RingClosed:
			sr.Defect = c.relaxRing(f)
		default:
			c.imposeNeumann(f)
			sr.Defect = c.relaxStandard(f)
		}
		sr.Iterations++
		if sr.Defect < c.Delta {
			sr.Converged = true
			break
		}
		c.defects = append(c.defects, sr.Defect)
	}
	sr.Residual = c.commit(f)
	if !sr.Converged {
		c.State.NMAX++
		log.WithFields(log.Fields{
			"t": t, "D": sr.Defect, "residual": sr.Residual, "IMAX": c.IMAX,
		}).Debug("relaxation reached the pass limit")
	}
	sr.Defects = append([]float64(nil), c.defects...)
	c.State.T = t
	c.State.D = sr.Defect
	c.State.R = sr.Residual
	c.State.K = sr.Iterations
	c.State.Step++
	return
}

// relaxStandard is one Gauss-Seidel pass over the free ended system
func (c *Continuity) relaxStandard(f []float64) (D float64) {
	var (
		cf   = c.Coeffs
		rho  = c.Rho
		imax = c.Mesh.Imax
	)
	for i := 1; i <= imax; i++ {
		j := i - 1
		df := (rho[i]-cf.W[j]*f[i-1]-cf.E[j]*f[i+1])/cf.P[j] - f[i]
		f[i] += df
		D = math.Max(D, math.Abs(df))
	}
	return
}

// relaxRing is one Gauss-Seidel pass over the periodic system. The ghosts
// carry the wrapped neighbors, the west one before the pass and the east one after it.
func (c *Continuity) relaxRing(f []float64) (D float64) {
	var (
		cf   = c.Coeffs
		rho  = c.Rho
		imax = c.Mesh.Imax
	)
	f[0] = f[imax]
	for i := 1; i <= imax; i++ {
		j := i - 1
		if i == imax {
			f[imax+1] = f[1]
		}
		df := -(cf.W[j]*f[i-1]+cf.E[j]*f[i+1]-rho[i])/cf.P[j] - f[i]
		f[i] += df
		D = math.Max(D, math.Abs(df))
	}
	f[imax+1] = f[1]
	return
}

// commit stores the iterate as the new density and returns its residual
// against the density it replaces
func (c *Continuity) commit(f []float64) (res float64) {
	if c.Assembler == RingClosed {
		mirrorGhosts(f)
	} else {
		c.imposeNeumann(f)
	}
	res = c.Coeffs.residual(c.System, c.Assembler, c.Rho, f)
	copy(c.Rho, f)
	return
}

// Solve runs a single time step without committing, the committed state is unchanged.
// It returns the iterate of all imax+2 cells.
func (c *Continuity) Solve(t float64) (f []float64, sr StepResult) {
	var (
		rho   = append([]float64(nil), c.Rho...)
		state = c.State
	)
	sr = c.Step(t)
	f = append([]float64(nil), c.Rho...)
	copy(c.Rho, rho)
	c.State = state
	return
}
