package Continuity1D

import (
	"github.com/notargets/continuity1d/utils"
)

// mirrorGhosts copies the opposite physical cell into each ghost
func mirrorGhosts(f []float64) {
	imax := len(f) - 2
	f[0] = f[imax]
	f[imax+1] = f[1]
}

// GetGradient measures the first derivative across the boundary face next to cell i
func (c *Continuity) GetGradient(f []float64, i int) float64 {
	var (
		x = c.Mesh.X
	)
	switch i {
	case c.Mesh.Imin():
		return (f[1] - f[0]) / (x[1] - x[0])
	case c.Mesh.Imax:
		return (f[i+1] - f[i]) / (x[i+1] - x[i])
	}
	panic("gradient is only defined at the boundary cells")
}

// SetGradient writes the ghost next to cell i so the face derivative equals grad
func (c *Continuity) SetGradient(f []float64, i int, grad float64) {
	var (
		x = c.Mesh.X
	)
	switch i {
	case c.Mesh.Imin():
		f[0] = f[1] - grad*(x[1]-x[0])
	case c.Mesh.Imax:
		f[i+1] = f[i] + grad*(x[i+1]-x[i])
	default:
		panic("gradient is only defined at the boundary cells")
	}
}

// refreshDynamic evaluates the time dependent ghosts at time t
func (c *Continuity) refreshDynamic(f []float64, t float64) {
	imax := c.Mesh.Imax
	if c.West.Type == utils.BCDynamic {
		f[0] = c.West.Profile.Apply(c.Lib, t)
	}
	if c.East.Type == utils.BCDynamic {
		f[imax+1] = c.East.Profile.Apply(c.Lib, t)
	}
}

// imposeNeumann holds the stored gradients on the ghosts of f
func (c *Continuity) imposeNeumann(f []float64) {
	if c.West.Type == utils.BCNeumann {
		c.SetGradient(f, c.Mesh.Imin(), c.gradW)
	}
	if c.East.Type == utils.BCNeumann {
		c.SetGradient(f, c.Mesh.Imax, c.gradE)
	}
}

// Gradients returns the stored Neumann gradients, zero for other boundary types
func (c *Continuity) Gradients() (west, east float64) {
	return c.gradW, c.gradE
}
