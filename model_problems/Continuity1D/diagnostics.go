package Continuity1D

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Mass is the volume integral of the density
func (c *Continuity) Mass() float64 {
	return c.Mesh.VolumeIntegrate(c.Rho)
}

// KineticEnergy is the volume integral of rho*u*u/2
func (c *Continuity) KineticEnergy() float64 {
	var (
		w = c.derived
	)
	for i := range w {
		w[i] = 0.5 * c.Rho[i] * c.U[i] * c.U[i]
	}
	return c.Mesh.VolumeIntegrate(w)
}

// Momentum is the volume integral of rho*u
func (c *Continuity) Momentum() float64 {
	var (
		w = c.derived
	)
	for i := range w {
		w[i] = c.Rho[i] * c.U[i]
	}
	return c.Mesh.VolumeIntegrate(w)
}

// CourantNumbers returns |u|*dt/dx for every cell, ghosts included
func (c *Continuity) CourantNumbers() (C []float64) {
	C = c.Mesh.NewField()
	for i := range C {
		C[i] = math.Abs(c.U[i]) * c.Dt / c.Mesh.Dx[i]
	}
	return
}

// MassFlux returns rho*u for every cell, ghosts included
func (c *Continuity) MassFlux() (jm []float64) {
	jm = c.Mesh.NewField()
	for i := range jm {
		jm[i] = c.Rho[i] * c.U[i]
	}
	return
}

// MaxCourant is the largest Courant number over the physical cells
func (c *Continuity) MaxCourant() float64 {
	return floats.Max(c.Mesh.Physical(c.CourantNumbers()))
}
