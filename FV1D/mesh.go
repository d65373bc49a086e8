package FV1D

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/continuity1d/utils"
)

/*
	Cell centered mesh with one ghost cell on each side

	   ghost W     cell 1      cell 2    ...   cell imax    ghost E
	  |   0   |     1     |     2     | ... |   imax   |  imax+1  |
	 xa-dx/2      xa+dx/2                                 xe+dx/2

	X holds the cell centers and Dx the cell widths, both of length imax+2
*/
type Mesh struct {
	Imax  int
	X, Dx []float64
}

// NewEquidistantMesh builds imax cells of width (xe-xa)/imax on [xa, xe], ghosts included
func NewEquidistantMesh(xa, xe float64, imax int) (m *Mesh, err error) {
	if imax < 2 {
		err = utils.NewConfigurationError("Cells", "need at least 2 cells, got %d", imax)
		return
	}
	if !(xe > xa) {
		err = utils.NewConfigurationError("XMax", "domain end %v must be greater than start %v", xe, xa)
		return
	}
	var (
		n  = imax + 2
		dx = (xe - xa) / float64(imax)
	)
	m = &Mesh{
		Imax: imax,
		X:    make([]float64, n),
		Dx:   make([]float64, n),
	}
	for i := range m.Dx {
		m.Dx[i] = dx
	}
	m.X[0] = xa - 0.5*dx
	for i := 1; i < n; i++ {
		m.X[i] = m.X[0] + float64(i)*dx
	}
	return
}

// NewMesh wraps externally supplied centers and widths, ghost cells included
func NewMesh(x, dx []float64) (m *Mesh, err error) {
	if len(x) != len(dx) {
		err = utils.NewConfigurationError("Mesh", "got %d centers and %d widths", len(x), len(dx))
		return
	}
	imax := len(x) - 2
	if imax < 2 {
		err = utils.NewConfigurationError("Mesh", "need at least 2 cells plus 2 ghosts, got %d entries", len(x))
		return
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			err = utils.NewConfigurationError("Mesh", "cell centers not increasing at index %d: %v <= %v", i, x[i], x[i-1])
			return
		}
	}
	for i := 1; i <= imax; i++ {
		if !(dx[i] > 0) {
			err = utils.NewConfigurationError("Mesh", "cell width at index %d is not positive: %v", i, dx[i])
			return
		}
	}
	m = &Mesh{
		Imax: imax,
		X:    append([]float64(nil), x...),
		Dx:   append([]float64(nil), dx...),
	}
	return
}

// Imin is the index of the first physical cell
func (m *Mesh) Imin() int { return 1 }

// Len is the storage length of every field on this mesh
func (m *Mesh) Len() int { return m.Imax + 2 }

// XA and XE are the outer faces of the first and last physical cells
func (m *Mesh) XA() float64 { return m.X[1] - 0.5*m.Dx[1] }
func (m *Mesh) XE() float64 { return m.X[m.Imax] + 0.5*m.Dx[m.Imax] }

// Length is the sum of the physical cell widths
func (m *Mesh) Length() float64 {
	return floats.Sum(m.Physical(m.Dx))
}

// Physical returns the slice of f covering cells 1..imax, no copy
func (m *Mesh) Physical(f []float64) []float64 {
	if len(f) != m.Len() {
		panic("field length does not match mesh")
	}
	return f[1 : m.Imax+1]
}

// NewField allocates a zeroed field including ghost cells
func (m *Mesh) NewField() []float64 {
	return make([]float64, m.Len())
}

// VolumeIntegrate applies the cell centered rectangle rule over the physical cells
func (m *Mesh) VolumeIntegrate(f []float64) float64 {
	return floats.Dot(m.Physical(f), m.Physical(m.Dx))
}
