package Continuity1D

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/continuity1d/utils"
)

type AssemblerType uint8

const (
	Standard   AssemblerType = iota // Tridiagonal with free ends, boundary rows rewritten
	RingClosed                      // Periodic, first and last cell are neighbors
)

func (at AssemblerType) String() string {
	switch at {
	case Standard:
		return "Standard"
	case RingClosed:
		return "RingClosed"
	}
	return "Unknown"
}

/*
	Row i of the implicit system, for physical cell i = 1..imax stored at j = i-1:

		W[j]*f[i-1] + P[j]*f[i] + E[j]*f[i+1] = rho[i]

	The upwind selection uses (a+|a|)/2 = max(a,0) and (a-|a|)/2 = min(a,0),
	there are no branches on the sign of the velocity.
*/
type Coefficients struct {
	W, P, E []float64
}

func NewCoefficients(imax int) *Coefficients {
	return &Coefficients{
		W: make([]float64, imax),
		P: make([]float64, imax),
		E: make([]float64, imax),
	}
}

func (cf *Coefficients) Len() int { return len(cf.P) }

// Equal is a bitwise comparison
func (cf *Coefficients) Equal(other *Coefficients) bool {
	if cf.Len() != other.Len() {
		return false
	}
	for j := range cf.P {
		if math.Float64bits(cf.W[j]) != math.Float64bits(other.W[j]) ||
			math.Float64bits(cf.P[j]) != math.Float64bits(other.P[j]) ||
			math.Float64bits(cf.E[j]) != math.Float64bits(other.E[j]) {
			return false
		}
	}
	return true
}

func (cf *Coefficients) baseline(j int, uW, uP, uE, dt, dx float64) {
	cf.W[j] = -(uW + math.Abs(uW)) * dt / dx / 2.
	cf.P[j] = 1. + math.Abs(uP)*dt/dx
	cf.E[j] = (uE - math.Abs(uE)) * dt / dx / 2.
}

// AssembleStandard builds the free ended system, u and dx include ghost cells
func AssembleStandard(u, dx []float64, dt float64, west, east utils.BCType) (cf *Coefficients) {
	var (
		imax = len(u) - 2
	)
	if len(dx) != len(u) {
		panic(fmt.Errorf("velocity length %d and mesh length %d differ", len(u), len(dx)))
	}
	cf = NewCoefficients(imax)
	for i := 1; i <= imax; i++ {
		cf.baseline(i-1, u[i-1], u[i], u[i+1], dt, dx[i])
	}
	// West row, cell 1
	i, j := 1, 0
	switch {
	case west == utils.BCWall:
		// No flux between the ghost and cell 1 in either direction
		cf.W[j] = 0
		cf.P[j] = 1. + (u[i]+math.Abs(u[i]))*dt/dx[i]/2.
	case west.FixesGhost():
		// Inflow from the ghost is kept, outflow from cell 1 into the ghost is not counted
		cf.P[j] = 1. + (u[i]+math.Abs(u[i]))*dt/dx[i]/2.
	case west == utils.BCOutlet:
		// Nothing returns from the ghost
		cf.W[j] = 0
	}
	// East row, cell imax
	i, j = imax, imax-1
	switch {
	case east == utils.BCWall:
		cf.E[j] = 0
		cf.P[j] = 1. - (u[i]-math.Abs(u[i]))*dt/dx[i]/2.
	case east.FixesGhost():
		cf.P[j] = 1. - (u[i]-math.Abs(u[i]))*dt/dx[i]/2.
	case east == utils.BCOutlet:
		cf.E[j] = 0
	}
	return
}

// AssembleRing builds the periodic system, the neighbors of the end cells wrap around
func AssembleRing(u, dx []float64, dt float64) (cf *Coefficients) {
	var (
		imax = len(u) - 2
	)
	if len(dx) != len(u) {
		panic(fmt.Errorf("velocity length %d and mesh length %d differ", len(u), len(dx)))
	}
	cf = NewCoefficients(imax)
	for i := 1; i <= imax; i++ {
		iW, iE := i-1, i+1
		if iW == 0 {
			iW = imax
		}
		if iE == imax+1 {
			iE = 1
		}
		cf.baseline(i-1, u[iW], u[i], u[iE], dt, dx[i])
	}
	return
}

// Matrix returns the imax x imax system matrix. For the standard assembler the
// ghost couplings W[0] and E[imax-1] are not part of the matrix, they multiply known values.
func (cf *Coefficients) Matrix(at AssemblerType) *sparse.CSR {
	var (
		n   = cf.Len()
		dok = sparse.NewDOK(n, n)
	)
	add := func(i, j int, val float64) {
		if val != 0 {
			dok.Set(i, j, dok.At(i, j)+val)
		}
	}
	for j := 0; j < n; j++ {
		add(j, j, cf.P[j])
		if j > 0 {
			add(j, j-1, cf.W[j])
		} else if at == RingClosed {
			add(0, n-1, cf.W[0])
		}
		if j < n-1 {
			add(j, j+1, cf.E[j])
		} else if at == RingClosed {
			add(n-1, 0, cf.E[n-1])
		}
	}
	return dok.ToCSR()
}

// Residual returns max |A f - rhs| over the physical cells, both arguments include ghosts
func (cf *Coefficients) Residual(at AssemblerType, rhs, f []float64) float64 {
	return cf.residual(cf.Matrix(at), at, rhs, f)
}

// residual evaluates with A, the matrix exported from cf for the same assembler
func (cf *Coefficients) residual(A *sparse.CSR, at AssemblerType, rhs, f []float64) (res float64) {
	var (
		n = cf.Len()
	)
	if len(rhs) != n+2 || len(f) != n+2 {
		panic(fmt.Errorf("field lengths %d, %d do not match %d cells", len(rhs), len(f), n))
	}
	var Af mat.VecDense
	Af.MulVec(A, mat.NewVecDense(n, append([]float64(nil), f[1:n+1]...)))
	r := Af.RawVector().Data
	if at == Standard {
		r[0] += cf.W[0] * f[0]
		r[n-1] += cf.E[n-1] * f[n+1]
	}
	for j := 0; j < n; j++ {
		res = math.Max(res, math.Abs(r[j]-rhs[j+1]))
	}
	return
}
