package utils

import (
	"strconv"
	"strings"
)

// BCType represents the boundary condition applied at one end of a 1D domain
type BCType uint8

// The numeric values are part of the input file format and must not change
const (
	BCWall      BCType = iota // No flux crosses the boundary face
	BCDirichlet               // Fixed ghost value
	BCNeumann                 // Fixed gradient across the boundary face
	BCPeriodic                // Ring closure, ghost mirrors the opposite cell
	BCDynamic                 // Time dependent ghost value from a profile function
	BCOutlet                  // Outflow only, no returning flux
)

var bcNames = []string{
	"Wall",
	"Dirichlet",
	"Neumann",
	"Periodic",
	"Dynamic",
	"Outlet",
}

// String returns the string representation of a BCType
func (bc BCType) String() string {
	if int(bc) < len(bcNames) {
		return bcNames[bc]
	}
	return "Unknown"
}

// IsValid is true for the six supported boundary kinds
func (bc BCType) IsValid() bool {
	return int(bc) < len(bcNames)
}

// FixesGhost is true for the kinds that hold the ghost value by a rule
// (fixed, gradient or time profile) and share the same coefficient row
func (bc BCType) FixesGhost() bool {
	return bc == BCDirichlet || bc == BCNeumann || bc == BCDynamic
}

// BCNameMap provides a mapping from common boundary condition names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"wall":      BCWall,
	"no_flux":   BCWall,
	"noflux":    BCWall,
	"closed":    BCWall,
	"dirichlet": BCDirichlet,
	"fixed":     BCDirichlet,
	"inflow":    BCDirichlet,
	"neumann":   BCNeumann,
	"gradient":  BCNeumann,
	"periodic":  BCPeriodic,
	"dynamic":   BCDynamic,
	"outlet":    BCOutlet,
	"outflow":   BCOutlet,
	"exit":      BCOutlet,
}

// ParseBCName converts a boundary condition name, or its numeric value, to a BCType
// The matching is case-insensitive and trims whitespace
func ParseBCName(name string) (bc BCType, err error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if bcType, ok := BCNameMap[lowerName]; ok {
		return bcType, nil
	}
	if n, convErr := strconv.Atoi(lowerName); convErr == nil && n >= 0 && n < len(bcNames) {
		return BCType(n), nil
	}
	err = NewConfigurationError("BoundaryCondition", "unknown boundary condition %q", name)
	return
}

// ResolvePeriodic forces both ends to Periodic when either one is Periodic.
// corrected reports whether one of the inputs was overwritten.
func ResolvePeriodic(west, east BCType) (w, e BCType, corrected bool) {
	w, e = west, east
	switch {
	case w == BCPeriodic && e != BCPeriodic:
		e = BCPeriodic
		corrected = true
	case e == BCPeriodic && w != BCPeriodic:
		w = BCPeriodic
		corrected = true
	}
	return
}
