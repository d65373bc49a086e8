package Continuity1D

import (
	"fmt"

	"github.com/james-bowman/sparse"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/continuity1d/FV1D"
	"github.com/notargets/continuity1d/profiles"
	"github.com/notargets/continuity1d/utils"
)

// Boundary is the condition at one end of the domain. Profile is only used by
// BCDynamic, where the ghost value is Profile evaluated at the current time.
type Boundary struct {
	Type    utils.BCType
	Profile profiles.Affine
}

// InitialProfile seeds a field at every cell center, then adds the ghost offsets
type InitialProfile struct {
	profiles.Affine
	GhostWest, GhostEast float64
}

// RestartState is a previously committed state, fields include the ghost cells
type RestartState struct {
	T0, Ta float64 // Global and local start time
	U, Rho []float64
}

type Config struct {
	Mesh              *FV1D.Mesh
	Library           *profiles.Library
	StartTime         float64
	TimeStep          float64
	Steps             int
	MaxIterations     int     // Relaxation pass limit per step
	Tolerance         float64 // Absolute limit on the defect
	West, East        Boundary
	Velocity, Density InitialProfile
	SampleInterval    int           // Steps between diagnostics samples, 0 means 1 + Steps/1000
	Restart           *RestartState // Continue from a stored state instead of the initial profiles
}

// SolverState is updated every time step
type SolverState struct {
	T    float64 // Simulation time of the last committed step
	D    float64 // Defect of the last relaxation pass
	R    float64 // Residual max |A rho - rho_old| of the last committed step
	K    int     // Passes used by the last step
	NMAX int     // Number of steps that hit the pass limit
	Step int
}

type Continuity struct {
	Mesh            *FV1D.Mesh
	Lib             *profiles.Library
	West, East      Boundary
	Assembler       AssemblerType
	Dt              float64
	Steps           int
	IMAX            int
	Delta           float64
	T0, Ta, Te      float64
	U, Rho          []float64 // Velocity and density, ghosts included
	Rho0            []float64 // Initial density of a new run, nil on restart
	Coeffs          *Coefficients
	System          *sparse.CSR // Coeffs as a matrix, used for the residual of committed steps
	State           SolverState
	Restarted       bool
	Corrected       bool // Periodic boundary was forced on the other end
	velocityProfile InitialProfile
	densityProfile  InitialProfile
	gradW, gradE    float64 // Stored Neumann gradients
	sampleEvery     int
	scratch         []float64 // Gauss-Seidel iterate
	derived         []float64 // Work field for diagnostics
	defects         []float64
}

func NewContinuity(cfg Config) (c *Continuity, err error) {
	if err = cfg.validate(); err != nil {
		return
	}
	var (
		m = cfg.Mesh
	)
	c = &Continuity{
		Mesh:            m,
		Lib:             cfg.Library,
		West:            cfg.West,
		East:            cfg.East,
		Dt:              cfg.TimeStep,
		Steps:           cfg.Steps,
		IMAX:            cfg.MaxIterations,
		Delta:           cfg.Tolerance,
		velocityProfile: cfg.Velocity,
		densityProfile:  cfg.Density,
		sampleEvery:     cfg.SampleInterval,
		scratch:         m.NewField(),
		derived:         m.NewField(),
	}
	c.West.Type, c.East.Type, c.Corrected = utils.ResolvePeriodic(cfg.West.Type, cfg.East.Type)
	if c.Corrected {
		log.WithFields(log.Fields{
			"west": cfg.West.Type, "east": cfg.East.Type,
		}).Warn("periodic boundary on one end only, both ends set to Periodic")
	}
	if c.West.Type == utils.BCPeriodic {
		c.Assembler = RingClosed
	}
	if c.sampleEvery <= 0 {
		c.sampleEvery = 1 + c.Steps/1000
	}
	if cfg.Restart != nil {
		err = c.restore(cfg.Restart)
	} else {
		err = c.initialize(cfg.StartTime)
	}
	if err != nil {
		c = nil
		return
	}
	c.Te = c.Ta + float64(c.Steps)*c.Dt
	c.State.T = c.Ta
	if err = c.checkFinite(); err != nil {
		c = nil
		return
	}
	c.Assemble()
	if c.West.Type == utils.BCNeumann {
		c.gradW = c.GetGradient(c.Rho, m.Imin())
	}
	if c.East.Type == utils.BCNeumann {
		c.gradE = c.GetGradient(c.Rho, m.Imax)
	}
	c.warnReversedFlow()
	return
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Mesh == nil:
		return utils.NewConfigurationError("Mesh", "no mesh")
	case cfg.Library == nil:
		return utils.NewConfigurationError("Library", "no profile library")
	case !(cfg.TimeStep > 0):
		return utils.NewConfigurationError("TimeStep", "must be positive, got %v", cfg.TimeStep)
	case cfg.Steps < 0:
		return utils.NewConfigurationError("Steps", "must not be negative, got %d", cfg.Steps)
	case cfg.MaxIterations < 1:
		return utils.NewConfigurationError("MaxIterations", "must be at least 1, got %d", cfg.MaxIterations)
	case !(cfg.Tolerance > 0):
		return utils.NewConfigurationError("Tolerance", "must be positive, got %v", cfg.Tolerance)
	case !cfg.West.Type.IsValid():
		return utils.NewConfigurationError("West", "invalid boundary type %d", cfg.West.Type)
	case !cfg.East.Type.IsValid():
		return utils.NewConfigurationError("East", "invalid boundary type %d", cfg.East.Type)
	}
	for _, b := range []Boundary{cfg.West, cfg.East} {
		if b.Type == utils.BCDynamic {
			if err := b.Profile.Validate(cfg.Library); err != nil {
				return err
			}
		}
	}
	if cfg.Restart == nil {
		if err := cfg.Velocity.Validate(cfg.Library); err != nil {
			return fmt.Errorf("velocity profile: %w", err)
		}
		if err := cfg.Density.Validate(cfg.Library); err != nil {
			return fmt.Errorf("density profile: %w", err)
		}
	}
	return nil
}

func (c *Continuity) initialize(ta float64) error {
	var (
		m    = c.Mesh
		imax = m.Imax
		lib  = c.Lib
	)
	c.T0, c.Ta = ta, ta
	c.U, c.Rho = m.NewField(), m.NewField()
	for i := 0; i <= imax+1; i++ {
		c.U[i] = c.velocityProfile.Apply(lib, m.X[i])
		c.Rho[i] = c.densityProfile.Apply(lib, m.X[i])
	}
	c.Rho0 = append([]float64(nil), c.Rho...)
	c.U[0] += c.velocityProfile.GhostWest
	c.U[imax+1] += c.velocityProfile.GhostEast
	c.Rho[0] += c.densityProfile.GhostWest
	c.Rho[imax+1] += c.densityProfile.GhostEast
	if c.West.Type == utils.BCDynamic {
		c.Rho[0] = c.West.Profile.Apply(lib, c.Ta)
	}
	if c.East.Type == utils.BCDynamic {
		c.Rho[imax+1] = c.East.Profile.Apply(lib, c.Ta)
	}
	if c.Assembler == RingClosed {
		mirrorGhosts(c.U)
		mirrorGhosts(c.Rho)
	}
	return nil
}

func (c *Continuity) restore(rs *RestartState) error {
	var (
		n = c.Mesh.Len()
	)
	if len(rs.U) != n || len(rs.Rho) != n {
		return utils.NewConfigurationError("Restart",
			"stored fields have %d and %d values, mesh needs %d", len(rs.U), len(rs.Rho), n)
	}
	c.Restarted = true
	c.T0, c.Ta = rs.T0, rs.Ta
	c.U = append([]float64(nil), rs.U...)
	c.Rho = append([]float64(nil), rs.Rho...)
	return nil
}

func (c *Continuity) checkFinite() error {
	if i := utils.NonFinite(c.U); i >= 0 {
		return utils.NewConfigurationError("Velocity", "non finite value %v at cell %d", c.U[i], i)
	}
	if i := utils.NonFinite(c.Rho); i >= 0 {
		return utils.NewConfigurationError("Density", "non finite value %v at cell %d", c.Rho[i], i)
	}
	return nil
}

// Assemble recomputes the transport coefficients from the velocity field
func (c *Continuity) Assemble() *Coefficients {
	switch c.Assembler {
	case RingClosed:
		c.Coeffs = AssembleRing(c.U, c.Mesh.Dx, c.Dt)
	default:
		c.Coeffs = AssembleStandard(c.U, c.Mesh.Dx, c.Dt, c.West.Type, c.East.Type)
	}
	c.System = c.Coeffs.Matrix(c.Assembler)
	return c.Coeffs
}

func (c *Continuity) warnReversedFlow() {
	var (
		imax = c.Mesh.Imax
		u    = c.U
	)
	warn := func(end string, value float64) {
		log.WithFields(log.Fields{
			"boundary": end, "u": value,
		}).Warn("reversed flow at boundary")
	}
	switch c.West.Type {
	case utils.BCDirichlet, utils.BCNeumann:
		if u[0] < 0 {
			warn("west", u[0])
		}
	case utils.BCOutlet:
		if u[1] > 0 {
			warn("west", u[1])
		}
	}
	switch c.East.Type {
	case utils.BCDirichlet, utils.BCNeumann:
		if u[imax+1] > 0 {
			warn("east", u[imax+1])
		}
	case utils.BCOutlet:
		if u[imax] < 0 {
			warn("east", u[imax])
		}
	}
}

// Print logs the setup, one entry per group of parameters
func (c *Continuity) Print() {
	var (
		m = c.Mesh
	)
	log.WithFields(log.Fields{
		"xa": m.XA(), "xe": m.XE(), "dx": m.Dx[1], "imax": m.Imax,
	}).Info("mesh")
	log.WithFields(log.Fields{
		"t0": c.T0, "ta": c.Ta, "te": c.Te, "dt": c.Dt, "nmax": c.Steps, "dx/dt": m.Dx[1] / c.Dt,
	}).Info("time")
	log.WithFields(log.Fields{
		"west": c.West.Type, "east": c.East.Type, "assembler": c.Assembler,
		"IMAX": c.IMAX, "delta": c.Delta, "restart": c.Restarted,
	}).Info("solver")
	log.WithFields(log.Fields{
		"velocity": c.velocityProfile.Kind, "density": c.densityProfile.Kind,
	}).Info("initial profiles")
	if c.West.Type == utils.BCDynamic {
		log.WithField("function", c.West.Profile.Kind).Info("west dynamic boundary")
	}
	if c.East.Type == utils.BCDynamic {
		log.WithField("function", c.East.Profile.Kind).Info("east dynamic boundary")
	}
}
