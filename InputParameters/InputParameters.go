package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/continuity1d/FV1D"
	"github.com/notargets/continuity1d/model_problems/Continuity1D"
	"github.com/notargets/continuity1d/profiles"
	"github.com/notargets/continuity1d/readfiles"
	"github.com/notargets/continuity1d/utils"
)

// InputVersion is the input file layout understood by this package
const InputVersion = "2"

// Profile places one library function: Amplitude * f((x - Shift) / Width) + Base
type Profile struct {
	Function  string  `yaml:"Function"`
	Shift     float64 `yaml:"Shift"`
	Base      float64 `yaml:"Base"`
	Width     float64 `yaml:"Width"`
	Amplitude float64 `yaml:"Amplitude"`
}

// InitialProfile adds offsets to the ghost cells after the profile is applied
type InitialProfile struct {
	Profile   `yaml:",inline"`
	GhostWest float64 `yaml:"GhostWest"`
	GhostEast float64 `yaml:"GhostEast"`
}

// Boundary is one domain end, Function is evaluated over time for a Dynamic boundary
type Boundary struct {
	Type    string `yaml:"Type"`
	Profile `yaml:",inline"`
}

// Parameters obtained from the YAML input file
type InputParameters1D struct {
	Title          string         `yaml:"Title"`
	Version        string         `yaml:"Version"`
	XMin           float64        `yaml:"XMin"`
	XMax           float64        `yaml:"XMax"`
	Cells          int            `yaml:"Cells"`
	MeshFile       string         `yaml:"MeshFile"` // Read centers and widths instead of an equidistant mesh
	StartTime      float64        `yaml:"StartTime"`
	TimeStep       float64        `yaml:"TimeStep"`
	Steps          int            `yaml:"Steps"`
	MaxIterations  int            `yaml:"MaxIterations"`
	Tolerance      float64        `yaml:"Tolerance"`
	SampleInterval int            `yaml:"SampleInterval"`
	Density        InitialProfile `yaml:"Density"`
	Velocity       InitialProfile `yaml:"Velocity"`
	West           Boundary       `yaml:"West"`
	East           Boundary       `yaml:"East"`
	UserFunctions  []string       `yaml:"UserFunctions"` // Expressions in x for UserDefined01 and UserDefined02
	Restart        bool           `yaml:"Restart"`
	Graph          bool           `yaml:"Graph"`
}

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate checks everything that does not need the mesh or the profile library
func (ip *InputParameters1D) Validate() (err error) {
	switch {
	case len(ip.Version) != 0 && ip.Version != InputVersion:
		return utils.NewConfigurationError("Version", "input file version %q, expected %q", ip.Version, InputVersion)
	case ip.Cells < 2:
		return utils.NewConfigurationError("Cells", "need at least 2 cells, got %d", ip.Cells)
	case len(ip.MeshFile) == 0 && !(ip.XMax > ip.XMin):
		return utils.NewConfigurationError("XMax", "domain end %v must be greater than start %v", ip.XMax, ip.XMin)
	case !(ip.TimeStep > 0):
		return utils.NewConfigurationError("TimeStep", "must be positive, got %v", ip.TimeStep)
	case ip.Steps < 0:
		return utils.NewConfigurationError("Steps", "must not be negative, got %d", ip.Steps)
	case ip.MaxIterations < 1:
		return utils.NewConfigurationError("MaxIterations", "must be at least 1, got %d", ip.MaxIterations)
	case !(ip.Tolerance > 0):
		return utils.NewConfigurationError("Tolerance", "must be positive, got %v", ip.Tolerance)
	case len(ip.UserFunctions) > 2:
		return utils.NewConfigurationError("UserFunctions", "at most 2 user functions, got %d", len(ip.UserFunctions))
	}
	if _, _, err = ip.BoundaryTypes(); err != nil {
		return
	}
	for _, p := range []Profile{ip.Density.Profile, ip.Velocity.Profile} {
		if _, err = p.Affine(); err != nil {
			return
		}
	}
	return
}

// BoundaryTypes parses the west and east boundary names
func (ip *InputParameters1D) BoundaryTypes() (west, east utils.BCType, err error) {
	if west, err = utils.ParseBCName(ip.West.Type); err != nil {
		err = fmt.Errorf("West: %w", err)
		return
	}
	if east, err = utils.ParseBCName(ip.East.Type); err != nil {
		err = fmt.Errorf("East: %w", err)
	}
	return
}

func (p Profile) Affine() (a profiles.Affine, err error) {
	var k profiles.Kind
	if k, err = profiles.ParseKind(p.Function); err != nil {
		return
	}
	a = profiles.Affine{Kind: k, Shift: p.Shift, Base: p.Base, Width: p.Width, Amplitude: p.Amplitude}
	return
}

func (ip *InputParameters1D) Mesh(verbose bool) (m *FV1D.Mesh, err error) {
	if len(ip.MeshFile) != 0 {
		return readfiles.ReadMesh1D(ip.MeshFile, ip.Cells, verbose)
	}
	return FV1D.NewEquidistantMesh(ip.XMin, ip.XMax, ip.Cells)
}

// Config assembles the solver setup, restart is only used when Restart is set
func (ip *InputParameters1D) Config(m *FV1D.Mesh, restart *Continuity1D.RestartState) (cfg Continuity1D.Config, err error) {
	var (
		lib *profiles.Library
	)
	if err = ip.Validate(); err != nil {
		return
	}
	// Dirac is normalized with the west ghost width, exact on equidistant meshes only
	if lib, err = profiles.NewLibrary(m.Dx[0], ip.UserFunctions...); err != nil {
		return
	}
	cfg = Continuity1D.Config{
		Mesh:           m,
		Library:        lib,
		StartTime:      ip.StartTime,
		TimeStep:       ip.TimeStep,
		Steps:          ip.Steps,
		MaxIterations:  ip.MaxIterations,
		Tolerance:      ip.Tolerance,
		SampleInterval: ip.SampleInterval,
	}
	if cfg.West.Type, cfg.East.Type, err = ip.BoundaryTypes(); err != nil {
		return
	}
	if cfg.West.Type == utils.BCDynamic {
		if cfg.West.Profile, err = ip.West.Affine(); err != nil {
			return
		}
	}
	if cfg.East.Type == utils.BCDynamic {
		if cfg.East.Profile, err = ip.East.Affine(); err != nil {
			return
		}
	}
	if cfg.Density.Affine, err = ip.Density.Affine(); err != nil {
		return
	}
	cfg.Density.GhostWest, cfg.Density.GhostEast = ip.Density.GhostWest, ip.Density.GhostEast
	if cfg.Velocity.Affine, err = ip.Velocity.Affine(); err != nil {
		return
	}
	cfg.Velocity.GhostWest, cfg.Velocity.GhostEast = ip.Velocity.GhostWest, ip.Velocity.GhostEast
	if ip.Restart {
		if restart == nil {
			err = utils.NewConfigurationError("Restart", "restart requested but no stored state supplied")
			return
		}
		cfg.Restart = restart
	}
	return
}

func (p Profile) String() string {
	return fmt.Sprintf("%g * %s((x - %g) / %g) + %g", p.Amplitude, p.Function, p.Shift, p.Width, p.Base)
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if len(ip.MeshFile) != 0 {
		fmt.Printf("[%s]\t\t= Mesh File\n", ip.MeshFile)
	} else {
		fmt.Printf("[%8.5f, %8.5f]\t= Domain\n", ip.XMin, ip.XMax)
	}
	fmt.Printf("[%d]\t\t\t\t= Cells\n", ip.Cells)
	fmt.Printf("%8.5f\t\t= StartTime\n", ip.StartTime)
	fmt.Printf("%8.5g\t\t= TimeStep\n", ip.TimeStep)
	fmt.Printf("[%d]\t\t\t\t= Steps\n", ip.Steps)
	fmt.Printf("[%d]\t\t\t\t= MaxIterations\n", ip.MaxIterations)
	fmt.Printf("%8.2e\t\t= Tolerance\n", ip.Tolerance)
	fmt.Printf("%s\t= Density\n", ip.Density.Profile)
	fmt.Printf("%s\t= Velocity\n", ip.Velocity.Profile)
	for _, b := range []struct {
		name string
		bc   Boundary
	}{{"West", ip.West}, {"East", ip.East}} {
		if bt, err := utils.ParseBCName(b.bc.Type); err == nil && bt == utils.BCDynamic {
			fmt.Printf("BCs[%s] = %s, %s\n", b.name, b.bc.Type, b.bc.Profile)
		} else {
			fmt.Printf("BCs[%s] = %s\n", b.name, b.bc.Type)
		}
	}
	for i, uf := range ip.UserFunctions {
		fmt.Printf("UserDefined0%d(x) = %s\n", i+1, uf)
	}
	if ip.Restart {
		fmt.Printf("Continuing a previous run\n")
	}
}

// Example is a complete input file, a step front entering through a Dirichlet boundary
var Example = `
########################################
Title: "Step front"
Version: "2"
XMin: 0
XMax: 1
Cells: 100
StartTime: 0
TimeStep: 0.001
Steps: 1000
MaxIterations: 100
Tolerance: 1.e-10
Density:
  Function: Constant
  Amplitude: 0
  Width: 1
  GhostWest: 1 # Dirichlet value
Velocity:
  Function: Constant
  Amplitude: 1
  Width: 1
West:
  Type: Dirichlet # Wall, Dirichlet, Neumann, Periodic, Dynamic, Outlet
East:
  Type: Outlet
# A Dynamic boundary uses a function of time:
#   Type: Dynamic
#   Function: Sine
#   Amplitude: 0.5
#   Base: 1
#   Width: 1
# UserFunctions: ["exp(-x*x)"]  # selected with Function: UserDefined01
Restart: false
########################################
`
