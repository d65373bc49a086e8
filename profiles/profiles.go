// Package profiles evaluates the parametric one argument functions used to
// seed initial fields and time dependent boundary values.
//
// The set of functions is closed: a Kind selects one entry by its index, which
// is also the number used in input files. Two user slots evaluate expressions
// supplied at setup.
package profiles

import (
	"math"
	"strconv"
	"strings"

	"github.com/notargets/continuity1d/utils"
)

type Kind uint8

const (
	Constant Kind = iota
	Linear
	Parabola
	Rectangle
	Triangle
	Sawtooth
	LinearRamp
	CosineRamp
	Sine
	Cosine
	Exponential
	Gauss
	Dirac
	Heaviside
	CosPeak
	UserDefined01
	UserDefined02
)

var kindNames = []string{
	"Constant",
	"Linear",
	"Parabola",
	"Rectangle",
	"Triangle",
	"Sawtooth",
	"LinearRamp",
	"CosineRamp",
	"Sine",
	"Cosine",
	"Exponential",
	"Gauss",
	"Dirac",
	"Heaviside",
	"CosPeak",
	"UserDefined01",
	"UserDefined02",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

func (k Kind) IsValid() bool { return int(k) < len(kindNames) }

// IsUserDefined is true for the two expression slots
func (k Kind) IsUserDefined() bool { return k == UserDefined01 || k == UserDefined02 }

// ParseKind accepts a function name (case-insensitive, "_" and "-" ignored) or its index
func ParseKind(name string) (k Kind, err error) {
	trimmed := strings.TrimSpace(name)
	if n, convErr := strconv.Atoi(trimmed); convErr == nil {
		if n >= 0 && n < len(kindNames) {
			return Kind(n), nil
		}
		err = utils.NewConfigurationError("Function", "profile function index %d out of range [0, %d]", n, len(kindNames)-1)
		return
	}
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(trimmed))
	for i, kn := range kindNames {
		if key == strings.ToLower(kn) {
			return Kind(i), nil
		}
	}
	switch key {
	case "user1", "userdefined1":
		return UserDefined01, nil
	case "user2", "userdefined2":
		return UserDefined02, nil
	}
	err = utils.NewConfigurationError("Function", "unknown profile function %q", name)
	return
}

// Library evaluates every Kind. Dx is the grid spacing that normalizes Dirac.
type Library struct {
	Dx   float64
	user [2]*expression
}

// NewLibrary compiles the user expressions, the first string goes to
// UserDefined01 and the second to UserDefined02. Empty strings leave a slot unset.
func NewLibrary(dx float64, userExpressions ...string) (lib *Library, err error) {
	if len(userExpressions) > 2 {
		err = utils.NewConfigurationError("UserFunctions", "at most 2 user functions, got %d", len(userExpressions))
		return
	}
	lib = &Library{Dx: dx}
	for i, src := range userExpressions {
		if len(strings.TrimSpace(src)) == 0 {
			continue
		}
		if lib.user[i], err = compileExpression(src); err != nil {
			lib = nil
			return
		}
	}
	return
}

// Check returns a ConfigurationError if k cannot be evaluated by this library
func (lib *Library) Check(k Kind) error {
	if !k.IsValid() {
		return utils.NewConfigurationError("Function", "profile function index %d out of range", k)
	}
	if k.IsUserDefined() && lib.user[k-UserDefined01] == nil {
		return utils.NewConfigurationError("UserFunctions", "%s selected but no expression supplied", k)
	}
	return nil
}

// Eval returns f_k(x). User slots that fail at runtime return NaN.
func (lib *Library) Eval(k Kind, x float64) float64 {
	switch k {
	case Constant:
		return 1
	case Linear:
		return x
	case Parabola:
		return x * x
	case Rectangle:
		// <= on the left keeps the integral at exactly 1
		if x <= -0.5 || x > 0.5 {
			return 0
		}
		return 1
	case Triangle:
		switch {
		case x <= -1:
			return 0
		case x <= 0:
			return 1 + x
		case x <= 1:
			return 1 - x
		}
		return 0
	case Sawtooth:
		if x <= 0 || x > 1 {
			return 0
		}
		return x
	case LinearRamp:
		switch {
		case x <= 0:
			return 0
		case x <= 1:
			return x
		}
		return 1
	case CosineRamp:
		switch {
		case x <= 0:
			return 0
		case x <= 1:
			return 0.5 * (1 - math.Cos(math.Pi*x))
		}
		return 1
	case Sine:
		return math.Sin(2 * math.Pi * x)
	case Cosine:
		return math.Cos(2 * math.Pi * x)
	case Exponential:
		return math.Exp(x)
	case Gauss:
		// normalized, integral over the real line is 1
		return math.Exp(-math.Pi * x * x)
	case Dirac:
		// exact comparison: only hits when x falls on a cell center bit for bit
		if x == 0 {
			return 1 / lib.Dx
		}
		return 0
	case Heaviside:
		if x < 0 {
			return 0
		}
		return 1
	case CosPeak:
		if x <= -0.5 || x >= 0.5 {
			return 0
		}
		return 0.5 * (1 + math.Cos(2*math.Pi*x))
	case UserDefined01, UserDefined02:
		e := lib.user[k-UserDefined01]
		if e == nil {
			return math.NaN()
		}
		y, err := e.eval(x)
		if err != nil {
			return math.NaN()
		}
		return y
	}
	panic("unknown profile kind " + strconv.Itoa(int(k)))
}

// Affine places a profile: value = Amplitude * f((x - Shift) / Width) + Base
type Affine struct {
	Kind      Kind
	Shift     float64
	Base      float64
	Width     float64
	Amplitude float64
}

func (a Affine) Apply(lib *Library, x float64) float64 {
	return a.Amplitude*lib.Eval(a.Kind, (x-a.Shift)/a.Width) + a.Base
}

// Validate checks the transform can be applied with lib
func (a Affine) Validate(lib *Library) error {
	if a.Width == 0 {
		return utils.NewConfigurationError("Width", "profile %s has zero width", a.Kind)
	}
	return lib.Check(a.Kind)
}
