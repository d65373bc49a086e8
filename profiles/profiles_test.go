package profiles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/continuity1d/utils"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"constant", Constant},
		{"Gauss", Gauss},
		{"linear_ramp", LinearRamp},
		{"cosine-ramp", CosineRamp},
		{"COSPEAK", CosPeak},
		{"12", Dirac},
		{" 3 ", Rectangle},
		{"0", Constant},
		{"user1", UserDefined01},
		{"UserDefined02", UserDefined02},
	}
	for _, tt := range tests {
		k, err := ParseKind(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, k, tt.name)
	}
	for _, bad := range []string{"", "bessel", "17", "-2", "1-3", "1_2", "+-1"} {
		_, err := ParseKind(bad)
		assert.True(t, utils.IsConfigurationError(err), bad)
	}
	assert.Equal(t, "Heaviside", Heaviside.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestPiecewiseFunctions(t *testing.T) {
	lib, err := NewLibrary(0.1)
	require.NoError(t, err)
	tests := []struct {
		kind Kind
		x    float64
		want float64
	}{
		{Constant, 17, 1},
		{Linear, -2.5, -2.5},
		{Parabola, -3, 9},
		{Rectangle, -0.5, 0},
		{Rectangle, -0.49, 1},
		{Rectangle, 0.5, 1},
		{Rectangle, 0.51, 0},
		{Triangle, -1, 0},
		{Triangle, -0.25, 0.75},
		{Triangle, 0, 1},
		{Triangle, 0.25, 0.75},
		{Triangle, 1.5, 0},
		{Sawtooth, 0, 0},
		{Sawtooth, 0.5, 0.5},
		{Sawtooth, 1, 1},
		{Sawtooth, 1.01, 0},
		{LinearRamp, -1, 0},
		{LinearRamp, 0.3, 0.3},
		{LinearRamp, 7, 1},
		{CosineRamp, -1, 0},
		{CosineRamp, 0.5, 0.5},
		{CosineRamp, 2, 1},
		{Sine, 0.25, 1},
		{Cosine, 0.5, -1},
		{Exponential, 0, 1},
		{Gauss, 0, 1},
		{Heaviside, -1.e-300, 0},
		{Heaviside, 0, 1},
		{CosPeak, 0, 1},
		{CosPeak, 0.5, 0},
		{CosPeak, -0.5, 0},
		{CosPeak, 0.25, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, lib.Eval(tt.kind, tt.x), 1.e-14, "%s(%v)", tt.kind, tt.x)
	}
}

func TestGaussIsNormalized(t *testing.T) {
	lib, err := NewLibrary(0.1)
	require.NoError(t, err)
	var (
		sum float64
		h   = 1.e-3
	)
	for x := -10.; x <= 10; x += h {
		sum += lib.Eval(Gauss, x) * h
	}
	assert.InDelta(t, 1, sum, 1.e-6)
}

func TestDiracExactEquality(t *testing.T) {
	lib, err := NewLibrary(0.25)
	require.NoError(t, err)
	assert.Equal(t, 4., lib.Eval(Dirac, 0))
	// the comparison is exact: any rounding residue misses the impulse
	assert.Equal(t, 0., lib.Eval(Dirac, 1.e-17))
	x, y := 0.1, 0.2
	assert.Equal(t, 0., lib.Eval(Dirac, x+y-0.3))
	a := Affine{Kind: Dirac, Shift: 0.3, Width: 1, Amplitude: 1}
	assert.Equal(t, 0., a.Apply(lib, x+y))
	assert.Equal(t, 4., a.Apply(lib, 0.3))
}

func TestAffine(t *testing.T) {
	lib, err := NewLibrary(0.1)
	require.NoError(t, err)
	a := Affine{Kind: Linear, Shift: 1, Base: 2, Width: 0.5, Amplitude: 3}
	// 3 * ((2 - 1) / 0.5) + 2
	assert.InDelta(t, 8, a.Apply(lib, 2), 1.e-15)
	require.NoError(t, a.Validate(lib))
	a.Width = 0
	assert.True(t, utils.IsConfigurationError(a.Validate(lib)))
}

func TestUserDefined(t *testing.T) {
	lib, err := NewLibrary(0.1, "x*x + 2", "sin(pi*x) + max(x, 0.25)")
	require.NoError(t, err)
	assert.InDelta(t, 6, lib.Eval(UserDefined01, 2), 1.e-14)
	assert.InDelta(t, 1.5, lib.Eval(UserDefined02, 0.5), 1.e-14)
	assert.NoError(t, lib.Check(UserDefined01))

	lib, err = NewLibrary(0.1, "", "exp(-x)")
	require.NoError(t, err)
	assert.True(t, utils.IsConfigurationError(lib.Check(UserDefined01)))
	assert.True(t, math.IsNaN(lib.Eval(UserDefined01, 1)))
	assert.InDelta(t, math.Exp(-1), lib.Eval(UserDefined02, 1), 1.e-15)

	for _, bad := range []string{"x +* 2", "y + 1", "x > 1", "bessel(x)"} {
		_, err = NewLibrary(0.1, bad)
		assert.True(t, utils.IsConfigurationError(err), bad)
	}
	_, err = NewLibrary(0.1, "x", "x", "x")
	assert.True(t, utils.IsConfigurationError(err))
	assert.True(t, utils.IsConfigurationError(lib.Check(Kind(40))))
}
