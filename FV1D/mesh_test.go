package FV1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/continuity1d/utils"
)

func TestEquidistantMesh(t *testing.T) {
	m, err := NewEquidistantMesh(0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Imax)
	assert.Equal(t, 12, m.Len())
	assert.Equal(t, 1, m.Imin())
	for i := range m.Dx {
		assert.InDelta(t, 0.1, m.Dx[i], 1.e-15)
	}
	assert.InDelta(t, -0.05, m.X[0], 1.e-15)
	assert.InDelta(t, 0.05, m.X[1], 1.e-15)
	assert.InDelta(t, 0.95, m.X[10], 1.e-14)
	assert.InDelta(t, 1.05, m.X[11], 1.e-14)
	assert.InDelta(t, 0, m.XA(), 1.e-15)
	assert.InDelta(t, 1, m.XE(), 1.e-14)
	assert.InDelta(t, 1, m.Length(), 1.e-14)
	for i := 1; i < m.Len(); i++ {
		assert.Greater(t, m.X[i], m.X[i-1])
	}
}

func TestEquidistantMeshErrors(t *testing.T) {
	_, err := NewEquidistantMesh(0, 1, 1)
	assert.True(t, utils.IsConfigurationError(err))
	_, err = NewEquidistantMesh(1, 1, 10)
	assert.True(t, utils.IsConfigurationError(err))
	_, err = NewEquidistantMesh(2, 1, 10)
	assert.True(t, utils.IsConfigurationError(err))
}

func TestExternalMesh(t *testing.T) {
	x := []float64{-0.05, 0.05, 0.2, 0.45, 0.75, 0.8}
	dx := []float64{0.1, 0.1, 0.2, 0.3, 0.3, 0.1}
	m, err := NewMesh(x, dx)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Imax)
	// the mesh keeps its own copy
	x[1] = 100
	assert.Equal(t, 0.05, m.X[1])

	_, err = NewMesh([]float64{0, 1, 1, 2}, []float64{1, 1, 1, 1})
	assert.True(t, utils.IsConfigurationError(err))
	_, err = NewMesh([]float64{0, 1, 2, 3}, []float64{1, 1, 0, 1})
	assert.True(t, utils.IsConfigurationError(err))
	_, err = NewMesh([]float64{0, 1, 2}, []float64{1, 1, 1})
	assert.True(t, utils.IsConfigurationError(err))
	_, err = NewMesh([]float64{0, 1, 2, 3}, []float64{1, 1, 1})
	assert.True(t, utils.IsConfigurationError(err))
}

func TestVolumeIntegrate(t *testing.T) {
	m, err := NewEquidistantMesh(0, 2, 8)
	require.NoError(t, err)
	f := m.NewField()
	for i := range f {
		f[i] = 3
	}
	// ghost values do not contribute
	f[0], f[9] = 1000, -1000
	assert.InDelta(t, 6, m.VolumeIntegrate(f), 1.e-14)

	// midpoint rule is exact for linear profiles
	for i := range f {
		f[i] = m.X[i]
	}
	assert.InDelta(t, 2, m.VolumeIntegrate(f), 1.e-14)

	for i := range f {
		f[i] = math.Sin(math.Pi * m.X[i] / 2)
	}
	assert.InDelta(t, 4/math.Pi, m.VolumeIntegrate(f), 1.e-2)

	assert.Panics(t, func() { m.VolumeIntegrate(make([]float64, 3)) })
}
