package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBCName(t *testing.T) {
	tests := []struct {
		name string
		want BCType
	}{
		{"wall", BCWall},
		{" Dirichlet ", BCDirichlet},
		{"NEUMANN", BCNeumann},
		{"periodic", BCPeriodic},
		{"dynamic", BCDynamic},
		{"outflow", BCOutlet},
		{"0", BCWall},
		{"5", BCOutlet},
	}
	for _, tt := range tests {
		bc, err := ParseBCName(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, bc, tt.name)
	}
	for _, bad := range []string{"", "robin", "6", "-1"} {
		_, err := ParseBCName(bad)
		assert.Error(t, err, bad)
		assert.True(t, IsConfigurationError(err))
	}
}

func TestBCTypeString(t *testing.T) {
	assert.Equal(t, "Wall", BCWall.String())
	assert.Equal(t, "Outlet", BCOutlet.String())
	assert.Equal(t, "Unknown", BCType(42).String())
	assert.False(t, BCType(6).IsValid())
	assert.True(t, BCNeumann.FixesGhost())
	assert.True(t, BCDynamic.FixesGhost())
	assert.False(t, BCOutlet.FixesGhost())
	assert.False(t, BCWall.FixesGhost())
}

func TestResolvePeriodic(t *testing.T) {
	w, e, c := ResolvePeriodic(BCPeriodic, BCWall)
	assert.Equal(t, BCPeriodic, w)
	assert.Equal(t, BCPeriodic, e)
	assert.True(t, c)

	w, e, c = ResolvePeriodic(BCOutlet, BCPeriodic)
	assert.Equal(t, BCPeriodic, w)
	assert.Equal(t, BCPeriodic, e)
	assert.True(t, c)

	w, e, c = ResolvePeriodic(BCPeriodic, BCPeriodic)
	assert.Equal(t, BCPeriodic, w)
	assert.Equal(t, BCPeriodic, e)
	assert.False(t, c)

	w, e, c = ResolvePeriodic(BCDirichlet, BCOutlet)
	assert.Equal(t, BCDirichlet, w)
	assert.Equal(t, BCOutlet, e)
	assert.False(t, c)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("Cells", "must be at least %d, got %d", 2, 1)
	assert.Equal(t, "configuration error in Cells: must be at least 2, got 1", err.Error())
	wrapped := fmt.Errorf("reading input: %w", err)
	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsConfigurationError(fmt.Errorf("plain")))
	assert.Equal(t, "configuration error: bad", (&ConfigurationError{Reason: "bad"}).Error())
}
