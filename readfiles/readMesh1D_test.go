package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/continuity1d/FV1D"
	"github.com/notargets/continuity1d/utils"
)

var meshFile = `# stretched grid, 3 cells
-0.05 0.1
0.05  0.1

% finer toward the east
0.175 0.15
0.3 0.1
0.375 0.05
`

func TestParseMesh1D(t *testing.T) {
	{
		m, err := ParseMesh1D(strings.NewReader(meshFile), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, m.Imax)
		assert.Equal(t, []float64{-0.05, 0.05, 0.175, 0.3, 0.375}, m.X)
		assert.Equal(t, []float64{0.1, 0.1, 0.15, 0.1, 0.05}, m.Dx)
		assert.InDelta(t, 0.35, m.Length(), 1.e-15)
	}
	// no trailing newline on the last cell
	{
		m, err := ParseMesh1D(strings.NewReader("0 1\n1 1\n2 1\n3 1"), 2)
		require.NoError(t, err)
		assert.Equal(t, 3., m.X[3])
	}
	tests := []struct {
		data string
		imax int
	}{
		{meshFile, 4},                // too few lines
		{"0 1\n1 1\n2 x\n3 1\n", 2},  // not a number
		{"0 1\n1 1\n2\n3 1\n", 2},    // missing width
		{"0 1\n2 1\n1 1\n3 1\n", 2},  // centers out of order
		{"0 1\n1 -1\n2 1\n3 1\n", 2}, // negative width
		{"0 1\n1 1\n2 1\n", 1},       // too small
	}
	for i, tt := range tests {
		_, err := ParseMesh1D(strings.NewReader(tt.data), tt.imax)
		assert.True(t, utils.IsConfigurationError(err), "case %d: %v", i, err)
	}
}

func TestReadWriteMesh1D(t *testing.T) {
	m, err := FV1D.NewEquidistantMesh(-1, 2, 7)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteMesh1D(&buf, m))
	fileName := filepath.Join(t.TempDir(), "mesh.dat")
	require.NoError(t, os.WriteFile(fileName, buf.Bytes(), 0644))

	mr, err := ReadMesh1D(fileName, 7, false)
	require.NoError(t, err)
	for i := range m.X {
		assert.InDelta(t, m.X[i], mr.X[i], 1.e-13)
		assert.InDelta(t, m.Dx[i], mr.Dx[i], 1.e-13)
	}

	_, err = ReadMesh1D(filepath.Join(t.TempDir(), "missing.dat"), 7, false)
	assert.True(t, utils.IsConfigurationError(err))
}
