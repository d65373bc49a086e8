package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonFinite(t *testing.T) {
	f := ConstArray(5, 1)
	assert.Equal(t, -1, NonFinite(f))
	assert.Equal(t, -1, NonFinite(nil))
	f[3] = math.Inf(-1)
	assert.Equal(t, 3, NonFinite(f))
	f[1] = math.NaN()
	assert.Equal(t, 1, NonFinite(f))
	assert.Contains(t, GetMemUsage(), "NumGC")
}
