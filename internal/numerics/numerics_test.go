package numerics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrapezoid_NonuniformGrid(t *testing.T) {
	// y = 2x on x = [0, 1, 3]: exact integral is 9 and the trapezoidal rule
	// is exact for linear integrands.
	x := []float64{0, 1, 3}
	y := []float64{0, 2, 6}
	assert.InDelta(t, 9.0, Trapezoid(x, y), 1e-12)
}

func TestLogSpaced(t *testing.T) {
	grid := LogSpaced(1e-4, 0.5, 100)
	require.Len(t, grid, 100)
	assert.InDelta(t, 1e-4, grid[0], 1e-12)
	assert.InDelta(t, 0.5, grid[99], 1e-12)
	for i := 1; i < len(grid); i++ {
		assert.Greater(t, grid[i], grid[i-1])
	}
	// Log spacing: constant ratio between neighbors
	r0 := grid[1] / grid[0]
	r1 := grid[51] / grid[50]
	assert.InDelta(t, r0, r1, 1e-9)
}

func TestLinspace(t *testing.T) {
	grid := Linspace(0, 1, 11)
	require.Len(t, grid, 11)
	assert.InDelta(t, 0.0, grid[0], 1e-12)
	assert.InDelta(t, 0.5, grid[5], 1e-12)
	assert.InDelta(t, 1.0, grid[10], 1e-12)
}

func TestCurve_LinearInsideZeroOutside(t *testing.T) {
	c, err := NewCurve([]float64{0, 1, 2}, []float64{0, 1, 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, c.At(0.5), 1e-12)
	assert.InDelta(t, 1.0, c.At(1), 1e-12)
	assert.InDelta(t, 0.25, c.At(1.75), 1e-12)
	assert.Equal(t, 0.0, c.At(-0.1))
	assert.Equal(t, 0.0, c.At(2.1))
	assert.InDelta(t, 1.0, c.Integral(), 1e-12)
}

func TestNewCurve_Invalid(t *testing.T) {
	_, err := NewCurve([]float64{0, 1}, []float64{0})
	assert.Error(t, err)

	_, err = NewCurve([]float64{0}, []float64{1})
	assert.Error(t, err)
}
