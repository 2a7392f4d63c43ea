package inference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darksiren/domain/inference"
	"darksiren/internal/numerics"
)

func TestSummarize_GaussianPosterior(t *testing.T) {
	grid := numerics.Linspace(50, 90, 401)
	vals := make([]float64, len(grid))
	for i, h := range grid {
		vals[i] = inference.Density(h, 70, 3)
	}

	sum, err := inference.Summarize(grid, vals)
	require.NoError(t, err)

	assert.InDelta(t, 70.0, sum.Mean, 0.05)
	assert.InDelta(t, 70.0, sum.MAP, 0.15)
	assert.InDelta(t, 70-3, sum.CI68[0], 0.2)
	assert.InDelta(t, 70+3, sum.CI68[1], 0.2)
	assert.InDelta(t, 70-1.96*3, sum.CI95[0], 0.3)
	assert.InDelta(t, 70+1.96*3, sum.CI95[1], 0.3)
}

func TestSummarize_Invalid(t *testing.T) {
	_, err := inference.Summarize([]float64{70}, []float64{1})
	assert.Error(t, err)

	_, err = inference.Summarize([]float64{60, 70}, []float64{0, 0})
	assert.Error(t, err)
}
