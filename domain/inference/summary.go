package inference

import (
	"darksiren/domain/core"
	"darksiren/internal/numerics"
)

// Summary condenses a normalized 1D posterior over the H0 grid.
type Summary struct {
	Mean float64    `json:"mean"`
	MAP  float64    `json:"map"`
	CI68 [2]float64 `json:"ci68"`
	CI95 [2]float64 `json:"ci95"`
}

// Summarize computes the posterior mean, the grid argmax and central credible
// intervals from a density sampled on the H0 grid. The density is
// renormalized internally, so slight deviations from unit integral are
// harmless.
func Summarize(h0Grid, density []float64) (Summary, error) {
	var s Summary
	if len(h0Grid) < 2 || len(h0Grid) != len(density) {
		return s, core.NewValidationError("posterior", "grid and density must be aligned with at least 2 points")
	}
	total := numerics.Trapezoid(h0Grid, density)
	if !numerics.IsFinite(total) || total <= 0 {
		return s, core.NewDegenerateError("posterior integral", total)
	}

	weighted := make([]float64, len(h0Grid))
	maxIdx := 0
	for i := range h0Grid {
		weighted[i] = h0Grid[i] * density[i]
		if density[i] > density[maxIdx] {
			maxIdx = i
		}
	}
	s.Mean = numerics.Trapezoid(h0Grid, weighted) / total
	s.MAP = h0Grid[maxIdx]

	s.CI68 = [2]float64{quantile(h0Grid, density, total, 0.16), quantile(h0Grid, density, total, 0.84)}
	s.CI95 = [2]float64{quantile(h0Grid, density, total, 0.025), quantile(h0Grid, density, total, 0.975)}
	return s, nil
}

// quantile inverts the cumulative trapezoidal integral at probability q.
func quantile(x, y []float64, total, q float64) float64 {
	target := q * total
	var cum float64
	for i := 1; i < len(x); i++ {
		step := (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
		if cum+step >= target {
			if step <= 0 {
				return x[i]
			}
			t := (target - cum) / step
			return x[i-1] + t*(x[i]-x[i-1])
		}
		cum += step
	}
	return x[len(x)-1]
}
