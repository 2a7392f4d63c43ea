package rng

import (
	"fmt"
	"math/rand"
	"sort"

	"darksiren/domain/core"
)

// Seeded is a deterministic RNG adapter over math/rand. Each instance owns
// its generator; nothing here touches global random state.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded creates a generator from the given seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

// ChoiceWeighted draws n values with replacement according to the weights,
// via cumulative sums and binary search. Weights must be non-negative with a
// positive total.
func (s *Seeded) ChoiceWeighted(values []float64, weights []float64, n int) ([]float64, error) {
	if len(values) != len(weights) {
		return nil, core.NewValidationError("weights", fmt.Sprintf("values (%d) and weights (%d) must align", len(values), len(weights)))
	}
	if len(values) == 0 {
		return nil, core.ErrEmptyCatalog
	}
	if n < 0 {
		return nil, core.NewValidationError("n", "draw count must be non-negative")
	}

	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w < 0 {
			return nil, core.NewValidationError("weights", fmt.Sprintf("negative weight %g at index %d", w, i))
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, core.ErrZeroRateWeights
	}

	out := make([]float64, n)
	for i := range out {
		u := s.r.Float64() * total
		// First index with cumulative weight strictly above u; zero-weight
		// entries can never be selected.
		idx := sort.Search(len(cum), func(j int) bool { return cum[j] > u })
		if idx == len(cum) {
			idx = len(cum) - 1
		}
		out[i] = values[idx]
	}
	return out, nil
}

// NormFloat64 returns a standard-normal variate.
func (s *Seeded) NormFloat64() float64 {
	return s.r.NormFloat64()
}
