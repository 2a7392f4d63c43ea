package ports

// RNG provides seeded random draws for deterministic simulation. Implementations
// own their random state; nothing in the domain touches a process-global
// generator.
type RNG interface {
	// ChoiceWeighted draws n values with replacement from values according to
	// the given weights. Weights need not be normalized but must be
	// non-negative with a positive total.
	ChoiceWeighted(values []float64, weights []float64, n int) ([]float64, error)

	// NormFloat64 returns a standard-normal variate.
	NormFloat64() float64
}
