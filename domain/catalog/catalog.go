package catalog

import (
	"fmt"

	"darksiren/domain/core"
)

// Catalog is an immutable collection of galaxy redshifts. Order carries no
// meaning and duplicates are allowed.
type Catalog struct {
	redshifts []float64
	maxZ      float64
}

// New validates and copies the given redshifts into a Catalog.
func New(redshifts []float64) (*Catalog, error) {
	if len(redshifts) == 0 {
		return nil, core.ErrEmptyCatalog
	}
	zs := make([]float64, len(redshifts))
	maxZ := redshifts[0]
	for i, z := range redshifts {
		if z < 0 {
			return nil, core.NewValidationError("redshift", fmt.Sprintf("negative value %g at index %d", z, i))
		}
		zs[i] = z
		if z > maxZ {
			maxZ = z
		}
	}
	return &Catalog{redshifts: zs, maxZ: maxZ}, nil
}

// NewEvenlySpaced builds a synthetic catalog of n galaxies at redshifts
// step, 2*step, ..., n*step. It stands in when no catalog file is available.
func NewEvenlySpaced(n int, step float64) (*Catalog, error) {
	if n <= 0 {
		return nil, core.NewValidationError("n", fmt.Sprintf("catalog size must be positive, got %d", n))
	}
	if step <= 0 {
		return nil, core.NewValidationError("step", fmt.Sprintf("redshift spacing must be positive, got %g", step))
	}
	zs := make([]float64, n)
	for i := range zs {
		zs[i] = float64(i+1) * step
	}
	return &Catalog{redshifts: zs, maxZ: zs[n-1]}, nil
}

// Len returns the number of galaxies.
func (c *Catalog) Len() int {
	return len(c.redshifts)
}

// Redshifts returns the galaxy redshifts. Callers must treat the slice as
// read-only.
func (c *Catalog) Redshifts() []float64 {
	return c.redshifts
}

// MaxZ returns the largest redshift in the catalog.
func (c *Catalog) MaxZ() float64 {
	return c.maxZ
}

// RateWeights returns the normalized probability of each galaxy hosting an
// event under a constant-rate model truncated at zcut: uniform weight for
// galaxies at or below zcut, zero above. Fails when every galaxy lies above
// the cutoff.
func (c *Catalog) RateWeights(zcut float64) ([]float64, error) {
	weights := make([]float64, len(c.redshifts))
	eligible := 0
	for i, z := range c.redshifts {
		if z <= zcut {
			weights[i] = 1
			eligible++
		}
	}
	if eligible == 0 {
		return nil, core.ErrZeroRateWeights
	}
	norm := float64(eligible)
	for i := range weights {
		weights[i] /= norm
	}
	return weights, nil
}
