package density

import (
	"fmt"

	"darksiren/domain/catalog"
	"darksiren/domain/core"
	"darksiren/domain/inference"
	"darksiren/internal/numerics"
	"darksiren/ports"
)

// Grid construction constants, fixed by the method being reproduced.
const (
	th21GridMin  = 1e-4
	th21GridSize = 50000

	fullGridMin   = 1e-3
	fullGridSize  = 100000
	localGridSize = 50000
)

// BuildTH21 constructs the p(z|catalog) curve assuming a constant rate, in
// the style of TH21 (arXiv:2112.00241): one Gaussian kernel per galaxy with
// the modeled redshift uncertainty, summed on a log-spaced grid spanning
// [1e-4, max z]. The result is intentionally left unnormalized to match the
// published method; callers must not assume a unit integral.
func BuildTH21(cat *catalog.Catalog) (*numerics.Curve, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, core.ErrEmptyCatalog
	}
	if cat.MaxZ() <= th21GridMin {
		return nil, core.NewValidationError("catalog", fmt.Sprintf("max redshift %g must exceed grid floor %g", cat.MaxZ(), th21GridMin))
	}

	grid := numerics.LogSpaced(th21GridMin, cat.MaxZ(), th21GridSize)
	vals := make([]float64, len(grid))
	for _, z := range cat.Redshifts() {
		s := catalog.SigmaZ(z)
		for k := range grid {
			vals[k] += inference.Density(grid[k], z, s)
		}
	}
	return numerics.NewCurve(grid, vals)
}

// Config controls the full density builder.
type Config struct {
	// ZRateCut is the maximum redshift of the event rate; the density grid
	// spans [1e-3, ZRateCut].
	ZRateCut float64
	// NoVolumeWeight disables the comoving-volume prior, leaving a flat
	// weighting in redshift.
	NoVolumeWeight bool
}

// Build constructs the normalized p(z|catalog) curve from observed galaxy
// redshifts and their per-galaxy uncertainty estimates. Each galaxy's kernel
// is locally normalized by integrating kernel times volume weight over a
// tight sub-grid around the observation; galaxies whose local integral is
// non-finite or non-positive contribute nothing and are counted in skipped.
// The summed curve is normalized to unit trapezoidal integral; a summed curve
// with no finite mass is a fatal error, never masked.
func Build(obsZ, obsSigma []float64, cfg Config, cosmo ports.Cosmology) (curve *numerics.Curve, skipped int, err error) {
	if len(obsZ) == 0 {
		return nil, 0, core.ErrEmptyCatalog
	}
	if len(obsZ) != len(obsSigma) {
		return nil, 0, core.NewValidationError("catalog", fmt.Sprintf("observed redshifts (%d) and uncertainties (%d) must align", len(obsZ), len(obsSigma)))
	}
	if cfg.ZRateCut <= fullGridMin {
		return nil, 0, core.NewValidationError("z_rate_cut", fmt.Sprintf("must exceed grid floor %g", fullGridMin))
	}
	for i, s := range obsSigma {
		if s <= 0 {
			return nil, 0, fmt.Errorf("galaxy %d uncertainty: %w", i, core.ErrNonPositiveSigma)
		}
	}

	grid := numerics.LogSpaced(fullGridMin, cfg.ZRateCut, fullGridSize)
	sigmaGrid := catalog.SigmaZSlice(grid)
	volGrid := volumeWeight(grid, cfg, cosmo)

	sum := make([]float64, len(grid))
	pval := make([]float64, localGridSize)
	for i := range obsZ {
		zmin := obsZ[i] - 3*obsSigma[i]
		if zmin < 0 {
			zmin = 0
		}
		zeval := numerics.Linspace(zmin, obsZ[i]+5*obsSigma[i], localGridSize)
		vol := volumeWeight(zeval, cfg, cosmo)
		for k := range zeval {
			// Redshift likelihood times prior, with the catalog sigma model.
			pval[k] = inference.Density(zeval[k], obsZ[i], catalog.SigmaZ(zeval[k])) * vol[k]
		}
		normFact := numerics.Trapezoid(zeval, pval)
		if !numerics.IsFinite(normFact) || normFact <= 0 {
			skipped++
			continue
		}
		for k := range grid {
			sum[k] += inference.Density(grid[k], obsZ[i], sigmaGrid[k]) * volGrid[k] / normFact
		}
	}

	total := numerics.Trapezoid(grid, sum)
	if !numerics.IsFinite(total) || total <= 0 {
		return nil, skipped, fmt.Errorf("density normalization: %w", core.NewDegenerateError("summed density integral", total))
	}
	for k := range sum {
		sum[k] /= total
	}
	curve, err = numerics.NewCurve(grid, sum)
	return curve, skipped, err
}

func volumeWeight(z []float64, cfg Config, cosmo ports.Cosmology) []float64 {
	if cfg.NoVolumeWeight {
		flat := make([]float64, len(z))
		for i := range flat {
			flat[i] = 1
		}
		return flat
	}
	return cosmo.DifferentialComovingVolume(z)
}
