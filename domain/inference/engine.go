package inference

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"darksiren/domain/catalog"
	"darksiren/domain/core"
	"darksiren/internal/numerics"
)

// Cosmology is the slice of the cosmology contract the engines consume.
// LuminosityDistance(z)*H0() must be independent of H0 at fixed Omega_m, so a
// reference cosmology is evaluated once and rescaled per trial H0 instead of
// re-integrating the distance relation at every grid point.
type Cosmology interface {
	H0() float64
	LuminosityDistance(z []float64) []float64
}

// Variant names a posterior strategy. The three strategies encode deliberately
// different modeling assumptions and are kept as a closed set selected
// explicitly by the caller, so their behavioral differences stay auditable.
type Variant string

const (
	// VariantAccurateRedshift treats catalog redshifts as exact and sums over
	// galaxies discretely, with the smooth detection model.
	VariantAccurateRedshift Variant = "accurate_redshift"
	// VariantPhotoRedshift integrates over the photometric redshift density
	// curve, with the smooth detection model.
	VariantPhotoRedshift Variant = "photo_redshift"
	// VariantPhotoRedshiftHeaviside is identical to VariantPhotoRedshift
	// except the selection-bias integral uses the Heaviside detection model,
	// producing a deliberately biased posterior for comparison.
	VariantPhotoRedshiftHeaviside Variant = "photo_redshift_heaviside"
)

// ParseVariant validates a variant tag.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantAccurateRedshift, VariantPhotoRedshift, VariantPhotoRedshiftHeaviside:
		return Variant(s), nil
	}
	return "", core.NewValidationError("variant", fmt.Sprintf("unknown variant %q", s))
}

// Posterior holds the per-event posterior matrix (rows: events, columns: H0
// grid) and the combined posterior. Each row and the combined posterior
// integrate to one over the H0 grid.
type Posterior struct {
	H0Grid   []float64
	Matrix   [][]float64
	Combined []float64
}

// ValidateH0Grid checks that the H0 grid is non-empty, positive and strictly
// increasing.
func ValidateH0Grid(grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("H0 grid: %w", core.ErrEmptyGrid)
	}
	for i, h := range grid {
		if h <= 0 {
			return core.NewValidationError("h0_grid", fmt.Sprintf("non-positive value %g at index %d", h, i))
		}
		if i > 0 && grid[i] <= grid[i-1] {
			return core.NewValidationError("h0_grid", fmt.Sprintf("not strictly increasing at index %d", i))
		}
	}
	return nil
}

// detectionModel evaluates the probability of detecting an event with the
// given true distance and likelihood width against the threshold.
type detectionModel func(trueDL, sigmaDL, dlThr float64) float64

func smoothDetection(trueDL, sigmaDL, dlThr float64) float64 {
	return DetectionProbability(trueDL, sigmaDL, dlThr)
}

func heavisideDetection(trueDL, _, dlThr float64) float64 {
	return DetectionProbabilityHeaviside(trueDL, dlThr)
}

// AccurateRedshiftPosterior runs the H0 analysis in the limit of exact
// catalog redshifts: the redshift marginalization is a discrete sum over
// galaxies weighted by the constant-rate term, and the smooth detection model
// corrects for selection bias.
func AccurateRedshiftPosterior(ctx context.Context, h0Grid []float64, cat *catalog.Catalog, zcutRate float64, obsDL []float64, sigmaDL, dlThr float64, refCosmo Cosmology) (*Posterior, error) {
	if err := validateEngineInputs(h0Grid, obsDL, sigmaDL, dlThr); err != nil {
		return nil, err
	}
	weights, err := cat.RateWeights(zcutRate)
	if err != nil {
		return nil, err
	}
	dlH0 := distanceTimesH0(refCosmo, cat.Redshifts())

	sel := make([]float64, len(h0Grid))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := range h0Grid {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var v float64
			for k := range dlH0 {
				dl := dlH0[k] / h0Grid[j]
				v += smoothDetection(dl, sigmaDL*dl, dlThr) * weights[k]
			}
			if !numerics.IsFinite(v) || v <= 0 {
				return fmt.Errorf("selection bias at H0=%g: %w", h0Grid[j], core.NewDegenerateError("selection sum", v))
			}
			sel[j] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(obsDL))
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.SetLimit(runtime.GOMAXPROCS(0))
	for i := range obsDL {
		i := i
		g2.Go(func() error {
			if err := g2ctx.Err(); err != nil {
				return err
			}
			row := make([]float64, len(h0Grid))
			for j := range h0Grid {
				var numerator float64
				for k := range dlH0 {
					dl := dlH0[k] / h0Grid[j]
					numerator += Density(obsDL[i], dl, sigmaDL*dl) * weights[k]
				}
				row[j] = numerator / sel[j]
			}
			matrix[i] = row
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	combined, err := normalizeAndCombine(h0Grid, matrix)
	if err != nil {
		return nil, err
	}
	return &Posterior{H0Grid: h0Grid, Matrix: matrix, Combined: combined}, nil
}

// PhotoRedshiftPosterior runs the H0 analysis marginalizing over the
// photometric redshift density curve, with the smooth detection model in both
// phases.
func PhotoRedshiftPosterior(ctx context.Context, h0Grid []float64, density *numerics.Curve, obsDL []float64, sigmaDL, dlThr float64, refCosmo Cosmology) (*Posterior, error) {
	return photoPosterior(ctx, h0Grid, density, obsDL, sigmaDL, dlThr, refCosmo, smoothDetection)
}

// PhotoRedshiftPosteriorHeaviside is PhotoRedshiftPosterior with the Heaviside
// detection model in the selection-bias phase only. Its posterior is biased by
// construction; it exists as a regression baseline for the incorrect selection
// treatment.
func PhotoRedshiftPosteriorHeaviside(ctx context.Context, h0Grid []float64, density *numerics.Curve, obsDL []float64, sigmaDL, dlThr float64, refCosmo Cosmology) (*Posterior, error) {
	return photoPosterior(ctx, h0Grid, density, obsDL, sigmaDL, dlThr, refCosmo, heavisideDetection)
}

func photoPosterior(ctx context.Context, h0Grid []float64, density *numerics.Curve, obsDL []float64, sigmaDL, dlThr float64, refCosmo Cosmology, det detectionModel) (*Posterior, error) {
	if err := validateEngineInputs(h0Grid, obsDL, sigmaDL, dlThr); err != nil {
		return nil, err
	}
	zs := density.Grid()
	pz := density.Values()
	dlH0 := distanceTimesH0(refCosmo, zs)

	// Phase 1: selection bias per H0 value, integrated over the density grid.
	// Writes go to disjoint indices so the fan-out needs no locking.
	sel := make([]float64, len(h0Grid))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := range h0Grid {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			integrand := make([]float64, len(zs))
			for k := range zs {
				dl := dlH0[k] / h0Grid[j]
				integrand[k] = det(dl, sigmaDL*dl, dlThr) * pz[k]
			}
			v := numerics.Trapezoid(zs, integrand)
			if !numerics.IsFinite(v) || v <= 0 {
				return fmt.Errorf("selection bias at H0=%g: %w", h0Grid[j], core.NewDegenerateError("selection integral", v))
			}
			sel[j] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 2: marginal likelihood of each observed distance over redshift,
	// divided by the selection term. Rows are independent.
	matrix := make([][]float64, len(obsDL))
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.SetLimit(runtime.GOMAXPROCS(0))
	for i := range obsDL {
		i := i
		g2.Go(func() error {
			if err := g2ctx.Err(); err != nil {
				return err
			}
			row := make([]float64, len(h0Grid))
			integrand := make([]float64, len(zs))
			for j := range h0Grid {
				for k := range zs {
					dl := dlH0[k] / h0Grid[j]
					integrand[k] = Density(obsDL[i], dl, sigmaDL*dl) * pz[k]
				}
				row[j] = numerics.Trapezoid(zs, integrand) / sel[j]
			}
			matrix[i] = row
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	combined, err := normalizeAndCombine(h0Grid, matrix)
	if err != nil {
		return nil, err
	}
	return &Posterior{H0Grid: h0Grid, Matrix: matrix, Combined: combined}, nil
}

func validateEngineInputs(h0Grid, obsDL []float64, sigmaDL, dlThr float64) error {
	if err := ValidateH0Grid(h0Grid); err != nil {
		return err
	}
	if len(obsDL) == 0 {
		return core.ErrNoEvents
	}
	if sigmaDL <= 0 {
		return fmt.Errorf("fractional distance sigma: %w", core.ErrNonPositiveSigma)
	}
	if dlThr <= 0 {
		return core.NewValidationError("dl_thr", "detection threshold must be positive")
	}
	return nil
}

// distanceTimesH0 evaluates luminosity distance times H0 at the reference
// cosmology. By the Cosmology contract this product is H0-invariant at fixed
// Omega_m, so trial distances follow by dividing by each candidate H0.
func distanceTimesH0(cosmo Cosmology, z []float64) []float64 {
	dl := cosmo.LuminosityDistance(z)
	h0 := cosmo.H0()
	for i := range dl {
		dl[i] *= h0
	}
	return dl
}

// normalizeAndCombine normalizes each posterior row to unit trapezoidal
// integral over the H0 grid, then forms the combined posterior as the running
// product of rows in input order, renormalizing after every event so long
// event sets cannot underflow.
func normalizeAndCombine(h0Grid []float64, matrix [][]float64) ([]float64, error) {
	combined := make([]float64, len(h0Grid))
	for j := range combined {
		combined[j] = 1
	}
	for i, row := range matrix {
		norm := numerics.Trapezoid(h0Grid, row)
		if !numerics.IsFinite(norm) || norm <= 0 {
			return nil, fmt.Errorf("event %d: %w", i, core.NewDegenerateError("posterior row integral", norm))
		}
		for j := range row {
			row[j] /= norm
		}
		for j := range combined {
			combined[j] *= row[j]
		}
		cnorm := numerics.Trapezoid(h0Grid, combined)
		if !numerics.IsFinite(cnorm) || cnorm <= 0 {
			return nil, fmt.Errorf("after event %d: %w", i, core.NewDegenerateError("combined posterior integral", cnorm))
		}
		for j := range combined {
			combined[j] /= cnorm
		}
	}
	return combined, nil
}
