package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darksiren/adapters/cosmology"
	"darksiren/adapters/memory"
	"darksiren/adapters/rng"
	"darksiren/domain/catalog"
	"darksiren/domain/core"
	"darksiren/domain/gw"
	"darksiren/domain/inference"
	"darksiren/internal/numerics"
)

func newTestService(t *testing.T, repo *memory.RunRepository) *AnalysisService {
	t.Helper()
	cosmo, err := cosmology.NewFlatLambdaCDM(70, 0.25)
	require.NoError(t, err)
	return NewAnalysisService(cosmo, rng.NewSeeded(42), repo, nil)
}

func testRequest(t *testing.T, variant inference.Variant, nDet int) AnalysisRequest {
	t.Helper()
	cat, err := catalog.NewEvenlySpaced(50, 0.01)
	require.NoError(t, err)
	return AnalysisRequest{
		Catalog: cat,
		H0Grid:  numerics.Linspace(50, 140, 10),
		Variant: variant,
		Simulation: gw.SimulationConfig{
			NDet:        nDet,
			SigmaDL:     0.1,
			DLThreshold: 1000,
			ZCutRate:    0.5,
			PoolSize:    5000,
		},
	}
}

func TestRun_AccurateVariantEndToEnd(t *testing.T) {
	repo := memory.NewRunRepository()
	svc := newTestService(t, repo)
	req := testRequest(t, inference.VariantAccurateRedshift, 30)

	result, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 30, result.Events.Len())
	assert.Len(t, result.Posterior.Combined, len(req.H0Grid))
	assert.InDelta(t, 1.0, numerics.Trapezoid(req.H0Grid, result.Posterior.Combined), 1e-9)
	assert.Greater(t, result.Summary.MAP, 0.0)

	// Run persisted and retrievable
	assert.Equal(t, 1, repo.Len())
	rec, err := repo.GetRun(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, inference.VariantAccurateRedshift, rec.Variant)
	assert.Equal(t, 30, rec.Detected)
}

func TestRun_HeavisideVariantEndToEnd(t *testing.T) {
	svc := newTestService(t, memory.NewRunRepository())
	req := testRequest(t, inference.VariantPhotoRedshiftHeaviside, 5)

	result, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, result.DensitySkipped)
	assert.InDelta(t, 1.0, numerics.Trapezoid(req.H0Grid, result.Posterior.Combined), 1e-9)
}

func TestRun_NilRepositoryTolerated(t *testing.T) {
	cosmo, err := cosmology.NewFlatLambdaCDM(70, 0.25)
	require.NoError(t, err)
	svc := NewAnalysisService(cosmo, rng.NewSeeded(42), nil, nil)

	result, err := svc.Run(context.Background(), testRequest(t, inference.VariantAccurateRedshift, 10))
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
}

func TestRun_Validation(t *testing.T) {
	svc := newTestService(t, memory.NewRunRepository())

	req := testRequest(t, inference.VariantAccurateRedshift, 10)
	req.H0Grid = nil
	_, err := svc.Run(context.Background(), req)
	assert.True(t, core.IsInvalidInput(err))

	req = testRequest(t, inference.VariantAccurateRedshift, 10)
	req.Catalog = nil
	_, err = svc.Run(context.Background(), req)
	assert.True(t, core.IsInvalidInput(err))

	req = testRequest(t, "nonsense", 10)
	_, err = svc.Run(context.Background(), req)
	assert.True(t, core.IsInvalidInput(err))
}
