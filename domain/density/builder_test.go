package density_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darksiren/adapters/cosmology"
	"darksiren/domain/catalog"
	"darksiren/domain/core"
	"darksiren/domain/density"
	"darksiren/ports"
)

func testCosmology(t *testing.T) ports.Cosmology {
	t.Helper()
	c, err := cosmology.NewFlatLambdaCDM(70, 0.25)
	require.NoError(t, err)
	return c
}

func TestBuild_NormalizedToUnitIntegral(t *testing.T) {
	cosmo := testCosmology(t)
	obsZ := []float64{0.1, 0.2, 0.3}
	obsSigma := catalog.SigmaZSlice(obsZ)

	curve, skipped, err := density.Build(obsZ, obsSigma, density.Config{ZRateCut: 0.5}, cosmo)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.InDelta(t, 1.0, curve.Integral(), 1e-6)

	// Zero fill outside the grid domain
	assert.Equal(t, 0.0, curve.At(1e-4))
	assert.Equal(t, 0.0, curve.At(0.6))
	// Mass near the observed redshifts
	assert.Greater(t, curve.At(0.2), 0.0)
}

func TestBuild_FlatPriorNormalized(t *testing.T) {
	cosmo := testCosmology(t)
	obsZ := []float64{0.15, 0.25}
	obsSigma := catalog.SigmaZSlice(obsZ)

	withVol, _, err := density.Build(obsZ, obsSigma, density.Config{ZRateCut: 0.5}, cosmo)
	require.NoError(t, err)
	flat, _, err := density.Build(obsZ, obsSigma, density.Config{ZRateCut: 0.5, NoVolumeWeight: true}, cosmo)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, withVol.Integral(), 1e-6)
	assert.InDelta(t, 1.0, flat.Integral(), 1e-6)
	// The volume prior reweights the curve, so the two differ somewhere
	assert.NotEqual(t, withVol.At(0.15), flat.At(0.15))
}

func TestBuild_InvalidInput(t *testing.T) {
	cosmo := testCosmology(t)

	_, _, err := density.Build(nil, nil, density.Config{ZRateCut: 0.5}, cosmo)
	assert.True(t, core.IsInvalidInput(err))

	_, _, err = density.Build([]float64{0.1}, []float64{0.01, 0.02}, density.Config{ZRateCut: 0.5}, cosmo)
	assert.True(t, core.IsInvalidInput(err))

	_, _, err = density.Build([]float64{0.1}, []float64{0}, density.Config{ZRateCut: 0.5}, cosmo)
	assert.True(t, core.IsInvalidInput(err))

	_, _, err = density.Build([]float64{0.1}, []float64{0.01}, density.Config{ZRateCut: 1e-4}, cosmo)
	assert.True(t, core.IsInvalidInput(err))
}

func TestBuildTH21_Unnormalized(t *testing.T) {
	cat, err := catalog.New([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	curve, err := density.BuildTH21(cat)
	require.NoError(t, err)

	// One kernel per galaxy, no normalization: the integral tracks the
	// galaxy count (the kernel at max z loses roughly half its mass off the
	// grid edge), so it sits well above one.
	integral := curve.Integral()
	assert.Greater(t, integral, 1.5)
	assert.Less(t, integral, 3.5)
}

func TestBuildTH21_EmptyCatalog(t *testing.T) {
	_, err := density.BuildTH21(nil)
	assert.True(t, core.IsInvalidInput(err))
}
