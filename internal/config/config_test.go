package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 70.0, cfg.Cosmology.H0Ref)
	assert.Equal(t, 0.25, cfg.Cosmology.OmegaM)
	assert.Equal(t, 100, cfg.Simulation.NDet)
	assert.Equal(t, 0.1, cfg.Simulation.SigmaDL)
	assert.Equal(t, 1000.0, cfg.Simulation.DLThreshold)
	assert.Equal(t, 0.5, cfg.Simulation.ZCutRate)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 50.0, cfg.Analysis.H0Min)
	assert.Equal(t, 140.0, cfg.Analysis.H0Max)
	assert.Equal(t, 91, cfg.Analysis.H0Steps)
	assert.Equal(t, "photo_redshift", cfg.Analysis.Variant)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("H0_REF", "67.4")
	t.Setenv("N_DET", "250")
	t.Setenv("VARIANT", "accurate_redshift")
	t.Setenv("NO_VOLUME_WEIGHT", "true")
	t.Setenv("SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 67.4, cfg.Cosmology.H0Ref)
	assert.Equal(t, 250, cfg.Simulation.NDet)
	assert.Equal(t, "accurate_redshift", cfg.Analysis.Variant)
	assert.True(t, cfg.Analysis.NoVolumeWeight)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("H0_REF", "-10")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadGridBounds(t *testing.T) {
	t.Setenv("H0_MIN", "100")
	t.Setenv("H0_MAX", "50")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("N_DET", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Simulation.NDet)
}
