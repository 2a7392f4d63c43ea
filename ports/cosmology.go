package ports

// Cosmology evaluates distance-redshift relations for a fixed flat LambdaCDM
// parameterization (H0, Omega_m). Implementations must be pure functions of
// redshift: no internal state changes between calls.
//
// Contract: at fixed Omega_m the luminosity distance scales as 1/H0 at the
// leading order used by this model, so LuminosityDistance(z)*H0() is
// H0-independent. The inference engines rely on this to evaluate a reference
// cosmology once and rescale by each trial H0 instead of re-integrating the
// distance relation per grid point.
type Cosmology interface {
	// H0 returns the Hubble constant in km/s/Mpc.
	H0() float64

	// LuminosityDistance returns the luminosity distance in Mpc for each
	// redshift. Out-of-domain redshifts map to NaN; callers must guard.
	LuminosityDistance(z []float64) []float64

	// DifferentialComovingVolume returns dVc/dz per steradian in Mpc^3/sr
	// for each redshift.
	DifferentialComovingVolume(z []float64) []float64
}
