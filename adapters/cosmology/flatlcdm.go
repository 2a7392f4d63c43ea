package cosmology

import (
	"math"

	"darksiren/domain/core"
	"darksiren/internal/numerics"
)

// SpeedOfLightKmS is the speed of light in km/s.
const SpeedOfLightKmS = 299792.458

const (
	defaultZMax      = 10.0
	defaultTableSize = 20001
)

// FlatLambdaCDM evaluates distance-redshift relations for a flat LambdaCDM
// cosmology with fixed H0 and Omega_m. The comoving distance integral is
// tabulated once at construction on a fine linear grid and read back through
// a piecewise-linear lookup, so evaluation over large redshift arrays stays
// cheap and the adapter remains a pure function of z.
//
// Because Omega_m is fixed, luminosity distance scales exactly as 1/H0 here,
// satisfying the d_L*H0 invariance of the Cosmology port contract.
type FlatLambdaCDM struct {
	h0     float64
	omegaM float64
	zMax   float64

	hubbleDistance float64 // c/H0, Mpc
	comoving       *numerics.Curve
}

// NewFlatLambdaCDM constructs the evaluator. H0 is in km/s/Mpc; omegaM must
// lie in [0, 1]. The lookup table covers z in [0, 10].
func NewFlatLambdaCDM(h0, omegaM float64) (*FlatLambdaCDM, error) {
	if h0 <= 0 {
		return nil, core.NewValidationError("h0", "must be positive")
	}
	if omegaM < 0 || omegaM > 1 {
		return nil, core.NewValidationError("omega_m", "must lie in [0, 1]")
	}

	c := &FlatLambdaCDM{
		h0:             h0,
		omegaM:         omegaM,
		zMax:           defaultZMax,
		hubbleDistance: SpeedOfLightKmS / h0,
	}

	zs := numerics.Linspace(0, c.zMax, defaultTableSize)
	dc := make([]float64, len(zs))
	prev := 1.0 // 1/E(0)
	for i := 1; i < len(zs); i++ {
		cur := 1 / c.efunc(zs[i])
		dc[i] = dc[i-1] + (zs[i]-zs[i-1])*(prev+cur)/2
		prev = cur
	}
	for i := range dc {
		dc[i] *= c.hubbleDistance
	}
	curve, err := numerics.NewCurve(zs, dc)
	if err != nil {
		return nil, err
	}
	c.comoving = curve
	return c, nil
}

// H0 returns the Hubble constant in km/s/Mpc.
func (c *FlatLambdaCDM) H0() float64 {
	return c.h0
}

// OmegaM returns the matter density parameter.
func (c *FlatLambdaCDM) OmegaM() float64 {
	return c.omegaM
}

// efunc is the dimensionless Hubble parameter E(z) for a flat universe.
func (c *FlatLambdaCDM) efunc(z float64) float64 {
	zp := 1 + z
	return math.Sqrt(c.omegaM*zp*zp*zp + (1 - c.omegaM))
}

// comovingDistance returns D_C(z) in Mpc, or NaN outside [0, zMax].
func (c *FlatLambdaCDM) comovingDistance(z float64) float64 {
	if z < 0 || z > c.zMax {
		return math.NaN()
	}
	return c.comoving.At(z)
}

// LuminosityDistance returns (1+z)*D_C(z) in Mpc for each redshift.
func (c *FlatLambdaCDM) LuminosityDistance(z []float64) []float64 {
	out := make([]float64, len(z))
	for i, zi := range z {
		out[i] = (1 + zi) * c.comovingDistance(zi)
	}
	return out
}

// DifferentialComovingVolume returns dVc/dz per steradian in Mpc^3/sr:
// D_H * D_C(z)^2 / E(z) for a flat geometry.
func (c *FlatLambdaCDM) DifferentialComovingVolume(z []float64) []float64 {
	out := make([]float64, len(z))
	for i, zi := range z {
		dc := c.comovingDistance(zi)
		out[i] = c.hubbleDistance * dc * dc / c.efunc(zi)
	}
	return out
}
