package gw

import (
	"darksiren/domain/catalog"
	"darksiren/domain/core"
	"darksiren/ports"
)

// defaultPoolSize is the oversample pool of candidate events drawn before the
// detection cut, large enough to yield the requested detections in practice.
const defaultPoolSize = 100000

// SimulationConfig parameterizes event drawing.
type SimulationConfig struct {
	// NDet is the number of detected events to return (at most).
	NDet int
	// SigmaDL is the fractional width of the distance likelihood: the std
	// dev of each draw is SigmaDL times the true distance.
	SigmaDL float64
	// DLThreshold is the detection cut on observed distance, in Mpc.
	DLThreshold float64
	// ZCutRate is the maximum redshift at which events occur.
	ZCutRate float64
	// PoolSize overrides the candidate pool size; zero means the default.
	PoolSize int
}

func (c SimulationConfig) validate() error {
	if c.NDet <= 0 {
		return core.NewValidationError("n_det", "must be positive")
	}
	if c.SigmaDL <= 0 {
		return core.ErrNonPositiveSigma
	}
	if c.DLThreshold <= 0 {
		return core.NewValidationError("dl_thr", "detection threshold must be positive")
	}
	return nil
}

func (c SimulationConfig) poolSize() int {
	if c.PoolSize > 0 {
		return c.PoolSize
	}
	return defaultPoolSize
}

// DrawEvents draws GW events from the galaxy population and applies the
// detection cut on observed distance. Observed distances are the true
// distance plus Gaussian noise of std SigmaDL times the true distance.
func DrawEvents(cfg SimulationConfig, cat *catalog.Catalog, cosmo ports.Cosmology, rng ports.RNG) (*EventSet, error) {
	return draw(cfg, cat, cosmo, rng, true)
}

// DrawEventsTH21 draws GW events with the observed distance equal to the true
// distance exactly, reproducing the double-counting construction of TH21
// (arXiv:2112.00241). The returned SigmaDL column still carries the width
// that would have been used, as the analysis consumes it.
func DrawEventsTH21(cfg SimulationConfig, cat *catalog.Catalog, cosmo ports.Cosmology, rng ports.RNG) (*EventSet, error) {
	return draw(cfg, cat, cosmo, rng, false)
}

func draw(cfg SimulationConfig, cat *catalog.Catalog, cosmo ports.Cosmology, rng ports.RNG, noisy bool) (*EventSet, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	weights, err := cat.RateWeights(cfg.ZCutRate)
	if err != nil {
		return nil, err
	}

	pool := cfg.poolSize()
	zs, err := rng.ChoiceWeighted(cat.Redshifts(), weights, pool)
	if err != nil {
		return nil, err
	}
	trueDL := cosmo.LuminosityDistance(zs)

	ev := &EventSet{Requested: cfg.NDet, Simulated: pool}
	for i := 0; i < pool && ev.Len() < cfg.NDet; i++ {
		std := cfg.SigmaDL * trueDL[i]
		obs := trueDL[i]
		if noisy {
			obs += rng.NormFloat64() * std
		}
		if obs >= cfg.DLThreshold {
			continue
		}
		ev.ObsDL = append(ev.ObsDL, obs)
		ev.TrueDL = append(ev.TrueDL, trueDL[i])
		ev.TrueZ = append(ev.TrueZ, zs[i])
		ev.SigmaDL = append(ev.SigmaDL, std)
	}
	return ev, nil
}
