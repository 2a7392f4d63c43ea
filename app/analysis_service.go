package app

import (
	"context"
	"time"

	"darksiren/domain/catalog"
	"darksiren/domain/core"
	"darksiren/domain/density"
	"darksiren/domain/gw"
	"darksiren/domain/inference"
	"darksiren/domain/run"
	"darksiren/internal"
	"darksiren/ports"
)

// AnalysisService orchestrates a full dark-siren H0 run: density construction,
// event simulation, posterior inference, summary and persistence.
type AnalysisService struct {
	cosmo ports.Cosmology
	rng   ports.RNG
	runs  ports.RunRepository
	log   *internal.Logger
}

// NewAnalysisService wires the service. A nil logger falls back to the
// default logger.
func NewAnalysisService(cosmo ports.Cosmology, rng ports.RNG, runs ports.RunRepository, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{cosmo: cosmo, rng: rng, runs: runs, log: logger}
}

// AnalysisRequest defines the inputs for a run.
type AnalysisRequest struct {
	Catalog    *catalog.Catalog
	H0Grid     []float64
	Variant    inference.Variant
	Simulation gw.SimulationConfig

	// NoVolumeWeight disables the comoving-volume prior in the density
	// builder (photometric variants only).
	NoVolumeWeight bool
	// TH21Events selects the noiseless observation model for simulation.
	TH21Events bool
}

// AnalysisResult is the complete output of a run.
type AnalysisResult struct {
	RunID          core.RunID
	Events         *gw.EventSet
	Posterior      *inference.Posterior
	Summary        inference.Summary
	DensitySkipped int
}

// Run executes the requested analysis end to end.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	if err := inference.ValidateH0Grid(req.H0Grid); err != nil {
		return nil, err
	}
	if req.Catalog == nil {
		return nil, core.ErrEmptyCatalog
	}
	if _, err := inference.ParseVariant(string(req.Variant)); err != nil {
		return nil, err
	}

	profile, err := req.Catalog.Profile()
	if err != nil {
		return nil, err
	}
	s.log.Info("catalog: %d galaxies, z in [%.4f, %.4f], median %.4f",
		profile.Count, profile.MinZ, profile.MaxZ, profile.MedianZ)

	events, err := s.simulate(req)
	if err != nil {
		return nil, err
	}
	s.log.Info("detected %d binaries out of %d simulated", events.Len(), events.Simulated)
	if events.Short() {
		s.log.Warn("only %d of %d requested events detected; proceeding with fewer", events.Len(), events.Requested)
	}

	result := &AnalysisResult{Events: events}
	post, skipped, err := s.infer(ctx, req, events)
	if err != nil {
		return nil, err
	}
	result.Posterior = post
	result.DensitySkipped = skipped

	summary, err := inference.Summarize(req.H0Grid, post.Combined)
	if err != nil {
		return nil, err
	}
	result.Summary = summary
	s.log.Info("posterior: MAP H0=%.1f, mean H0=%.1f, 68%% CI [%.1f, %.1f]",
		summary.MAP, summary.Mean, summary.CI68[0], summary.CI68[1])

	rec := &run.Record{
		ID:        core.RunID(core.NewID()),
		CreatedAt: time.Now().UTC(),
		Variant:   req.Variant,
		Requested: events.Requested,
		Simulated: events.Simulated,
		Detected:  events.Len(),
		H0Grid:    req.H0Grid,
		Combined:  post.Combined,
		Summary:   summary,
	}
	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, rec); err != nil {
			return nil, err
		}
	}
	result.RunID = rec.ID
	return result, nil
}

func (s *AnalysisService) simulate(req AnalysisRequest) (*gw.EventSet, error) {
	if req.TH21Events {
		return gw.DrawEventsTH21(req.Simulation, req.Catalog, s.cosmo, s.rng)
	}
	return gw.DrawEvents(req.Simulation, req.Catalog, s.cosmo, s.rng)
}

func (s *AnalysisService) infer(ctx context.Context, req AnalysisRequest, events *gw.EventSet) (*inference.Posterior, int, error) {
	sim := req.Simulation
	switch req.Variant {
	case inference.VariantAccurateRedshift:
		post, err := inference.AccurateRedshiftPosterior(ctx, req.H0Grid, req.Catalog, sim.ZCutRate,
			events.ObsDL, sim.SigmaDL, sim.DLThreshold, s.cosmo)
		return post, 0, err

	case inference.VariantPhotoRedshift, inference.VariantPhotoRedshiftHeaviside:
		// The catalog redshifts act as the observed values; the modeled
		// uncertainty supplies each galaxy's own estimate.
		obsZ := req.Catalog.Redshifts()
		obsSigma := catalog.SigmaZSlice(obsZ)
		curve, skipped, err := density.Build(obsZ, obsSigma, density.Config{
			ZRateCut:       sim.ZCutRate,
			NoVolumeWeight: req.NoVolumeWeight,
		}, s.cosmo)
		if err != nil {
			return nil, skipped, err
		}
		if skipped > 0 {
			s.log.Warn("density builder skipped %d galaxies with degenerate local normalization", skipped)
		}
		if req.Variant == inference.VariantPhotoRedshiftHeaviside {
			post, err := inference.PhotoRedshiftPosteriorHeaviside(ctx, req.H0Grid, curve,
				events.ObsDL, sim.SigmaDL, sim.DLThreshold, s.cosmo)
			return post, skipped, err
		}
		post, err := inference.PhotoRedshiftPosterior(ctx, req.H0Grid, curve,
			events.ObsDL, sim.SigmaDL, sim.DLThreshold, s.cosmo)
		return post, skipped, err
	}
	return nil, 0, core.NewValidationError("variant", "unknown variant "+string(req.Variant))
}
