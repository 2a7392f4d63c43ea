package catalog

import (
	"github.com/montanaflynn/stats"
)

// Profile summarizes the redshift distribution of a catalog.
type Profile struct {
	Count   int     `json:"count"`
	MeanZ   float64 `json:"mean_z"`
	MedianZ float64 `json:"median_z"`
	MinZ    float64 `json:"min_z"`
	MaxZ    float64 `json:"max_z"`
	Q25     float64 `json:"q25"`
	Q75     float64 `json:"q75"`
}

// Profile computes summary statistics of the catalog redshifts.
func (c *Catalog) Profile() (Profile, error) {
	p := Profile{Count: c.Len()}

	mean, err := stats.Mean(c.redshifts)
	if err != nil {
		return p, err
	}
	median, err := stats.Median(c.redshifts)
	if err != nil {
		return p, err
	}
	min, err := stats.Min(c.redshifts)
	if err != nil {
		return p, err
	}
	max, err := stats.Max(c.redshifts)
	if err != nil {
		return p, err
	}
	q25, err := stats.Percentile(c.redshifts, 25)
	if err != nil {
		return p, err
	}
	q75, err := stats.Percentile(c.redshifts, 75)
	if err != nil {
		return p, err
	}

	p.MeanZ = mean
	p.MedianZ = median
	p.MinZ = min
	p.MaxZ = max
	p.Q25 = q25
	p.Q75 = q75
	return p, nil
}
