package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Density returns the Gaussian probability density at x with mean mu and
// standard deviation sigma. Returns NaN when sigma <= 0; callers guard.
func Density(x, mu, sigma float64) float64 {
	if sigma <= 0 {
		return math.NaN()
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob(x)
}

// DetectionProbability returns P(observed < thr | trueVal, sigma), the
// cumulative integral of the Gaussian observation likelihood up to the
// detection threshold: Phi((thr-trueVal)/sigma). Returns NaN when sigma <= 0.
func DetectionProbability(trueVal, sigma, thr float64) float64 {
	if sigma <= 0 {
		return math.NaN()
	}
	return distuv.UnitNormal.CDF((thr - trueVal) / sigma)
}

// DetectionProbabilityHeaviside is a deliberately crude step-function
// detection model: 1 when trueVal is at or below the threshold, 0 above. It
// exists to reproduce a biased selection treatment; do not use it where the
// smooth model is intended.
func DetectionProbabilityHeaviside(trueVal, thr float64) float64 {
	if trueVal <= thr {
		return 1
	}
	return 0
}
