package catalog

// Photometric redshift uncertainty model: sigma(z) = 0.013*(1+z)^3 capped at
// 0.015. Deterministic and parameter-free beyond z.
const (
	sigmaZCoeff = 0.013
	sigmaZCap   = 0.015
)

// SigmaZ returns the modeled redshift uncertainty for a galaxy at redshift z.
func SigmaZ(z float64) float64 {
	zp := 1 + z
	s := sigmaZCoeff * zp * zp * zp
	if s > sigmaZCap {
		return sigmaZCap
	}
	return s
}

// SigmaZSlice applies SigmaZ elementwise.
func SigmaZSlice(z []float64) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = SigmaZ(v)
	}
	return out
}
