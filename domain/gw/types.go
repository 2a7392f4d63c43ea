package gw

// EventSet holds aligned per-event arrays for detected GW events. Immutable
// once returned by the simulator.
type EventSet struct {
	// ObsDL is the observed luminosity distance in Mpc.
	ObsDL []float64
	// TrueDL is the true luminosity distance in Mpc.
	TrueDL []float64
	// TrueZ is the true source redshift.
	TrueZ []float64
	// SigmaDL is the standard deviation in Mpc of the distance likelihood
	// used for each draw.
	SigmaDL []float64

	// Requested is the number of detections asked for; Simulated is the size
	// of the candidate pool. Len() below Requested is reported here, not an
	// error: the caller decides whether fewer events are acceptable.
	Requested int
	Simulated int
}

// Len returns the number of detected events.
func (e *EventSet) Len() int {
	return len(e.ObsDL)
}

// Short reports whether fewer events were detected than requested.
func (e *EventSet) Short() bool {
	return e.Len() < e.Requested
}
