package run

import (
	"time"

	"darksiren/domain/core"
	"darksiren/domain/inference"
)

// Record captures a completed inference run for persistence and audit.
type Record struct {
	ID        core.RunID        `json:"id" db:"id"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	Variant   inference.Variant `json:"variant" db:"variant"`

	// Simulation outcome
	Requested int `json:"requested" db:"requested"`
	Simulated int `json:"simulated" db:"simulated"`
	Detected  int `json:"detected" db:"detected"`

	// Posterior outputs
	H0Grid   []float64         `json:"h0_grid"`
	Combined []float64         `json:"combined"`
	Summary  inference.Summary `json:"summary"`
}
