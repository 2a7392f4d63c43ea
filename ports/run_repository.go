package ports

import (
	"context"

	"darksiren/domain/core"
	"darksiren/domain/run"
)

// RunRepository persists completed inference runs.
type RunRepository interface {
	SaveRun(ctx context.Context, rec *run.Record) error
	GetRun(ctx context.Context, id core.RunID) (*run.Record, error)
}
