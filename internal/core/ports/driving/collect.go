package driving

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// Collector pulls raw snapshots from configured environments.
type Collector interface {
	// Collect runs v1 and v2 collection for one environment.
	Collect(ctx context.Context, env domain.Environment, opts CollectOptions) (*CollectReport, error)

	// CollectAll runs Collect for every configured environment in order.
	// The first fatal error aborts the run.
	CollectAll(ctx context.Context, opts CollectOptions) (*CollectReport, error)
}

// CollectOptions selects what a collection run fetches.
type CollectOptions struct {
	// EntityTypes restricts collection. Empty means the default types.
	EntityTypes []domain.EntityType
}

// CollectReport summarises a collection run.
type CollectReport struct {
	// RunID identifies the run.
	RunID string

	// Snapshots lists every written snapshot in collection order.
	Snapshots []domain.SnapshotRecord
}
