package driving

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// TopologyService turns raw snapshots into topology files.
type TopologyService interface {
	// BuildFile reads a snapshot, builds its topology and writes it.
	// An empty kind is detected from the input file name.
	BuildFile(ctx context.Context, inputPath string, kind domain.ComponentKind, suffix string) (*TopologyResult, error)

	// Watch builds topology for each new snapshot in dir until ctx is done.
	Watch(ctx context.Context, dir, suffix string, onBuilt func(*TopologyResult)) error
}

// TopologyResult is the outcome of one BuildFile call.
type TopologyResult struct {
	InputPath  string
	OutputPath string
	Topology   *domain.Topology
}
