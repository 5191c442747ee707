package driven

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// SnapshotStore persists raw snapshots and topology outputs as flat files.
type SnapshotStore interface {
	// WriteSnapshot stores a raw API collection for an environment and data
	// type and returns where it was written.
	WriteSnapshot(ctx context.Context, env, dataType string, content any) (string, error)

	// ReadDocument loads a previously written snapshot as decoded JSON.
	// Numbers are decoded as json.Number.
	ReadDocument(ctx context.Context, path string) (any, error)

	// WriteTopology stores a topology built from inputPath and returns the
	// output location.
	WriteTopology(ctx context.Context, inputPath, suffix string, topology *domain.Topology) (string, error)
}

// SnapshotWatcher reports snapshot files as they appear in a directory.
type SnapshotWatcher interface {
	// Watch emits the path of every created or rewritten JSON file in dir
	// until ctx is cancelled. The channel is closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan string, error)
}
