package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
	"github.com/custodia-labs/entigraph/internal/core/ports/driving"
	"github.com/custodia-labs/entigraph/internal/logger"
)

// DefaultTopologySuffix is the output file suffix used when none is given.
const DefaultTopologySuffix = "topology"

// Ensure TopologyService implements the interface.
var _ driving.TopologyService = (*TopologyService)(nil)

// TopologyService reads snapshots, builds topology and writes the result.
type TopologyService struct {
	store   driven.SnapshotStore
	watcher driven.SnapshotWatcher
	builder *TopologyBuilder
}

// NewTopologyService creates a topology service. The watcher is optional
// and only needed by Watch.
func NewTopologyService(
	store driven.SnapshotStore,
	watcher driven.SnapshotWatcher,
	builder *TopologyBuilder,
) *TopologyService {
	return &TopologyService{
		store:   store,
		watcher: watcher,
		builder: builder,
	}
}

// BuildFile builds and writes the topology for one snapshot.
func (s *TopologyService) BuildFile(
	ctx context.Context,
	inputPath string,
	kind domain.ComponentKind,
	suffix string,
) (*driving.TopologyResult, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("%w: input path is required", domain.ErrInvalidInput)
	}
	if kind == "" {
		kind = DetectKind(inputPath)
	} else if !kind.IsValid() {
		return nil, fmt.Errorf("%w: component type %q", domain.ErrUnsupportedType, kind)
	}
	if suffix == "" {
		suffix = DefaultTopologySuffix
	}

	logger.Info("Reading input file: %s", inputPath)
	document, err := s.store.ReadDocument(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	entities := ExtractEntities(document)
	logger.Info("Found %d entities in input file", len(entities))

	topology := s.builder.Build(entities, kind, inputPath)
	topology.Metadata.RunID = uuid.NewString()

	outputPath, err := s.store.WriteTopology(ctx, inputPath, suffix, topology)
	if err != nil {
		return nil, fmt.Errorf("write topology: %w", err)
	}

	return &driving.TopologyResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Topology:   topology,
	}, nil
}

// Watch rebuilds topology for every new snapshot in dir until ctx is done.
// Failures on one snapshot are logged and watching continues.
func (s *TopologyService) Watch(
	ctx context.Context,
	dir, suffix string,
	onBuilt func(*driving.TopologyResult),
) error {
	if s.watcher == nil {
		return errors.New("watch: snapshot watcher not configured")
	}
	if suffix == "" {
		suffix = DefaultTopologySuffix
	}

	paths, err := s.watcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".json") || IsTopologyOutput(path, suffix) {
				continue
			}

			result, err := s.BuildFile(ctx, path, "", suffix)
			if err != nil {
				logger.Warn("Skipping %s: %v", path, err)
				continue
			}
			if onBuilt != nil {
				onBuilt(result)
			}
		}
	}
}

// IsTopologyOutput reports whether path is named like a topology output
// for suffix: <stem>_<suffix>_<unix>.json.
func IsTopologyOutput(path, suffix string) bool {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return false
	}
	if _, err := strconv.ParseInt(name[idx+1:], 10, 64); err != nil {
		return false
	}
	return strings.HasSuffix(name[:idx], "_"+suffix)
}
