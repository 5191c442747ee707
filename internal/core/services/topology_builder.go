package services

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
	"github.com/custodia-labs/entigraph/internal/logger"
)

// TopologyBuilder runs an entity normaliser over a whole collection.
type TopologyBuilder struct {
	normaliser driven.EntityNormaliser
	now        func() time.Time
}

// NewTopologyBuilder creates a builder. A nil clock uses time.Now.
func NewTopologyBuilder(normaliser driven.EntityNormaliser, now func() time.Time) *TopologyBuilder {
	if now == nil {
		now = time.Now
	}
	return &TopologyBuilder{
		normaliser: normaliser,
		now:        now,
	}
}

// Build normalises every entity in input order. Entities that fail are
// logged and left out; they never abort the batch.
func (b *TopologyBuilder) Build(entities []any, kind domain.ComponentKind, source string) *domain.Topology {
	components := make([]domain.Component, 0, len(entities))
	var relationships []domain.Relationship

	for _, raw := range entities {
		record, ok := raw.(map[string]any)
		if !ok {
			logger.Warn("Failed to process entity %s: entity is %T, not an object", domain.UnknownEntityID, raw)
			continue
		}

		component, rels, err := b.normaliser.Normalise(domain.RawEntity(record), kind)
		if err != nil {
			id, cause := domain.EntityIDOf(record), err
			var normErr *domain.NormalizationError
			if errors.As(err, &normErr) {
				id, cause = normErr.EntityID, normErr.Err
			}
			logger.Warn("Failed to process entity %s: %v", id, cause)
			continue
		}

		components = append(components, *component)
		relationships = append(relationships, rels...)
	}

	logger.Info("Processed %d components", len(components))
	logger.Info("Extracted %d relationships", len(relationships))

	return domain.NewTopology(source, kind, b.now(), components, relationships)
}

// DetectKind infers the component kind from a snapshot file name.
func DetectKind(filename string) domain.ComponentKind {
	name := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.Contains(name, "process") && !strings.Contains(name, "group"):
		return domain.KindProcess
	case strings.Contains(name, "process-group"):
		return domain.KindProcessGroup
	default:
		return domain.KindEntity
	}
}

// ExtractEntities returns the entity list of a decoded snapshot: the array
// itself for v1 snapshots, the "entities" field for v2 documents.
func ExtractEntities(document any) []any {
	switch doc := document.(type) {
	case []any:
		return doc
	case map[string]any:
		entities, _ := doc["entities"].([]any)
		return entities
	default:
		return nil
	}
}
