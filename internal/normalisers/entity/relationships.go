package entity

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

const (
	fieldFromRelationships = "fromRelationships"
	fieldToRelationships   = "toRelationships"
)

// extractRelationships reads the edges declared under key. When outgoing
// is true the entity is the source of every edge.
func extractRelationships(fields map[string]any, key, entityID string, outgoing bool) ([]domain.Relationship, error) {
	raw, present := fields[key]
	if !present || raw == nil {
		return nil, nil
	}
	rels, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, want object", domain.ErrInvalidInput, key, raw)
	}

	// Sorted for stable output.
	types := make([]string, 0, len(rels))
	for t := range rels {
		types = append(types, t)
	}
	sort.Strings(types)

	var out []domain.Relationship
	for _, relType := range types {
		peers, isList := rels[relType].([]any)
		if !isList {
			continue
		}
		for _, peer := range peers {
			peerID := descriptorID(peer)
			if peerID == "" {
				continue
			}
			rel := domain.Relationship{Source: peerID, Target: entityID, Type: relType}
			if outgoing {
				rel.Source, rel.Target = entityID, peerID
			}
			out = append(out, rel)
		}
	}
	return out, nil
}

// descriptorID reads the id of a relationship descriptor: a record with an
// "id" field or a bare scalar id.
func descriptorID(peer any) string {
	if record, ok := peer.(map[string]any); ok {
		peer = record["id"]
	}
	if !truthy(peer) || !isScalar(peer) {
		return ""
	}
	return stringify(peer)
}
