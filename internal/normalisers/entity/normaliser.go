package entity

import (
	"fmt"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.EntityNormaliser = (*Normaliser)(nil)

// Normaliser converts raw entities into components and relationships.
// It is stateless and safe for concurrent use.
type Normaliser struct{}

// New creates a new entity normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts one entity. The input is never modified.
//
// Steps run in a fixed order: scalar coercion, property repair, dropping
// lastSeenTimestamp, identifier and tag derivation, the process-group
// reshape, then assembly and relationship extraction.
func (n *Normaliser) Normalise(
	entity domain.RawEntity,
	kind domain.ComponentKind,
) (*domain.Component, []domain.Relationship, error) {
	if entity == nil {
		return nil, nil, &domain.NormalizationError{
			EntityID: domain.UnknownEntityID,
			Err:      fmt.Errorf("%w: entity is not an object", domain.ErrInvalidInput),
		}
	}

	fields, _ := deepCopy(map[string]any(entity)).(map[string]any)

	coerceScalars(fields)
	cleanProperties(fields)
	delete(fields, fieldLastSeenTimestamp)

	entityID, _ := fields["entityId"].(string)
	fail := func(err error) (*domain.Component, []domain.Relationship, error) {
		id := entityID
		if id == "" {
			id = domain.UnknownEntityID
		}
		return nil, nil, &domain.NormalizationError{EntityID: id, Err: err}
	}

	tags, err := tagLabels(fields)
	if err != nil {
		return fail(err)
	}
	zones, err := zoneLabels(fields)
	if err != nil {
		return fail(err)
	}
	tags = append(tags, zones...)
	if entityID != "" {
		tags = append(tags, entityID)
	}
	if kind == domain.KindProcessGroup {
		tags = append(tags, technologyLabels(fields)...)
		tags = append(tags, monitoringLabels(fields)...)
	}

	outgoing, err := extractRelationships(fields, fieldFromRelationships, entityID, true)
	if err != nil {
		return fail(err)
	}
	incoming, err := extractRelationships(fields, fieldToRelationships, entityID, false)
	if err != nil {
		return fail(err)
	}

	delete(fields, fieldFromRelationships)
	delete(fields, fieldToRelationships)
	delete(fields, fieldTags)

	if kind == domain.KindProcessGroup {
		reshapeProcessGroup(fields)
	}

	delete(fields, domain.FieldIdentifiers)
	delete(fields, domain.FieldComponentType)

	component := &domain.Component{
		EntityID:    entityID,
		Fields:      fields,
		Identifiers: []string{domain.IdentifierPrefix + entityID},
		Tags:        tags,
		Kind:        kind,
	}

	return component, append(outgoing, incoming...), nil
}
