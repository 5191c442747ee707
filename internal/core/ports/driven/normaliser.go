package driven

import "github.com/custodia-labs/entigraph/internal/core/domain"

// EntityNormaliser transforms one raw entity into a component and its edges.
type EntityNormaliser interface {
	// Normalise returns the component and the relationships declared by the
	// entity. Failures are reported as *domain.NormalizationError.
	Normalise(entity domain.RawEntity, kind domain.ComponentKind) (*domain.Component, []domain.Relationship, error)
}
