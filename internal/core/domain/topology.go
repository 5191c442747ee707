package domain

import (
	"encoding/json"
	"time"
)

// IdentifierPrefix is the URN scheme prepended to entity ids.
const IdentifierPrefix = "urn:dynatrace:/"

// Reserved component keys written on top of the entity fields.
const (
	FieldIdentifiers   = "identifiers"
	FieldTags          = "tags"
	FieldComponentType = "component_type"
)

// Component is the normalised form of one entity.
type Component struct {
	// EntityID is the raw entity id the component was built from.
	EntityID string

	// Fields holds every surviving top-level field of the entity.
	Fields map[string]any

	// Identifiers holds the canonical URN first.
	Identifiers []string

	// Tags are flat labels derived from tags, zones and markers.
	Tags []string

	// Kind is the component_type discriminant.
	Kind ComponentKind
}

// MarshalJSON flattens Fields and the reserved keys into one object.
func (c Component) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Fields)+3)
	for k, v := range c.Fields {
		out[k] = v
	}
	identifiers := c.Identifiers
	if identifiers == nil {
		identifiers = []string{}
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	out[FieldIdentifiers] = identifiers
	out[FieldTags] = tags
	out[FieldComponentType] = c.Kind
	return json.Marshal(out)
}

// Relationship is a directed edge between two entity ids.
// Either end may refer to an entity that is not among the components.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// TopologyMetadata summarises one topology build.
type TopologyMetadata struct {
	SourceFile        string        `json:"source_file"`
	ComponentType     ComponentKind `json:"component_type"`
	Timestamp         int64         `json:"timestamp"`
	ComponentCount    int           `json:"component_count"`
	RelationshipCount int           `json:"relationship_count"`
	RunID             string        `json:"run_id,omitempty"`
}

// Topology is the normalised graph built from one entity collection.
type Topology struct {
	Metadata      TopologyMetadata `json:"metadata"`
	Components    []Component      `json:"components"`
	Relationships []Relationship   `json:"relationships"`
}

// NewTopology assembles a topology and stamps its counts.
func NewTopology(
	source string,
	kind ComponentKind,
	at time.Time,
	components []Component,
	relationships []Relationship,
) *Topology {
	if components == nil {
		components = []Component{}
	}
	if relationships == nil {
		relationships = []Relationship{}
	}
	return &Topology{
		Metadata: TopologyMetadata{
			SourceFile:        source,
			ComponentType:     kind,
			Timestamp:         at.Unix(),
			ComponentCount:    len(components),
			RelationshipCount: len(relationships),
		},
		Components:    components,
		Relationships: relationships,
	}
}
