package domain

import (
	"fmt"
	"strings"
)

// EntityType is a collectable entity type.
type EntityType string

const (
	EntityProcess      EntityType = "process"
	EntityProcessGroup EntityType = "process-group"
	EntityHost         EntityType = "host"
)

// AllEntityTypes returns every collectable type in collection order.
func AllEntityTypes() []EntityType {
	return []EntityType{EntityProcess, EntityProcessGroup, EntityHost}
}

// DefaultEntityTypes returns the types collected when none are selected.
func DefaultEntityTypes() []EntityType {
	return []EntityType{EntityProcess, EntityProcessGroup}
}

// IsValid returns true if the entity type is recognised.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityProcess, EntityProcessGroup, EntityHost:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityTypes parses a list of entity type names.
// Entries may themselves be comma-separated. Duplicates are dropped and the
// result follows collection order regardless of input order.
func ParseEntityTypes(values []string) ([]EntityType, error) {
	selected := make(map[EntityType]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			t := EntityType(part)
			if !t.IsValid() {
				return nil, fmt.Errorf("%w: entity type %q", ErrUnsupportedType, part)
			}
			selected[t] = true
		}
	}

	if len(selected) == 0 {
		return DefaultEntityTypes(), nil
	}

	types := make([]EntityType, 0, len(selected))
	for _, t := range AllEntityTypes() {
		if selected[t] {
			types = append(types, t)
		}
	}
	return types, nil
}

// ComponentKind discriminates normalised components.
type ComponentKind string

const (
	KindProcess      ComponentKind = "process"
	KindProcessGroup ComponentKind = "process-group"
	KindHost         ComponentKind = "host"
	KindEntity       ComponentKind = "entity"
)

// IsValid returns true if the kind is recognised.
func (k ComponentKind) IsValid() bool {
	switch k {
	case KindProcess, KindProcessGroup, KindHost, KindEntity:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ComponentKind) String() string {
	return string(k)
}

// ParseComponentKind parses a component kind. An empty string yields an
// empty kind, meaning "detect from the input".
func ParseComponentKind(s string) (ComponentKind, error) {
	if s == "" {
		return "", nil
	}
	k := ComponentKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: component type %q", ErrUnsupportedType, s)
	}
	return k, nil
}
