package domain

import "strings"

// Environment is one monitored environment to collect from.
type Environment struct {
	// Name is used in snapshot file names (e.g., "PA", "Prod").
	Name string

	// BaseURL is the environment root, e.g. https://abc123.live.dynatrace.com.
	BaseURL string

	// Auth holds the environment's credentials.
	Auth AuthSettings
}

// NormalizedBaseURL returns BaseURL without trailing slashes.
func (e Environment) NormalizedBaseURL() string {
	return strings.TrimRight(e.BaseURL, "/")
}

// CollectSettings holds the query settings shared by every environment.
type CollectSettings struct {
	// RelativeTime is the v2 "from" window, e.g. "now-1h".
	RelativeTime string

	// PageSize is the v1 pageSize parameter.
	PageSize int

	// Fields holds the v2 "fields" selector per entity type.
	Fields map[EntityType]string

	// MaxPages caps pages per endpoint. Zero disables the cap.
	MaxPages int

	// RequestsPerSecond throttles requests. Zero means unlimited.
	RequestsPerSecond float64
}

// FieldsFor returns the v2 field selector for an entity type.
func (s CollectSettings) FieldsFor(t EntityType) string {
	if f, ok := s.Fields[t]; ok && f != "" {
		return f
	}
	return DefaultFields
}

// DefaultFields is the v2 field selector used when none is configured.
const DefaultFields = "+fromRelationships,+toRelationships,+tags,+managementZones,+properties"
