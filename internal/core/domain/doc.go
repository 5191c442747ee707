// Package domain defines the core business entities for entigraph.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawEntity: A loosely-typed entity record as returned by the API
//   - Component: The normalised form of one entity
//   - Relationship: A directed edge between two entity ids
//   - Topology: Components plus relationships plus run metadata
//   - Environment: A monitored environment and its credentials
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
