// Package entity normalises raw monitored entities into topology components.
//
// Entities are loosely typed JSON records whose shape varies by entity kind
// and API generation. The normaliser never imposes a schema: it copies the
// record, coerces top-level scalars to strings, repairs a handful of known
// nested fields under "properties", derives identifiers and tags, and
// extracts relationship edges. Process groups get an extra reshape that
// hoists v2 properties into the legacy v1 layout.
package entity
