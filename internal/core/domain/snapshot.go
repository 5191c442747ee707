package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// APIGeneration identifies which API produced a snapshot.
type APIGeneration string

const (
	// APIv1 is the legacy array API paginated by response header.
	APIv1 APIGeneration = "v1"
	// APIv2 is the entities API paginated by a body cursor.
	APIv2 APIGeneration = "v2"
)

// SnapshotRecord describes one persisted raw snapshot.
type SnapshotRecord struct {
	// Environment is the environment name.
	Environment string
	// DataType is the file name segment, e.g. "process-group_v2".
	DataType string
	// Path is where the snapshot was written.
	Path string
	// Records is the number of entity records in the snapshot.
	Records int
}

// DataTypeName builds the data type segment for an entity type and API generation.
func DataTypeName(t EntityType, gen APIGeneration) string {
	return string(t) + "_" + string(gen)
}

// EntityCollection is a fully drained v2 entities listing.
// Metadata is the first page's response without the entity list and cursor.
type EntityCollection struct {
	Metadata map[string]any
	Entities []any
}

// MarshalJSON writes the metadata fields with "entities" added.
func (c EntityCollection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		out[k] = v
	}
	entities := c.Entities
	if entities == nil {
		entities = []any{}
	}
	out["entities"] = entities
	return json.Marshal(out)
}

// SnapshotFileName names a raw snapshot: {env}_{dataType}_{unix}.json.
func SnapshotFileName(env, dataType string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d.json", env, dataType, at.Unix())
}

// TopologyFileName names a topology output: {inputStem}_{suffix}_{unix}.json.
func TopologyFileName(inputPath, suffix string, at time.Time) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s_%d.json", stem, suffix, at.Unix())
}
