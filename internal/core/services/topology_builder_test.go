package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/logger"
	"github.com/custodia-labs/entigraph/internal/normalisers/entity"
)

// captureLog redirects logger output for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
	})
	return &buf
}

func decodeEntities(t *testing.T, src string) []any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v []any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestTopologyBuilder_Build(t *testing.T) {
	captureLog(t)
	at := time.Unix(1700000000, 0)
	builder := NewTopologyBuilder(entity.New(), func() time.Time { return at })

	entities := decodeEntities(t, `[
		{"entityId": "E1", "fromRelationships": {"runsOn": [{"id": "H1"}]}},
		{"entityId": "E2", "toRelationships": {"isInstanceOf": ["PG1"]}}
	]`)

	topology := builder.Build(entities, domain.KindProcess, "PA_process_v2_1.json")

	require.Len(t, topology.Components, 2)
	assert.Equal(t, "E1", topology.Components[0].EntityID)
	assert.Equal(t, "E2", topology.Components[1].EntityID)
	assert.Equal(t, []domain.Relationship{
		{Source: "E1", Target: "H1", Type: "runsOn"},
		{Source: "PG1", Target: "E2", Type: "isInstanceOf"},
	}, topology.Relationships)

	assert.Equal(t, domain.TopologyMetadata{
		SourceFile:        "PA_process_v2_1.json",
		ComponentType:     domain.KindProcess,
		Timestamp:         1700000000,
		ComponentCount:    2,
		RelationshipCount: 2,
	}, topology.Metadata)
}

func TestTopologyBuilder_SkipsMalformedEntity(t *testing.T) {
	buf := captureLog(t)
	builder := NewTopologyBuilder(entity.New(), nil)

	var entities []any
	for i := 0; i < 10; i++ {
		e := map[string]any{"entityId": fmt.Sprintf("P-%d", i)}
		if i == 4 {
			e["fromRelationships"] = "not-an-object"
		}
		entities = append(entities, e)
	}

	topology := builder.Build(entities, domain.KindProcess, "in.json")

	assert.Len(t, topology.Components, 9)
	assert.Equal(t, 9, topology.Metadata.ComponentCount)
	for _, c := range topology.Components {
		assert.NotEqual(t, "P-4", c.EntityID)
	}
	assert.Contains(t, buf.String(), "[WARN] Failed to process entity P-4")
}

func TestTopologyBuilder_WarningUsesNormalisedID(t *testing.T) {
	buf := captureLog(t)
	builder := NewTopologyBuilder(entity.New(), nil)

	entities := decodeEntities(t, `[{"entityId": 12345, "toRelationships": []}]`)
	topology := builder.Build(entities, domain.KindEntity, "in.json")

	assert.Empty(t, topology.Components)
	assert.Contains(t, buf.String(), "[WARN] Failed to process entity 12345:")
	assert.NotContains(t, buf.String(), domain.UnknownEntityID)
	assert.NotContains(t, buf.String(), "normalise entity")
}

func TestTopologyBuilder_NonObjectEntity(t *testing.T) {
	buf := captureLog(t)
	builder := NewTopologyBuilder(entity.New(), nil)

	topology := builder.Build([]any{"oops", map[string]any{"entityId": "H1"}}, domain.KindHost, "in.json")

	require.Len(t, topology.Components, 1)
	assert.Equal(t, "H1", topology.Components[0].EntityID)
	assert.Contains(t, buf.String(), "[WARN] Failed to process entity UNKNOWN")
}

func TestTopologyBuilder_Empty(t *testing.T) {
	captureLog(t)
	topology := NewTopologyBuilder(entity.New(), nil).Build(nil, domain.KindEntity, "in.json")

	assert.NotNil(t, topology.Components)
	assert.NotNil(t, topology.Relationships)
	assert.Zero(t, topology.Metadata.ComponentCount)
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		filename string
		want     domain.ComponentKind
	}{
		{"PA_process_v1_1700000000.json", domain.KindProcess},
		{"/data/PROD_Process_v2_1.json", domain.KindProcess},
		{"PA_process-group_v2_1.json", domain.KindProcessGroup},
		{"PA_host_v2_1.json", domain.KindEntity},
		{"group_process.json", domain.KindEntity},
		{"entities.json", domain.KindEntity},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.filename))
		})
	}
}

func TestExtractEntities(t *testing.T) {
	v1 := []any{map[string]any{"entityId": "A"}}
	assert.Equal(t, v1, ExtractEntities(v1))

	v2 := map[string]any{"totalCount": json.Number("1"), "entities": v1}
	assert.Equal(t, v1, ExtractEntities(v2))

	assert.Nil(t, ExtractEntities(map[string]any{"totalCount": json.Number("0")}))
	assert.Nil(t, ExtractEntities(map[string]any{"entities": "bad"}))
	assert.Nil(t, ExtractEntities("scalar"))
	assert.Nil(t, ExtractEntities(nil))
}
