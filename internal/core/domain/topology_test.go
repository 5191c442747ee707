package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_MarshalJSON_FlattensFields(t *testing.T) {
	c := Component{
		EntityID:    "PROCESS_GROUP_INSTANCE-1",
		Fields:      map[string]any{"entityId": "PROCESS_GROUP_INSTANCE-1", "displayName": "web"},
		Identifiers: []string{"urn:dynatrace:/PROCESS_GROUP_INSTANCE-1"},
		Tags:        []string{"env:prod"},
		Kind:        KindProcess,
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "web", got["displayName"])
	assert.Equal(t, []any{"urn:dynatrace:/PROCESS_GROUP_INSTANCE-1"}, got[FieldIdentifiers])
	assert.Equal(t, []any{"env:prod"}, got[FieldTags])
	assert.Equal(t, "process", got[FieldComponentType])
	assert.NotContains(t, got, "EntityID")
}

func TestComponent_MarshalJSON_ReservedKeysWin(t *testing.T) {
	c := Component{
		Fields: map[string]any{FieldTags: "stale", FieldComponentType: "stale"},
		Kind:   KindHost,
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"identifiers":[],"tags":[],"component_type":"host"}`, string(data))
}

func TestNewTopology(t *testing.T) {
	at := time.Unix(1700000000, 0)
	topo := NewTopology("PA_process_v2_1.json", KindProcess, at,
		[]Component{{Kind: KindProcess}, {Kind: KindProcess}},
		[]Relationship{{Source: "A", Target: "B", Type: "runsOn"}},
	)

	assert.Equal(t, TopologyMetadata{
		SourceFile:        "PA_process_v2_1.json",
		ComponentType:     KindProcess,
		Timestamp:         1700000000,
		ComponentCount:    2,
		RelationshipCount: 1,
	}, topo.Metadata)
}

func TestNewTopology_EmptyListsEncodeAsArrays(t *testing.T) {
	topo := NewTopology("x.json", KindEntity, time.Unix(1, 0), nil, nil)

	data, err := json.Marshal(topo)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"components":[]`)
	assert.Contains(t, string(data), `"relationships":[]`)
	assert.NotContains(t, string(data), "run_id")
}

func TestSnapshotFileNames(t *testing.T) {
	at := time.Unix(1700000000, 0)

	assert.Equal(t, "PA_process-group_v2_1700000000.json",
		SnapshotFileName("PA", DataTypeName(EntityProcessGroup, APIv2), at))
	assert.Equal(t, "PA_process_v1_1700000000_topology_1700000000.json",
		TopologyFileName("/data/PA_process_v1_1700000000.json", "topology", at))
	assert.Equal(t, "dump_graph_1700000000.json", TopologyFileName("dump", "graph", at))
}

func TestEntityCollection_MarshalJSON(t *testing.T) {
	c := EntityCollection{
		Metadata: map[string]any{"totalCount": json.Number("2"), "pageSize": json.Number("50")},
		Entities: []any{map[string]any{"entityId": "HOST-1"}},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalCount":2,"pageSize":50,"entities":[{"entityId":"HOST-1"}]}`, string(data))

	empty, err := json.Marshal(EntityCollection{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities":[]}`, string(empty))
}
