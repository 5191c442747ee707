package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driving"
)

// mockTopologyService implements driving.TopologyService for testing.
type mockTopologyService struct {
	inputPath string
	kind      domain.ComponentKind
	suffix    string
	watchDir  string
	results   []*driving.TopologyResult
	err       error
}

func (m *mockTopologyService) BuildFile(
	_ context.Context,
	inputPath string,
	kind domain.ComponentKind,
	suffix string,
) (*driving.TopologyResult, error) {
	m.inputPath = inputPath
	m.kind = kind
	m.suffix = suffix
	if m.err != nil {
		return nil, m.err
	}
	return m.results[0], nil
}

func (m *mockTopologyService) Watch(
	_ context.Context,
	dir, suffix string,
	onBuilt func(*driving.TopologyResult),
) error {
	m.watchDir = dir
	m.suffix = suffix
	if m.err != nil {
		return m.err
	}
	for _, r := range m.results {
		onBuilt(r)
	}
	return nil
}

func sampleResult(output string, components, relationships int) *driving.TopologyResult {
	return &driving.TopologyResult{
		InputPath:  "PA_process_v2_1700000000.json",
		OutputPath: output,
		Topology: &domain.Topology{Metadata: domain.TopologyMetadata{
			ComponentType:     domain.KindProcess,
			ComponentCount:    components,
			RelationshipCount: relationships,
		}},
	}
}

func setupTopologyTest(mock driving.TopologyService) func() {
	oldService := topologyService
	oldWiring := wiring
	topologyService = mock
	wiring = nil
	return func() {
		topologyService = oldService
		wiring = oldWiring
		_ = topologyCmd.Flags().Set("component-type", "")
		_ = topologyCmd.Flags().Set("output-suffix", defaultOutputSuffix)
		_ = watchCmd.Flags().Set("output-suffix", defaultOutputSuffix)
	}
}

func TestTopologyCmd_Use(t *testing.T) {
	assert.Equal(t, "topology <input>", topologyCmd.Use)
	assert.Equal(t, "watch <dir>", watchCmd.Use)
}

func TestTopologyCmd_Short(t *testing.T) {
	assert.Equal(t, "Build a topology file from a snapshot", topologyCmd.Short)
	assert.Equal(t, "Build topology for new snapshots as they arrive", watchCmd.Short)
}

func TestTopologyCmd_Long(t *testing.T) {
	assert.Contains(t, topologyCmd.Long, "<stem>_<suffix>_<unixtime>.json")
	assert.Contains(t, topologyCmd.Long, "--component-type")
	assert.Contains(t, topologyCmd.Long, "OUTPUT_DIR")
	assert.NotContains(t, topologyCmd.Long, "next to the input")
}

func TestTopologyCmd_Executes(t *testing.T) {
	mock := &mockTopologyService{results: []*driving.TopologyResult{
		sampleResult("PA_process_v2_1700000000_topology_1700000001.json", 9, 4),
	}}
	cleanup := setupTopologyTest(mock)
	defer cleanup()

	out, err := executeRoot(t, "topology", "PA_process_v2_1700000000.json")

	require.NoError(t, err)
	assert.Equal(t, "PA_process_v2_1700000000.json", mock.inputPath)
	assert.Equal(t, domain.ComponentKind(""), mock.kind, "kind is detected by the service when the flag is absent")
	assert.Equal(t, "topology", mock.suffix)
	assert.Contains(t, out, "Wrote topology to PA_process_v2_1700000000_topology_1700000001.json")
	assert.Contains(t, out, "9 components, 4 relationships (process)")
}

func TestTopologyCmd_Flags(t *testing.T) {
	mock := &mockTopologyService{results: []*driving.TopologyResult{sampleResult("out.json", 1, 0)}}
	cleanup := setupTopologyTest(mock)
	defer cleanup()

	_, err := executeRoot(t, "topology", "snap.json", "--component-type", "Host", "--output-suffix", "graph")

	require.NoError(t, err)
	assert.Equal(t, domain.KindHost, mock.kind)
	assert.Equal(t, "graph", mock.suffix)
}

func TestTopologyCmd_InvalidComponentType(t *testing.T) {
	mock := &mockTopologyService{}
	cleanup := setupTopologyTest(mock)
	defer cleanup()

	_, err := executeRoot(t, "topology", "snap.json", "--component-type", "service")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Empty(t, mock.inputPath)
}

func TestTopologyCmd_RequiresInput(t *testing.T) {
	cleanup := setupTopologyTest(&mockTopologyService{})
	defer cleanup()

	_, err := executeRoot(t, "topology")

	assert.Error(t, err)
}

func TestTopologyCmd_ServiceError(t *testing.T) {
	mock := &mockTopologyService{err: domain.ErrNotFound}
	cleanup := setupTopologyTest(mock)
	defer cleanup()

	_, err := executeRoot(t, "topology", "missing.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "topology failed")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopologyCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTopologyTest(nil)
	defer cleanup()
	topologyService = nil

	_, err := executeRoot(t, "topology", "snap.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "topology service not configured")
}

func TestWatchCmd_PrintsEachBuild(t *testing.T) {
	mock := &mockTopologyService{results: []*driving.TopologyResult{
		sampleResult("a_topology_1.json", 2, 1),
		sampleResult("b_topology_2.json", 5, 3),
	}}
	cleanup := setupTopologyTest(mock)
	defer cleanup()

	out, err := executeRoot(t, "watch", "snapshots", "--output-suffix", "graph")

	require.NoError(t, err)
	assert.Equal(t, "snapshots", mock.watchDir)
	assert.Equal(t, "graph", mock.suffix)
	assert.Contains(t, out, "Watching snapshots")
	assert.Contains(t, out, "Wrote topology to a_topology_1.json")
	assert.Contains(t, out, "Wrote topology to b_topology_2.json")
	assert.Contains(t, out, "5 components, 3 relationships")
}

func TestWatchCmd_ServiceError(t *testing.T) {
	mock := &mockTopologyService{err: errors.New("no such directory")}
	cleanup := setupTopologyTest(mock)
	defer cleanup()

	_, err := executeRoot(t, "watch", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch failed")
}
