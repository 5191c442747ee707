package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore.
// Content is held as encoded JSON so reads behave like the file store.
type SnapshotStore struct {
	mu    sync.RWMutex
	dir   string
	files map[string][]byte
	now   func() time.Time
}

// NewSnapshotStore creates a new in-memory snapshot store. Paths are
// reported under dir. A nil clock uses time.Now.
func NewSnapshotStore(dir string, now func() time.Time) *SnapshotStore {
	if now == nil {
		now = time.Now
	}
	return &SnapshotStore{
		dir:   dir,
		files: make(map[string][]byte),
		now:   now,
	}
}

// WriteSnapshot stores content under {env}_{dataType}_{unix}.json.
func (s *SnapshotStore) WriteSnapshot(ctx context.Context, env, dataType string, content any) (string, error) {
	return s.put(ctx, domain.SnapshotFileName(env, dataType, s.now()), content)
}

// WriteTopology stores topology under {inputStem}_{suffix}_{unix}.json.
func (s *SnapshotStore) WriteTopology(
	ctx context.Context,
	inputPath, suffix string,
	topology *domain.Topology,
) (string, error) {
	if topology == nil {
		return "", fmt.Errorf("%w: nil topology", domain.ErrInvalidInput)
	}
	return s.put(ctx, domain.TopologyFileName(inputPath, suffix, s.now()), topology)
}

// ReadDocument decodes a stored document.
func (s *SnapshotStore) ReadDocument(ctx context.Context, p string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.files[p]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", domain.ErrInvalidInput, err)
	}
	return v, nil
}

// PutRaw stores raw bytes at an exact path.
func (s *SnapshotStore) PutRaw(p string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = append([]byte(nil), data...)
}

// Paths returns every stored path, sorted.
func (s *SnapshotStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (s *SnapshotStore) put(ctx context.Context, name string, content any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}

	p := path.Join(s.dir, name)
	s.mu.Lock()
	s.files[p] = data
	s.mu.Unlock()
	return p, nil
}
