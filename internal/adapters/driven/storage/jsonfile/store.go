package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store is a file-backed snapshot store.
type Store struct {
	dir string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for file name timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store writing into dir, creating it if needed.
// An empty dir means the working directory.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	s := &Store{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteSnapshot writes content to {env}_{dataType}_{unix}.json.
func (s *Store) WriteSnapshot(ctx context.Context, env, dataType string, content any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, domain.SnapshotFileName(env, dataType, s.now()))
	if err := writeJSON(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// WriteTopology writes topology to {inputStem}_{suffix}_{unix}.json.
func (s *Store) WriteTopology(
	ctx context.Context,
	inputPath, suffix string,
	topology *domain.Topology,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if topology == nil {
		return "", fmt.Errorf("%w: nil topology", domain.ErrInvalidInput)
	}
	path := filepath.Join(s.dir, domain.TopologyFileName(inputPath, suffix, s.now()))
	if err := writeJSON(path, topology); err != nil {
		return "", err
	}
	return path, nil
}

// ReadDocument decodes a JSON file, keeping numbers as json.Number.
func (s *Store) ReadDocument(ctx context.Context, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}

	return Decode(data)
}

// Encode renders v as two-space indented JSON without HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a JSON document, keeping numbers as json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", domain.ErrInvalidInput, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: parse JSON: trailing data after document", domain.ErrInvalidInput)
	}
	return v, nil
}

func writeJSON(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
