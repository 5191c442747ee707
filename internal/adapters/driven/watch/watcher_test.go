package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleFsEvent(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "PA_process_v1_1.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte("[]"), 0o644))
	textFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("x"), 0o644))
	hidden := filepath.Join(dir, ".partial.json")
	require.NoError(t, os.WriteFile(hidden, []byte("[]"), 0o644))
	subdir := filepath.Join(dir, "sub.json")
	require.NoError(t, os.Mkdir(subdir, 0o755))

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create json", jsonFile, fsnotify.Create, true},
		{"write json", jsonFile, fsnotify.Write, true},
		{"chmod json", jsonFile, fsnotify.Chmod, false},
		{"remove json", filepath.Join(dir, "gone.json"), fsnotify.Remove, false},
		{"rename json", jsonFile, fsnotify.Rename, false},
		{"create text", textFile, fsnotify.Create, false},
		{"create hidden", hidden, fsnotify.Create, false},
		{"create directory", subdir, fsnotify.Create, false},
		{"vanished before stat", filepath.Join(dir, "tmp.json"), fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}

func TestWatch_EmitsNewSnapshots(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, err := New(20*time.Millisecond).Watch(ctx, dir)
	require.NoError(t, err)

	target := filepath.Join(dir, "PA_host_v2_1.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"entities":[]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case got := <-paths:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot event")
	}

	cancel()
	for range paths {
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	paths, err := New(0).Watch(ctx, t.TempDir())
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-paths:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatch_InvalidDirectory(t *testing.T) {
	_, err := New(0).Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))
	_, err = New(0).Watch(context.Background(), file)
	assert.Error(t, err)
}
