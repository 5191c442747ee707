package logger

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer and restores defaults afterwards.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetTimestamps(false)
		SetOutput(os.Stderr)
		now = time.Now
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("fetched %d pages", 3) }, "[DEBUG] fetched 3 pages\n"},
		{"debug quiet", false, func() { Debug("fetched %d pages", 3) }, ""},
		{"info verbose", true, func() { Info("env %s", "PA") }, "[INFO] env PA\n"},
		{"info quiet", false, func() { Info("env %s", "PA") }, ""},
		{"warn quiet", false, func() { Warn("skipped %s", "QA") }, "[WARN] skipped QA\n"},
		{"error quiet", false, func() { Error("failed: %v", "boom") }, "[ERROR] failed: boom\n"},
		{"section verbose", true, func() { Section("Collect") }, "\n=== Collect ===\n"},
		{"section quiet", false, func() { Section("Collect") }, ""},
		{"percent in args", false, func() { Warn("%s", "100%") }, "[WARN] 100%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			SetVerbose(tt.verbose)

			tt.log()

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSetTimestamps(t *testing.T) {
	buf := capture(t)
	now = func() time.Time { return time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC) }

	SetTimestamps(true)
	Warn("rebuilt %s", "topology")
	SetTimestamps(false)
	Warn("plain")

	assert.Equal(t, "09:05:07 [WARN] rebuilt topology\n[WARN] plain\n", buf.String())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}
