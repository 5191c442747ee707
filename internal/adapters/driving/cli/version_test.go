package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_PrintsVersionAndPlatform(t *testing.T) {
	originalVersion := version
	version = "1.2.0"
	defer func() { version = originalVersion }()

	out, err := executeRoot(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "entigraph version 1.2.0")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Contains(t, out, runtime.Version())
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	out, err := executeRoot(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "entigraph version dev")
}

func TestVersionCmd_RejectsArguments(t *testing.T) {
	_, err := executeRoot(t, "version", "extra")

	assert.Error(t, err)
}
