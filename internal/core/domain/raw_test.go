package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRawEntity_ID tests id extraction
func TestRawEntity_ID(t *testing.T) {
	assert.Equal(t, "HOST-1", RawEntity{"entityId": "HOST-1"}.ID())
	assert.Equal(t, "", RawEntity{"entityId": json.Number("7")}.ID())
	assert.Equal(t, "", RawEntity{}.ID())
}

// TestRawEntity_Object tests record field access
func TestRawEntity_Object(t *testing.T) {
	e := RawEntity{
		"properties": map[string]any{"pid": json.Number("42")},
		"tags":       []any{},
	}

	props, ok := e.Object("properties")
	assert.True(t, ok)
	assert.Equal(t, json.Number("42"), props["pid"])

	_, ok = e.Object("tags")
	assert.False(t, ok)

	_, ok = e.Object("missing")
	assert.False(t, ok)
}

// TestEntityIDOf tests id extraction from arbitrary decoded values
func TestEntityIDOf(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"record with id", map[string]any{"entityId": "PROCESS_GROUP-9"}, "PROCESS_GROUP-9"},
		{"record without id", map[string]any{"displayName": "web"}, UnknownEntityID},
		{"empty id", map[string]any{"entityId": ""}, UnknownEntityID},
		{"non-string id", map[string]any{"entityId": json.Number("1")}, UnknownEntityID},
		{"string", "HOST-1", UnknownEntityID},
		{"nil", nil, UnknownEntityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntityIDOf(tt.input))
		})
	}
}
