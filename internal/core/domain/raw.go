package domain

// RawEntity is one entity record exactly as the API returned it.
// Values are decoded JSON: string, json.Number, bool, []any, map[string]any
// or nil. There is no fixed schema.
type RawEntity map[string]any

// ID returns the entityId field, or an empty string when absent or not a string.
func (e RawEntity) ID() string {
	id, _ := e["entityId"].(string)
	return id
}

// Object returns the named field as a record, if it is one.
func (e RawEntity) Object(key string) (map[string]any, bool) {
	m, ok := e[key].(map[string]any)
	return m, ok
}

// EntityIDOf returns the id of an arbitrary decoded record, or
// UnknownEntityID when the record is not an object or has no usable id.
func EntityIDOf(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return UnknownEntityID
	}
	id, ok := m["entityId"].(string)
	if !ok || id == "" {
		return UnknownEntityID
	}
	return id
}
