package entity

import "fmt"

// Property names with special handling.
const (
	fieldProperties        = "properties"
	fieldReleasesVersion   = "releasesVersion"
	fieldOSServices        = "osServices"
	fieldCustomPgMetadata  = "customPgMetadata"
	fieldLogFileStatus     = "logFileStatus"
	fieldLogSourceState    = "logSourceState"
	fieldLastSeenTimestamp = "lastSeenTimestamp"

	osServiceName        = "dt.osservice.name"
	osServiceDisplayName = "dt.osservice.display_name"
)

// coerceScalars replaces every top-level number and boolean with its string form.
func coerceScalars(fields map[string]any) {
	for k, v := range fields {
		if isNonStringScalar(v) {
			fields[k] = stringify(v)
		}
	}
}

// cleanProperties repairs known nested fields in place.
// It does nothing unless "properties" is a record.
func cleanProperties(fields map[string]any) {
	props, ok := fields[fieldProperties].(map[string]any)
	if !ok {
		return
	}

	if _, isString := props[fieldReleasesVersion].(string); isString {
		props[fieldReleasesVersion] = map[string]any{}
	}

	if services, isList := props[fieldOSServices].([]any); isList {
		props[fieldOSServices] = serviceNames(services)
	}

	if raw, present := props[fieldCustomPgMetadata]; present {
		switch v := raw.(type) {
		case []any:
			props[fieldCustomPgMetadata] = foldCustomMetadata(v)
		case map[string]any:
		default:
			props[fieldCustomPgMetadata] = map[string]any{}
		}
	}

	wrapLogList(props, fieldLogFileStatus)
	wrapLogList(props, fieldLogSourceState)
}

// serviceNames maps service descriptors to names.
func serviceNames(services []any) []any {
	out := make([]any, 0, len(services))
	for i, svc := range services {
		switch s := svc.(type) {
		case map[string]any:
			switch {
			case truthy(s[osServiceName]):
				out = append(out, s[osServiceName])
			case truthy(s[osServiceDisplayName]):
				out = append(out, s[osServiceDisplayName])
			default:
				out = append(out, fmt.Sprintf("unknown_service_%d", i))
			}
		case string:
			out = append(out, s)
		default:
			out = append(out, stringify(s))
		}
	}
	return out
}

// foldCustomMetadata folds key/value records into one record.
// Later entries overwrite earlier ones with the same key.
func foldCustomMetadata(entries []any) map[string]any {
	out := make(map[string]any, len(entries))
	for i, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			out[fmt.Sprintf("item_%d", i)] = stringify(entry)
			continue
		}

		key := fmt.Sprintf("unknown_key_%d", i)
		switch k := item["key"].(type) {
		case map[string]any:
			if isScalar(k["key"]) {
				key = stringify(k["key"])
			}
		default:
			if isScalar(k) {
				key = stringify(k)
			}
		}

		value, present := item["value"]
		if !present {
			value, present = item["val"]
		}
		if !present {
			value = fmt.Sprintf("unknown_value_%d", i)
		}
		out[key] = value
	}
	return out
}

// wrapLogList wraps a list as {field: list}, keeps records and nulls
// anything else.
func wrapLogList(props map[string]any, field string) {
	raw, present := props[field]
	if !present {
		return
	}
	switch v := raw.(type) {
	case []any:
		props[field] = map[string]any{field: v}
	case map[string]any:
	default:
		props[field] = nil
	}
}
