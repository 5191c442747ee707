package entity

const (
	fieldListenPorts    = "listenPorts"
	fieldDetectedName   = "detectedName"
	fieldDiscoveredName = "discoveredName"
	fieldMetadata       = "metadata"
)

// metadataKeys maps v2 process-group metadata keys to their v1 names.
var metadataKeys = map[string]string{
	"COMMAND_LINE_ARGS":            "commandLineArgs",
	"EXE_NAME":                     "executables",
	"EXE_PATH":                     "executablePaths",
	"JAVA_MAIN_CLASS":              "javaMainClasses",
	"CONTAINER_IMAGE_NAME":         "containerImageNames",
	"CONTAINER_IMAGE_VERSION":      "containerImageVersions",
	"CONTAINER_NAME":               "containerNames",
	"ELASTIC_SEARCH_CLUSTER_NAMES": "elasticSearchClusterNames",
	"ELASTIC_SEARCH_NODE_NAMES":    "elasticSearchNodeNames",
	"PG_ID_CALC_INPUT_KEY_LINKAGE": "pgIdCalcInputKeyLinkage",
	"JAVA_JAR_FILE":                "javaJarFiles",
	"JAVA_JAR_PATH":                "javaJarPaths",
}

// MetadataKey returns the v1 name for a v2 metadata key. Unknown keys map
// to themselves.
func MetadataKey(raw string) string {
	if mapped, ok := metadataKeys[raw]; ok {
		return mapped
	}
	return raw
}

// reshapeProcessGroup moves v2 process-group properties into the v1 layout.
func reshapeProcessGroup(fields map[string]any) {
	props, ok := fields[fieldProperties].(map[string]any)
	if !ok {
		return
	}

	for _, key := range []string{fieldListenPorts, fieldSoftwareTechs} {
		v, present := props[key]
		if !present {
			continue
		}
		delete(props, key)
		if list, isList := v.([]any); isList && len(list) > 0 {
			fields[key] = list
		}
	}

	if detected := props[fieldDetectedName]; truthy(detected) && !truthy(fields[fieldDiscoveredName]) {
		fields[fieldDiscoveredName] = detected
	}

	raw, present := props[fieldMetadata]
	if !present {
		return
	}
	delete(props, fieldMetadata)

	entries, _ := raw.([]any)
	if meta := foldProcessGroupMetadata(entries); len(meta) > 0 {
		fields[fieldMetadata] = meta
	}
}

// foldProcessGroupMetadata collects entry values per mapped key, in order.
// A key seen only with null values still yields an empty list.
func foldProcessGroupMetadata(entries []any) map[string]any {
	collected := make(map[string][]any)
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		rawKey := item["key"]
		if !truthy(rawKey) || !isScalar(rawKey) {
			continue
		}

		key := MetadataKey(stringify(rawKey))
		values, seen := collected[key]
		if !seen {
			values = []any{}
		}
		if value := item["value"]; value != nil {
			values = append(values, value)
		}
		collected[key] = values
	}

	out := make(map[string]any, len(collected))
	for k, v := range collected {
		out[k] = v
	}
	return out
}
