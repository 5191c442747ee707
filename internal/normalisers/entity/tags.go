package entity

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/logger"
)

const (
	fieldTags            = "tags"
	fieldManagementZones = "managementZones"
	fieldSoftwareTechs   = "softwareTechnologies"
	fieldMonitoringState = "monitoringState"

	contextless = "CONTEXTLESS"
)

// tagLabels renders structured tags as [context]key:value labels.
// Entries that are not records are ignored.
func tagLabels(fields map[string]any) ([]string, error) {
	list := optionalList(fields, fieldTags)

	labels := make([]string, 0, len(list))
	for _, entry := range list {
		tag, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		var b strings.Builder
		ctx, err := tagField(tag, "context")
		if err != nil {
			return nil, err
		}
		if ctx != "" && ctx != contextless {
			b.WriteString("[" + ctx + "]")
		}

		key, err := tagField(tag, "key")
		if err != nil {
			return nil, err
		}
		b.WriteString(key)

		value, err := tagField(tag, "value")
		if err != nil {
			return nil, err
		}
		if value != "" {
			b.WriteString(":" + value)
		}

		if b.Len() > 0 {
			labels = append(labels, b.String())
		}
	}
	return labels, nil
}

// zoneLabels renders management zones as managementZones:<name>.
func zoneLabels(fields map[string]any) ([]string, error) {
	list := optionalList(fields, fieldManagementZones)

	labels := make([]string, 0, len(list))
	for _, entry := range list {
		zone, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, err := tagField(zone, "name")
		if err != nil {
			return nil, err
		}
		if name != "" {
			labels = append(labels, fieldManagementZones+":"+name)
		}
	}
	return labels, nil
}

// technologyLabels renders software technologies as type:edition:version,
// skipping absent segments.
func technologyLabels(fields map[string]any) []string {
	list, _ := fields[fieldSoftwareTechs].([]any)

	var labels []string
	for _, entry := range list {
		tech, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var parts []string
		for _, k := range []string{"type", "edition", "version"} {
			if v := tech[k]; truthy(v) && isScalar(v) {
				parts = append(parts, stringify(v))
			}
		}
		if len(parts) > 0 {
			labels = append(labels, strings.Join(parts, ":"))
		}
	}
	return labels
}

// monitoringLabels renders the actual and expected monitoring states.
func monitoringLabels(fields map[string]any) []string {
	state, ok := fields[fieldMonitoringState].(map[string]any)
	if !ok {
		return nil
	}

	var labels []string
	for _, k := range []string{"actualMonitoringState", "expectedMonitoringState"} {
		if v := state[k]; truthy(v) {
			labels = append(labels, k+":"+stringify(v))
		}
	}
	return labels
}

// tagField reads a scalar tag attribute. Absent, null and falsy values
// yield "". Composite values are malformed.
func tagField(record map[string]any, key string) (string, error) {
	v := record[key]
	if !truthy(v) {
		return "", nil
	}
	if !isScalar(v) {
		return "", fmt.Errorf("%w: tag field %q is %T", domain.ErrInvalidInput, key, v)
	}
	return stringify(v), nil
}

// optionalList returns fields[key] as a list. Absent, null and non-list
// values are treated as an empty list so the entity is still kept.
func optionalList(fields map[string]any, key string) []any {
	raw, present := fields[key]
	if !present || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		logger.Debug("Ignoring %s of type %T on entity %v", key, raw, fields["entityId"])
		return nil
	}
	return list
}
