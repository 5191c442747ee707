package dynatrace

import (
	"net/url"
	"strconv"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// V2EntitiesPath is the v2 entities listing endpoint.
const V2EntitiesPath = "api/v2/entities"

// v1Paths maps entity types to their legacy infrastructure endpoints.
var v1Paths = map[domain.EntityType]string{
	domain.EntityProcess:      "api/v1/entity/infrastructure/processes",
	domain.EntityProcessGroup: "api/v1/entity/infrastructure/process-groups",
	domain.EntityHost:         "api/v1/entity/infrastructure/hosts",
}

// v2Selectors maps entity types to v2 entity selectors.
var v2Selectors = map[domain.EntityType]string{
	domain.EntityProcess:      `type("PROCESS_GROUP_INSTANCE")`,
	domain.EntityProcessGroup: `type("PROCESS_GROUP")`,
	domain.EntityHost:         `type("HOST")`,
}

// V1Path returns the legacy endpoint path for an entity type.
func V1Path(t domain.EntityType) (string, bool) {
	p, ok := v1Paths[t]
	return p, ok
}

// V2Selector returns the entity selector for an entity type.
func V2Selector(t domain.EntityType) (string, bool) {
	s, ok := v2Selectors[t]
	return s, ok
}

// V1Query builds the initial legacy API query.
func V1Query(pageSize int) url.Values {
	return url.Values{
		"relativeTime": {"hour"},
		"pageSize":     {strconv.Itoa(pageSize)},
	}
}

// V2Query builds the initial v2 entities query.
func V2Query(selector, relativeTime, fields string) url.Values {
	return url.Values{
		"entitySelector": {selector},
		"from":           {relativeTime},
		"fields":         {fields},
	}
}
