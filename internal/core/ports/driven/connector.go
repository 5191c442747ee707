package driven

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// PageObserver is notified after each page of a paginated fetch.
// Label names the collection (e.g. "process_v1"), page is 1-based and
// records is the number of records the page contributed.
type PageObserver func(label string, page, records int)

// EnvironmentClient fetches raw entity collections from one environment.
// Pages are fetched strictly in cursor order.
type EnvironmentClient interface {
	// FetchV1 drains the legacy array API for an entity type.
	FetchV1(ctx context.Context, t domain.EntityType, observe PageObserver) ([]any, error)

	// FetchV2 drains the v2 entities API for an entity type.
	FetchV2(ctx context.Context, t domain.EntityType, observe PageObserver) (*domain.EntityCollection, error)
}
