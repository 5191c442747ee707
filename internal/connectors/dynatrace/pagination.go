package dynatrace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
	"github.com/custodia-labs/entigraph/internal/logger"
)

const (
	// HeaderNextPageKey carries the v1 cursor.
	HeaderNextPageKey = "Next-Page-Key"

	// ParamNextPageKey is the cursor query parameter and v2 body field.
	ParamNextPageKey = "nextPageKey"

	// FieldEntities holds the v2 entity list.
	FieldEntities = "entities"
)

// FetchHeaderPaged drains an endpoint whose cursor is a response header.
// Array pages are concatenated in order; any other page body is appended
// as a single record.
func (c *Client) FetchHeaderPaged(
	ctx context.Context,
	endpoint string,
	query url.Values,
	label string,
	observe driven.PageObserver,
) ([]any, error) {
	items := []any{}
	params := cloneValues(query)

	for page := 1; ; page++ {
		if err := c.checkPageLimit(endpoint, page); err != nil {
			return nil, err
		}

		body, header, err := c.getPage(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}

		data, err := decodeJSON(endpoint, body)
		if err != nil {
			return nil, err
		}

		records := 1
		if list, ok := data.([]any); ok {
			items = append(items, list...)
			records = len(list)
		} else {
			items = append(items, data)
		}
		notify(observe, label, page, records)

		next := header.Get(HeaderNextPageKey)
		if next == "" {
			break
		}
		params = cloneValues(query)
		params.Set(ParamNextPageKey, next)
	}

	return items, nil
}

// FetchBodyPaged drains an endpoint whose cursor is a body field.
// Metadata is taken from the first page only.
func (c *Client) FetchBodyPaged(
	ctx context.Context,
	endpoint string,
	query url.Values,
	label string,
	observe driven.PageObserver,
) (*domain.EntityCollection, error) {
	collection := &domain.EntityCollection{Entities: []any{}}
	params := cloneValues(query)

	for page := 1; ; page++ {
		if err := c.checkPageLimit(endpoint, page); err != nil {
			return nil, err
		}

		body, _, err := c.getPage(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}

		data, err := decodeJSON(endpoint, body)
		if err != nil {
			return nil, err
		}

		obj, ok := data.(map[string]any)
		if !ok {
			return nil, &domain.FetchError{
				URL: endpoint,
				Err: fmt.Errorf("%w: page %d is %T, want object", domain.ErrUnexpectedShape, page, data),
			}
		}

		var entities []any
		if raw, present := obj[FieldEntities]; present && raw != nil {
			list, isList := raw.([]any)
			if !isList {
				return nil, &domain.FetchError{
					URL: endpoint,
					Err: fmt.Errorf("%w: %q is %T, want array", domain.ErrUnexpectedShape, FieldEntities, raw),
				}
			}
			entities = list
		}

		if page == 1 {
			collection.Metadata = make(map[string]any, len(obj))
			for k, v := range obj {
				if k == FieldEntities || k == ParamNextPageKey {
					continue
				}
				collection.Metadata[k] = v
			}
		}

		collection.Entities = append(collection.Entities, entities...)
		notify(observe, label, page, len(entities))

		next, err := bodyCursor(obj[ParamNextPageKey])
		if err != nil {
			return nil, &domain.FetchError{URL: endpoint, Err: fmt.Errorf("page %d: %w", page, err)}
		}
		if next == "" {
			break
		}
		params = url.Values{ParamNextPageKey: {next}}
	}

	return collection, nil
}

// bodyCursor reads the v2 nextPageKey. Null, empty, false and zero end the
// drain; numbers are sent as their wire text; other types are malformed.
func bodyCursor(v any) (string, error) {
	switch c := v.(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	case json.Number:
		if f, err := c.Float64(); err == nil && f == 0 {
			return "", nil
		}
		return c.String(), nil
	case bool:
		if !c {
			return "", nil
		}
	}
	return "", fmt.Errorf("%w: %q is %T, want string", domain.ErrUnexpectedShape, ParamNextPageKey, v)
}

// checkPageLimit fails once page exceeds the configured ceiling.
func (c *Client) checkPageLimit(endpoint string, page int) error {
	if c.maxPages <= 0 || page <= c.maxPages {
		return nil
	}
	return &domain.FetchError{
		URL: endpoint,
		Err: fmt.Errorf("%w: more than %d pages", domain.ErrPageLimitExceeded, c.maxPages),
	}
}

func notify(observe driven.PageObserver, label string, page, records int) {
	logger.Debug("%s page %d: %d records", label, page, records)
	if observe != nil {
		observe(label, page, records)
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
