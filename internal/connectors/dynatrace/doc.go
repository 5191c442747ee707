// Package dynatrace fetches raw monitored entities from a Dynatrace
// environment.
//
// Two pagination protocols are supported:
//
//   - The legacy v1 infrastructure API returns a JSON array per page and
//     carries the cursor in the Next-Page-Key response header. Follow-up
//     requests repeat the original query with nextPageKey added.
//   - The v2 entities API returns an object per page with the entities
//     under "entities" and the cursor in the "nextPageKey" field.
//     Follow-up requests carry only nextPageKey.
//
// Every request is authenticated through a driven.TokenProvider. A 401
// response invalidates the cached credential and retries the request once.
package dynatrace
