package driven

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// TokenProvider supplies credentials for outgoing API requests.
// Implementations handle refresh transparently. Each environment owns its
// own provider; providers are never shared between environments.
type TokenProvider interface {
	// GetCredential returns a usable credential, refreshing it first when
	// nothing is cached or the cached credential has expired.
	GetCredential(ctx context.Context) (domain.Credential, error)

	// Invalidate discards the cached credential so the next GetCredential
	// call refreshes. A no-op for static tokens.
	Invalidate()

	// Scheme returns the Authorization header scheme ("Bearer", "Api-Token").
	Scheme() string

	// AuthMethod returns the authentication method (static, oauth).
	AuthMethod() domain.AuthMethod
}
