package driven

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
)

// TokenProviderFactory creates a TokenProvider for an environment.
type TokenProviderFactory interface {
	// CreateTokenProvider returns the provider matching env.Auth.Method.
	// Returns ErrUnsupportedType for unknown methods.
	CreateTokenProvider(env domain.Environment) (TokenProvider, error)
}

// ClientFactory creates an EnvironmentClient per environment.
// Every call returns a client with its own token provider and HTTP session.
type ClientFactory interface {
	Create(ctx context.Context, env domain.Environment, settings domain.CollectSettings) (EnvironmentClient, error)
}
