package auth

import (
	"fmt"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Ensure Factory implements the TokenProviderFactory interface.
var _ driven.TokenProviderFactory = (*Factory)(nil)

// Factory creates TokenProviders for environments.
type Factory struct {
	oauthOpts []OAuthOption
}

// NewFactory creates a token provider factory. The options are applied to
// every OAuth provider it creates.
func NewFactory(oauthOpts ...OAuthOption) *Factory {
	return &Factory{oauthOpts: oauthOpts}
}

// CreateTokenProvider creates the appropriate TokenProvider for an environment.
// Each call returns a fresh provider with its own token cache.
func (f *Factory) CreateTokenProvider(env domain.Environment) (driven.TokenProvider, error) {
	if err := env.Auth.Validate(); err != nil {
		return nil, fmt.Errorf("environment %s auth: %w", env.Name, err)
	}

	switch env.Auth.Method {
	case domain.AuthMethodStatic:
		return NewStaticTokenProvider(env.Auth.APIToken), nil
	case domain.AuthMethodOAuth:
		return NewOAuthTokenProvider(env.Auth, f.oauthOpts...), nil
	default:
		return nil, fmt.Errorf("environment %s: %w: auth method %q", env.Name, domain.ErrUnsupportedType, env.Auth.Method)
	}
}
