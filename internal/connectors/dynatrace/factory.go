package dynatrace

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.EnvironmentClient = (*Client)(nil)
	_ driven.ClientFactory     = (*Factory)(nil)
)

// Factory builds one Client per environment, each with its own token
// provider and HTTP session.
type Factory struct {
	tokenProviders driven.TokenProviderFactory
	timeout        time.Duration
}

// NewFactory creates a client factory backed by tokenProviders.
func NewFactory(tokenProviders driven.TokenProviderFactory) *Factory {
	return &Factory{
		tokenProviders: tokenProviders,
		timeout:        DefaultTimeout,
	}
}

// Create returns a client for env.
func (f *Factory) Create(
	_ context.Context,
	env domain.Environment,
	settings domain.CollectSettings,
) (driven.EnvironmentClient, error) {
	if env.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL for environment %s", domain.ErrMissingConfig, env.Name)
	}

	provider, err := f.tokenProviders.CreateTokenProvider(env)
	if err != nil {
		return nil, fmt.Errorf("environment %s: %w", env.Name, err)
	}

	return NewClient(
		env.NormalizedBaseURL(),
		provider,
		settings,
		WithHTTPClient(&http.Client{Timeout: f.timeout}),
	), nil
}
