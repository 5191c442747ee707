package auth

import (
	"context"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider provides a fixed API token.
// Static tokens don't expire and don't require refresh.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a token provider for a fixed API token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetCredential returns the fixed token.
func (p *StaticTokenProvider) GetCredential(_ context.Context) (domain.Credential, error) {
	return domain.Credential{Token: p.token}, nil
}

// Invalidate is a no-op; a rejected static token stays rejected.
func (p *StaticTokenProvider) Invalidate() {}

// Scheme returns the Api-Token scheme.
func (p *StaticTokenProvider) Scheme() string {
	return domain.SchemeAPIToken
}

// AuthMethod returns AuthMethodStatic.
func (p *StaticTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodStatic
}
