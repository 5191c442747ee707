package auth

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

const (
	// ExchangeTimeout bounds a single token exchange request.
	ExchangeTimeout = 30 * time.Second

	// DefaultTokenLifetime is assumed when the server omits expires_in.
	DefaultTokenLifetime = 300 * time.Second

	// RefreshMargin is subtracted from the server-declared lifetime.
	RefreshMargin = 30 * time.Second

	// MinTokenValidity is the shortest cache lifetime ever used.
	MinTokenValidity = 30 * time.Second
)

// Ensure OAuthTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*OAuthTokenProvider)(nil)

// OAuthTokenProvider obtains access tokens with the OAuth 2.0
// client-credentials grant and caches them until shortly before expiry.
// One provider holds exactly one cached token.
type OAuthTokenProvider struct {
	config     clientcredentials.Config
	httpClient *http.Client
	now        func() time.Time

	mu     sync.Mutex
	cached domain.Credential
}

// OAuthOption customises an OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithHTTPClient sets the client used for token exchanges.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.httpClient = c
	}
}

// WithClock replaces time.Now for cache expiry decisions.
func WithClock(now func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.now = now
	}
}

// NewOAuthTokenProvider creates a client-credentials token provider.
// Client credentials are sent in the form body; scope, resource and
// audience are only sent when configured.
func NewOAuthTokenProvider(settings domain.AuthSettings, opts ...OAuthOption) *OAuthTokenProvider {
	params := url.Values{}
	if settings.Resource != "" {
		params.Set("resource", settings.Resource)
	}
	if settings.Audience != "" {
		params.Set("audience", settings.Audience)
	}

	var scopes []string
	if settings.Scope != "" {
		scopes = []string{settings.Scope}
	}

	p := &OAuthTokenProvider{
		config: clientcredentials.Config{
			ClientID:       settings.ClientID,
			ClientSecret:   settings.ClientSecret,
			TokenURL:       settings.TokenURL,
			Scopes:         scopes,
			EndpointParams: params,
			AuthStyle:      oauth2.AuthStyleInParams,
		},
		httpClient: &http.Client{Timeout: ExchangeTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetCredential returns the cached token, exchanging for a new one when
// nothing is cached or the cached token has reached its expiry.
func (p *OAuthTokenProvider) GetCredential(ctx context.Context) (domain.Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cached.IsEmpty() && !p.cached.IsExpired(p.now()) {
		return p.cached, nil
	}

	cred, err := p.exchange(ctx)
	if err != nil {
		return domain.Credential{}, err
	}
	p.cached = cred
	return cred, nil
}

// exchange performs the client-credentials request (caller must hold lock).
func (p *OAuthTokenProvider) exchange(ctx context.Context) (domain.Credential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.config.Token(ctx)
	if err != nil {
		return domain.Credential{}, &domain.AuthError{URL: p.config.TokenURL, Err: err}
	}
	if tok == nil || tok.AccessToken == "" {
		return domain.Credential{}, &domain.AuthError{URL: p.config.TokenURL, Err: domain.ErrTokenMissing}
	}

	validity := tokenLifetime(tok) - RefreshMargin
	if validity < MinTokenValidity {
		validity = MinTokenValidity
	}

	return domain.Credential{
		Token:  tok.AccessToken,
		Expiry: p.now().Add(validity),
	}, nil
}

// tokenLifetime returns the server-declared lifetime of a token.
func tokenLifetime(tok *oauth2.Token) time.Duration {
	if tok.ExpiresIn > 0 {
		return time.Duration(tok.ExpiresIn) * time.Second
	}
	if !tok.Expiry.IsZero() {
		return time.Until(tok.Expiry).Round(time.Second)
	}
	return DefaultTokenLifetime
}

// Invalidate clears the cached token so the next call exchanges again.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = domain.Credential{}
}

// Scheme returns the Bearer scheme.
func (p *OAuthTokenProvider) Scheme() string {
	return domain.SchemeBearer
}

// AuthMethod returns AuthMethodOAuth.
func (p *OAuthTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodOAuth
}
