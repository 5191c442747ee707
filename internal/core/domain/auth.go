package domain

// AuthMethod defines how an environment authenticates.
type AuthMethod string

const (
	// AuthMethodStatic uses a fixed API token.
	AuthMethodStatic AuthMethod = "static"
	// AuthMethodOAuth uses the OAuth 2.0 client-credentials grant.
	AuthMethodOAuth AuthMethod = "oauth"
)

// Authorization header schemes.
const (
	SchemeBearer   = "Bearer"
	SchemeAPIToken = "Api-Token"
)

// AuthSettings holds credentials for one environment.
// Exactly one of APIToken or the OAuth fields is used, selected by Method.
type AuthSettings struct {
	Method AuthMethod

	// APIToken is the static token (AuthMethodStatic).
	APIToken string

	// TokenURL is the OAuth token endpoint (AuthMethodOAuth).
	TokenURL     string
	ClientID     string
	ClientSecret string

	// Optional exchange fields; sent only when non-empty.
	Scope    string
	Resource string
	Audience string
}

// Validate checks that the fields required by Method are present.
func (a AuthSettings) Validate() error {
	switch a.Method {
	case AuthMethodStatic:
		if a.APIToken == "" {
			return ErrMissingConfig
		}
	case AuthMethodOAuth:
		if a.TokenURL == "" || a.ClientID == "" || a.ClientSecret == "" {
			return ErrMissingConfig
		}
	default:
		return ErrUnsupportedType
	}
	return nil
}
