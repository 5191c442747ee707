package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/entigraph/internal/core/domain"
	"github.com/custodia-labs/entigraph/internal/core/ports/driven"
)

func TestStaticTokenProvider(t *testing.T) {
	t.Run("always returns the same token", func(t *testing.T) {
		p := NewStaticTokenProvider("dt0c01.abc")

		first, err := p.GetCredential(context.Background())
		require.NoError(t, err)
		p.Invalidate()
		second, err := p.GetCredential(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "dt0c01.abc", first.Token)
		assert.Equal(t, first, second)
		assert.True(t, first.Expiry.IsZero())
	})

	t.Run("uses the Api-Token scheme", func(t *testing.T) {
		p := NewStaticTokenProvider("x")

		assert.Equal(t, domain.SchemeAPIToken, p.Scheme())
		assert.Equal(t, domain.AuthMethodStatic, p.AuthMethod())
	})

	t.Run("implements TokenProvider interface", func(t *testing.T) {
		var _ driven.TokenProvider = NewStaticTokenProvider("x")
	})
}

func TestFactory_CreateTokenProvider(t *testing.T) {
	f := NewFactory()

	t.Run("static auth", func(t *testing.T) {
		p, err := f.CreateTokenProvider(domain.Environment{
			Name: "TEST",
			Auth: domain.AuthSettings{Method: domain.AuthMethodStatic, APIToken: "tok"},
		})

		require.NoError(t, err)
		assert.IsType(t, &StaticTokenProvider{}, p)
	})

	t.Run("oauth auth", func(t *testing.T) {
		p, err := f.CreateTokenProvider(domain.Environment{
			Name: "PA",
			Auth: domain.AuthSettings{
				Method:       domain.AuthMethodOAuth,
				TokenURL:     "https://login.example.com/token",
				ClientID:     "id",
				ClientSecret: "secret",
			},
		})

		require.NoError(t, err)
		assert.IsType(t, &OAuthTokenProvider{}, p)
	})

	t.Run("each environment gets its own provider", func(t *testing.T) {
		env := domain.Environment{
			Name: "PA",
			Auth: domain.AuthSettings{
				Method:       domain.AuthMethodOAuth,
				TokenURL:     "https://login.example.com/token",
				ClientID:     "id",
				ClientSecret: "secret",
			},
		}

		a, err := f.CreateTokenProvider(env)
		require.NoError(t, err)
		b, err := f.CreateTokenProvider(env)
		require.NoError(t, err)

		assert.NotSame(t, a, b)
	})

	t.Run("missing oauth fields", func(t *testing.T) {
		_, err := f.CreateTokenProvider(domain.Environment{
			Name: "PA",
			Auth: domain.AuthSettings{Method: domain.AuthMethodOAuth, ClientID: "id"},
		})

		assert.ErrorIs(t, err, domain.ErrMissingConfig)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := f.CreateTokenProvider(domain.Environment{
			Name: "PA",
			Auth: domain.AuthSettings{Method: "kerberos"},
		})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}
