package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCredential_IsExpired_ZeroExpiry tests that zero expiry means never expires
func TestCredential_IsExpired_ZeroExpiry(t *testing.T) {
	c := Credential{Token: "static-token"}

	assert.False(t, c.IsExpired(time.Now()), "Credential with zero expiry should not be expired")
}

// TestCredential_IsExpired_Boundary tests the expiry instant itself counts as expired
func TestCredential_IsExpired_Boundary(t *testing.T) {
	now := time.Unix(1700000000, 0)
	c := Credential{Token: "t", Expiry: now.Add(30 * time.Second)}

	assert.False(t, c.IsExpired(now))
	assert.False(t, c.IsExpired(now.Add(29*time.Second)))
	assert.True(t, c.IsExpired(now.Add(30*time.Second)))
	assert.True(t, c.IsExpired(now.Add(time.Hour)))
}

// TestCredential_IsEmpty tests empty token detection
func TestCredential_IsEmpty(t *testing.T) {
	assert.True(t, Credential{}.IsEmpty())
	assert.False(t, Credential{Token: "x"}.IsEmpty())
}

// TestAuthSettings_Validate tests required fields per method
func TestAuthSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings AuthSettings
		wantErr  error
	}{
		{
			name:     "static with token",
			settings: AuthSettings{Method: AuthMethodStatic, APIToken: "dt0c01.abc"},
		},
		{
			name:     "static without token",
			settings: AuthSettings{Method: AuthMethodStatic},
			wantErr:  ErrMissingConfig,
		},
		{
			name: "oauth complete",
			settings: AuthSettings{
				Method:       AuthMethodOAuth,
				TokenURL:     "https://sso.example.com/token",
				ClientID:     "id",
				ClientSecret: "secret",
			},
		},
		{
			name: "oauth missing secret",
			settings: AuthSettings{
				Method:   AuthMethodOAuth,
				TokenURL: "https://sso.example.com/token",
				ClientID: "id",
			},
			wantErr: ErrMissingConfig,
		},
		{
			name:     "unknown method",
			settings: AuthSettings{Method: "saml"},
			wantErr:  ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestEnvironment_NormalizedBaseURL tests trailing slash removal
func TestEnvironment_NormalizedBaseURL(t *testing.T) {
	assert.Equal(t, "https://pa.example.com", Environment{BaseURL: "https://pa.example.com//"}.NormalizedBaseURL())
	assert.Equal(t, "https://pa.example.com", Environment{BaseURL: "https://pa.example.com"}.NormalizedBaseURL())
}

// TestCollectSettings_FieldsFor tests per-type field selectors with fallback
func TestCollectSettings_FieldsFor(t *testing.T) {
	s := CollectSettings{Fields: map[EntityType]string{
		EntityHost:    "+properties",
		EntityProcess: "",
	}}

	assert.Equal(t, "+properties", s.FieldsFor(EntityHost))
	assert.Equal(t, DefaultFields, s.FieldsFor(EntityProcess))
	assert.Equal(t, DefaultFields, s.FieldsFor(EntityProcessGroup))
}
