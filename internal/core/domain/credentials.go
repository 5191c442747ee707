package domain

import "time"

// Credential is an opaque API token plus an optional expiry.
// A zero Expiry means the credential does not expire (static tokens).
type Credential struct {
	// Token is sent in the Authorization header.
	Token string
	// Expiry is when the credential should be refreshed.
	Expiry time.Time
}

// IsExpired returns true if the credential is expired at the given instant.
// Credentials without an expiry never expire.
func (c Credential) IsExpired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Before(c.Expiry)
}

// IsEmpty returns true if no token is present.
func (c Credential) IsEmpty() bool {
	return c.Token == ""
}
