package identity

import "strings"

// Principal is the authenticated caller as asserted by the identity provider
type Principal struct {
	ExternalID string
	Email      string
}

// IsAuthenticated reports whether the principal carries a subject
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.ExternalID != ""
}

// NormalizedEmail returns the lower-cased email
func (p *Principal) NormalizedEmail() string {
	if p == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(p.Email))
}
