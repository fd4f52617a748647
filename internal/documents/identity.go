package documents

import "strings"

// IdentityResolver derives the acting user's identifier from a
// caller-supplied token. No validation happens at this layer: a non-empty
// token is trusted verbatim, an absent one resolves to the configured
// fallback. It never fails and has no side effects.
type IdentityResolver struct {
	Fallback string
}

// Resolve returns the effective user identifier for a request token.
func (r IdentityResolver) Resolve(token string) string {
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		return trimmed
	}
	return r.Fallback
}
