package session

import "net/http"

// Resolver yields the principal id carried by an inbound request, or the
// empty string when the request has no valid session. The resolved id is
// trusted as-is by every downstream authorization decision.
type Resolver interface {
	ResolveUserID(r *http.Request) string
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(r *http.Request) string

// ResolveUserID implements Resolver.
func (f ResolverFunc) ResolveUserID(r *http.Request) string {
	return f(r)
}

// ResolveUserID resolves identity from the session cookie. Any missing,
// malformed, expired, or forged token resolves to no identity.
func (m *Manager) ResolveUserID(r *http.Request) string {
	token, ok := ReadCookie(r)
	if !ok {
		return ""
	}
	userID, err := m.Parse(token)
	if err != nil {
		return ""
	}
	return userID
}
