// Package auth gates the admin surface behind a single shared PIN. The PIN
// is process-wide configuration loaded once at start; a successful check can
// be exchanged for a server-side session so subsequent requests need not
// carry the credential.
package auth

import (
	"crypto/subtle"
	"net/http"
)

// PIN holds the shared admin secret.
type PIN struct {
	secret string
}

func NewPIN(secret string) *PIN {
	return &PIN{secret: secret}
}

// Matches reports whether candidate equals the configured PIN, in constant
// time. An empty candidate never matches.
func (p *PIN) Matches(candidate string) bool {
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(p.secret)) == 1
}

// CredentialFromRequest extracts a submitted PIN from the places clients
// put it: a form field, a query parameter, or the X-Admin-Pin header.
func CredentialFromRequest(r *http.Request) string {
	if pin := r.FormValue("pin"); pin != "" {
		return pin
	}
	if pin := r.URL.Query().Get("pin"); pin != "" {
		return pin
	}
	return r.Header.Get("X-Admin-Pin")
}
