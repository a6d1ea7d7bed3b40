package auth

import (
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// Middleware provides HTTP middleware for the PIN gate.
type Middleware struct {
	sessions *scs.SessionManager
	pin      *PIN
}

func NewMiddleware(sm *scs.SessionManager, pin *PIN) *Middleware {
	return &Middleware{sessions: sm, pin: pin}
}

// RequireAdmin rejects requests that carry neither an authenticated session
// nor a valid PIN credential. Must run inside the session manager's
// LoadAndSave wrapper.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.sessions.GetBool(r.Context(), SessionAdminKey) {
			next.ServeHTTP(w, r)
			return
		}
		if m.pin.Matches(CredentialFromRequest(r)) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "code": "UNAUTHORIZED"})
	})
}
