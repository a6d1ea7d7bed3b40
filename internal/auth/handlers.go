package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// Handlers exposes the login/logout endpoints that exchange a PIN for a
// session.
type Handlers struct {
	sessions *scs.SessionManager
	pin      *PIN
}

func NewHandlers(sm *scs.SessionManager, pin *PIN) *Handlers {
	return &Handlers{sessions: sm, pin: pin}
}

// Login checks the submitted PIN and marks the session authenticated.
// POST /admin/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !h.pin.Matches(CredentialFromRequest(r)) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "code": "UNAUTHORIZED"})
		return
	}
	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		log.Printf("auth: renew session token: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
		return
	}
	h.sessions.Put(r.Context(), SessionAdminKey, true)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Logout destroys the session.
// POST /admin/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.sessions.Destroy(r.Context()); err != nil {
		log.Printf("auth: destroy session: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
