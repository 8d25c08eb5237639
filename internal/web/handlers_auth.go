package web

import (
	"encoding/json"
	"net/http"

	"github.com/louisbranch/charkeep/internal/auth/session"
	"github.com/louisbranch/charkeep/internal/web/httpx"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type identityResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// handleRegister provisions a new account. The password is optional; an
// absent or empty password creates a passwordless account.
func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var request credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.credentials.Register(httpx.RequestContext(r), request.Username, request.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	_ = httpx.WriteJSON(w, http.StatusCreated, identityResponse{
		UserID:   created.ID,
		Username: created.Username,
	})
}

// handleLogin verifies credentials and establishes a session cookie. Every
// rejection surfaces the same 401 response so callers cannot probe which
// usernames exist.
func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var request credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.credentials.Authenticate(httpx.RequestContext(r), request.Username, request.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	token, err := h.sessions.Mint(account.ID)
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, "session could not be created")
		return
	}
	session.WriteCookie(w, r, token)

	_ = httpx.WriteJSON(w, http.StatusOK, identityResponse{
		UserID:   account.ID,
		Username: account.Username,
	})
}

// handleLogout clears the session cookie. Logging out without a session
// is a no-op, not an error.
func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}
