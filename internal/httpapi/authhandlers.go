package httpapi

import (
	"net/http"
	"strings"

	"github.com/ift-institute/ift-site/pkg/interfaces"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.authenticator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid form body"})
			return
		}
		req.Email = r.PostForm.Get("email")
		req.Password = r.PostForm.Get("password")
	}

	user, err := s.authenticator.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// Content and permissions follow the new identity.
	s.session.LoadData(r.Context())

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, userPayload(user))
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.authenticator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if err := s.authenticator.SignOut(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.session.LoadData(r.Context())

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{"signed_out": true})
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if s.authenticator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	user, err := s.authenticator.CurrentUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil, "can_edit": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     userPayload(user),
		"can_edit": s.session.CanEdit(),
	})
}

func userPayload(user *interfaces.User) map[string]any {
	if user == nil {
		return nil
	}
	return map[string]any{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}
}
