package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	sess, err := s.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: sess.ID,
		Role:  sess.Role().String(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(sessionHeader)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing session token")
		return
	}

	if err := s.sessions.Logout(token); err != nil {
		s.writeDomainError(w, "", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
