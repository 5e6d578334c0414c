package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/session"
)

const sessionHeader = "X-Session-Token"

// Server is the thin HTTP surface over the storefront core. All routing-level
// gating here is backed by the session's own capability checks; the handlers
// never reach around the state machine.
type Server struct {
	sessions *session.Registry
	logger   *zap.Logger
}

func NewServer(sessions *session.Registry, log *zap.Logger) *Server {
	return &Server{sessions: sessions, logger: log}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	r.HandleFunc("/products", s.handleListAvailable).Methods(http.MethodGet)
	r.HandleFunc("/products", s.handleCreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", s.handleGetProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", s.handleUpdateProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", s.handleDeleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/catalog", s.handleListCatalog).Methods(http.MethodGet)

	r.HandleFunc("/cart", s.handleFetchCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", s.handleAddToCart).Methods(http.MethodPost)

	r.HandleFunc("/reports/revenue", s.handleRevenue).Methods(http.MethodGet)
	r.HandleFunc("/reports/bestsellers", s.handleBestsellers).Methods(http.MethodGet)
	r.HandleFunc("/reports/sales", s.handleSalesReport).Methods(http.MethodGet)

	return r
}

// sessionFrom resolves the acting session from the request token.
func (s *Server) sessionFrom(r *http.Request) (*session.Session, string, error) {
	token := r.Header.Get(sessionHeader)
	if token == "" {
		return nil, "", apperr.ErrConnectionUnavailable
	}
	sess, ok := s.sessions.Get(token)
	if !ok {
		return nil, token, apperr.ErrConnectionUnavailable
	}
	return sess, token, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps core errors onto HTTP statuses. Domain errors leave
// the session authenticated; only a lost connection ends it.
func (s *Server) writeDomainError(w http.ResponseWriter, token string, err error) {
	switch {
	case apperr.IsFatal(err):
		if token != "" {
			_ = s.sessions.Logout(token)
		}
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrRoleUnresolvable),
		errors.Is(err, apperr.ErrNotPermitted),
		errors.Is(err, apperr.ErrMergeScopeViolation):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrDuplicateProductID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrInvalidQuantity), errors.Is(err, apperr.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
