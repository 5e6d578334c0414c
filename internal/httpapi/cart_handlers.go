package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/onlineretail/storefront/internal/cart"
	"github.com/onlineretail/storefront/internal/cart/dto"
	"github.com/onlineretail/storefront/internal/model"
)

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var input dto.AddToCartInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	err = sess.WithCart(func(uc cart.UseCase) error {
		return uc.AddToCart(r.Context(), sess.Owner(), &input)
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "committed"})
}

func (s *Server) handleFetchCart(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var lines []model.CommittedCartLine
	err = sess.WithCart(func(uc cart.UseCase) error {
		var err error
		lines, err = uc.FetchCart(r.Context(), sess.Owner())
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}
