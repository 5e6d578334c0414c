package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/onlineretail/storefront/internal/model"
	"github.com/onlineretail/storefront/internal/product"
	"github.com/onlineretail/storefront/internal/product/dto"
)

func (s *Server) handleListAvailable(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var items []model.CatalogItem
	err = sess.WithBrowse(func(uc product.UseCase) error {
		var err error
		items, err = uc.ListAvailableProducts(r.Context())
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var items []model.CatalogItem
	err = sess.WithCatalog(func(uc product.UseCase) error {
		var err error
		items, err = uc.ListCatalog(r.Context())
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var item *model.CatalogItem
	err = sess.WithBrowse(func(uc product.UseCase) error {
		var err error
		item, err = uc.GetProduct(r.Context(), mux.Vars(r)["id"])
		return err
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var input dto.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	if input.ID == "" || input.Name == "" {
		writeError(w, http.StatusBadRequest, "product_id and product_name are required")
		return
	}

	err = sess.WithCatalog(func(uc product.UseCase) error {
		return uc.CreateProduct(r.Context(), &input)
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"product_id": input.ID})
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	var input dto.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.ID = mux.Vars(r)["id"]

	err = sess.WithCatalog(func(uc product.UseCase) error {
		return uc.UpdateProduct(r.Context(), &input)
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"product_id": input.ID})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess, token, err := s.sessionFrom(r)
	if err != nil {
		s.writeDomainError(w, "", err)
		return
	}

	id := mux.Vars(r)["id"]
	err = sess.WithCatalog(func(uc product.UseCase) error {
		return uc.DeleteProduct(r.Context(), id)
	})
	if err != nil {
		s.writeDomainError(w, token, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"product_id": id})
}
