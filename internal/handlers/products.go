package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"techfix-hub/internal/data"
	"techfix-hub/internal/model"
)

func (s *Server) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Data.Products()
	if err != nil {
		http.Error(w, "Failed fetching products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.Data.Product(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "The product does not exist", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type createProductRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       int64                  `json:"price"`
	Prices      map[string]int64       `json:"prices"`
	Category    string                 `json:"category"`
	Fields      []model.CustomField    `json:"customFields"`
	Quantities  []model.QuantityOption `json:"quantities"`
}

func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Category == "" {
		http.Error(w, "Name and category are required", http.StatusBadRequest)
		return
	}

	created, err := s.Data.AddProduct(model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Prices:      req.Prices,
		Category:    req.Category,
		Fields:      req.Fields,
		Quantities:  req.Quantities,
	})
	if err != nil {
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateProductRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Price       *int64                  `json:"price"`
	Prices      *map[string]int64       `json:"prices"`
	Category    *string                 `json:"category"`
	Fields      *[]model.CustomField    `json:"customFields"`
	Quantities  *[]model.QuantityOption `json:"quantities"`
}

func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	updated, err := s.Data.UpdateProduct(id, data.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Prices:      req.Prices,
		Category:    req.Category,
		Fields:      req.Fields,
		Quantities:  req.Quantities,
	})
	if err != nil {
		if errors.Is(err, data.ErrProductNotFound) {
			http.Error(w, "The product does not exist", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.Data.DeleteProduct(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, data.ErrProductNotFound) {
			http.Error(w, "The product does not exist", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
