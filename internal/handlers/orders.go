package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"techfix-hub/internal/data"
	"techfix-hub/internal/model"
)

func (s *Server) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Data.Orders()
	if err != nil {
		http.Error(w, "Failed fetching orders", http.StatusInternalServerError)
		return
	}

	// Фильтры списка заказов в админке.
	category := r.URL.Query().Get("category")
	userID := r.URL.Query().Get("userId")
	status := r.URL.Query().Get("status")

	filtered := orders[:0]
	for _, o := range orders {
		if category != "" && o.Category != category {
			continue
		}
		if userID != "" && o.UserID != userID {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		filtered = append(filtered, o)
	}
	writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.Data.Order(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "The order does not exist", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type updateOrderRequest struct {
	Status    *model.OrderStatus `json:"status"`
	ReplyCode *string            `json:"replyCode"`
}

// UpdateOrder меняет статус и ответ администратора. Возврат средств при
// переходе в cancelled выполняет слой данных.
func (s *Server) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	updated, err := s.Data.UpdateOrder(id, data.OrderPatch{
		Status:    req.Status,
		ReplyCode: req.ReplyCode,
	})
	if err != nil {
		if errors.Is(err, data.ErrOrderNotFound) {
			http.Error(w, "The order does not exist", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	s.refreshSessionFor(updated.UserID)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := s.Data.Order(id)
	if err != nil {
		http.Error(w, "The order does not exist", http.StatusNotFound)
		return
	}

	if err := s.Data.DeleteOrder(id); err != nil {
		http.Error(w, "Failed to delete order", http.StatusInternalServerError)
		return
	}

	s.refreshSessionFor(order.UserID)
	w.WriteHeader(http.StatusNoContent)
}
