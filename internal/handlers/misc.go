package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"techfix-hub/internal/data"
	"techfix-hub/internal/model"
)

func (s *Server) GetBankDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.Data.BankDetails()
	if err != nil {
		http.Error(w, "Failed fetching bank details", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	var details model.BankDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	updated, err := s.Data.UpdateBankDetails(details)
	if err != nil {
		if errors.Is(err, data.ErrBadBankAccount) {
			http.Error(w, "Bank account number must be numeric", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to update bank details", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Data.Settings()
	if err != nil {
		http.Error(w, "Failed fetching settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}
	if err := s.Data.SaveSettings(settings); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) GetNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": s.Notes.List(),
		"unread":        s.Notes.UnreadCount(),
	})
}

func (s *Server) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	s.Notes.MarkAsRead(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	s.Notes.MarkAllAsRead()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	s.Notes.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Dashboard отдаёт сводные счётчики для главной страницы админки.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	users, err := s.Data.Users()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	products, err := s.Data.Products()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	orders, err := s.Data.Orders()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	requests, err := s.Data.TopUpRequests()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var pendingOrders int
	var revenue int64
	for _, o := range orders {
		if o.Status == model.OrderPending {
			pendingOrders++
		}
		if o.Status == model.OrderCompleted {
			revenue += o.Amount
		}
	}
	var pendingTopUps int
	for _, t := range requests {
		if t.Status == model.TopUpPending {
			pendingTopUps++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users":         len(users),
		"products":      len(products),
		"orders":        len(orders),
		"pendingOrders": pendingOrders,
		"pendingTopups": pendingTopUps,
		"revenue":       revenue,
	})
}
