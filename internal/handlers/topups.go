package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi"

	"techfix-hub/internal/data"
	"techfix-hub/internal/model"
)

func (s *Server) GetTopUpRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.Data.TopUpRequests()
	if err != nil {
		http.Error(w, "Failed fetching top-up requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) GetTopUpRequest(w http.ResponseWriter, r *http.Request) {
	request, err := s.Data.TopUpRequest(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "The request does not exist", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

type processTopUpRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) ApproveTopUp(w http.ResponseWriter, r *http.Request) {
	s.processTopUp(w, r, true)
}

func (s *Server) RejectTopUp(w http.ResponseWriter, r *http.Request) {
	s.processTopUp(w, r, false)
}

func (s *Server) processTopUp(w http.ResponseWriter, r *http.Request, approve bool) {
	id := chi.URLParam(r, "id")

	// Пустое тело допустимо: заметки администратора необязательны.
	var req processTopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	var (
		updated *model.TopUpRequest
		err     error
	)
	if approve {
		updated, err = s.Data.ApproveTopUp(id, req.Notes)
	} else {
		updated, err = s.Data.RejectTopUp(id, req.Notes)
	}
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRequestNotFound):
			http.Error(w, "The request does not exist", http.StatusNotFound)
		case errors.Is(err, data.ErrRequestProcessed):
			http.Error(w, "The request was already processed", http.StatusConflict)
		default:
			http.Error(w, "Failed to process request", http.StatusInternalServerError)
		}
		return
	}

	s.refreshSessionFor(updated.UserID)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteTopUpRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.Data.DeleteTopUpRequest(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, data.ErrRequestNotFound) {
			http.Error(w, "The request does not exist", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete request", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
