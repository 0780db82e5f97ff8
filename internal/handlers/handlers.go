package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/config"
	"techfix-hub/internal/data"
	"techfix-hub/internal/middleware"
	"techfix-hub/internal/model"
	"techfix-hub/internal/notify"
	"techfix-hub/internal/session"
)

type Server struct {
	Data     *data.Service
	Notes    *notify.Service
	Sessions *session.Manager
	Config   config.Config
}

func NewServer(cfg config.Config, svc *data.Service, notes *notify.Service, sessions *session.Manager) *Server {
	return &Server{
		Data:     svc,
		Notes:    notes,
		Sessions: sessions,
		Config:   cfg,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) LoginUser(w http.ResponseWriter, r *http.Request) {
	var requestBody loginRequest
	err := json.NewDecoder(r.Body).Decode(&requestBody)
	if err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	user, err := s.Sessions.Login(requestBody.Email, requestBody.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	authToken, err := auth.GenerateToken(user.ID, user.Role, s.Config.Secret)
	if err != nil {
		http.Error(w, "Failed generation token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", authToken))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"token":  authToken,
		"user":   publicUser(*user),
	})
}

func (s *Server) LogoutUser(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Logout(); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Me возвращает свежую запись вошедшего пользователя и обновляет снимок
// сессии, если он относится к тому же пользователю.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if current := s.Sessions.Current(); current != nil && current.ID == claims.UserID {
		if _, err := s.Sessions.Refresh(); err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	user, err := s.Data.User(claims.UserID)
	if err != nil {
		http.Error(w, "The user does not exist", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, publicUser(*user))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// publicUser — копия записи без хэша пароля для ответов API.
func publicUser(u model.User) model.User {
	u.PasswordHash = ""
	return u
}

func publicUsers(users []model.User) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	return out
}
