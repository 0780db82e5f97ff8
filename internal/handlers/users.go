package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/data"
	"techfix-hub/internal/model"
)

func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Data.Users()
	if err != nil {
		http.Error(w, "Failed fetching users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, publicUsers(users))
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Credits  int64  `json:"credits"`
	Password string `json:"password,omitempty"`
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Role == "" {
		http.Error(w, "Name, email and role are required", http.StatusBadRequest)
		return
	}

	user := model.User{
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
		Credits: req.Credits,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "Failed hash the password", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = hash
	}

	created, err := s.Data.AddUser(user)
	if err != nil {
		if errors.Is(err, data.ErrUnknownRole) {
			http.Error(w, "Unknown role", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, publicUser(*created))
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Credits      *int64  `json:"credits"`
	Password     *string `json:"password"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
}

func (req *updateUserRequest) patch() (data.UserPatch, error) {
	patch := data.UserPatch{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Credits:      req.Credits,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
		Phone:        req.Phone,
		Location:     req.Location,
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return data.UserPatch{}, err
		}
		patch.PasswordHash = &hash
	}
	return patch, nil
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}
	patch, err := req.patch()
	if err != nil {
		http.Error(w, "Failed hash the password", http.StatusInternalServerError)
		return
	}

	updated, err := s.Data.UpdateUser(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserNotFound):
			http.Error(w, "The user does not exist", http.StatusNotFound)
		case errors.Is(err, data.ErrUnknownRole):
			http.Error(w, "Unknown role", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Failed to update user", http.StatusInternalServerError)
		}
		return
	}

	s.refreshSessionFor(updated.ID)
	writeJSON(w, http.StatusOK, publicUser(*updated))
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Data.DeleteUser(id); err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			http.Error(w, "The user does not exist", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type creditsRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) AddCredits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req creditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	user, err := s.Data.AddCredits(id, req.Amount)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			http.Error(w, "The user does not exist", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to add credits", http.StatusInternalServerError)
		return
	}

	s.refreshSessionFor(user.ID)
	writeJSON(w, http.StatusOK, publicUser(*user))
}

func (s *Server) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.Data.AvailableRoles()
	if err != nil {
		http.Error(w, "Failed fetching roles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

type roleRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}
	if err := s.Data.AddRole(req.Name); err != nil {
		if errors.Is(err, data.ErrRoleExists) {
			http.Error(w, "Role already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create role", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) DeleteRole(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Data.DeleteRole(name); err != nil {
		switch {
		case errors.Is(err, data.ErrUnknownRole):
			http.Error(w, "Unknown role", http.StatusNotFound)
		case errors.Is(err, data.ErrRoleInUse):
			http.Error(w, "Role is assigned to users", http.StatusConflict)
		default:
			http.Error(w, "Failed to delete role", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refreshSessionFor обновляет снимок сессии, когда мутация коснулась
// вошедшего пользователя.
func (s *Server) refreshSessionFor(userID string) {
	if current := s.Sessions.Current(); current != nil && current.ID == userID {
		s.Sessions.Refresh()
	}
}
