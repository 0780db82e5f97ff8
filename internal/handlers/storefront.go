package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"techfix-hub/internal/data"
	"techfix-hub/internal/middleware"
	"techfix-hub/internal/model"
)

// maxProofBytes ограничивает тело заявки на пополнение вместе с картинкой-
// подтверждением в data URI.
const maxProofBytes = 4 << 20

type catalogItem struct {
	model.Product
	RolePrice int64 `json:"rolePrice"` // цена для роли запрашивающего
}

func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	products, err := s.Data.Products()
	if err != nil {
		http.Error(w, "Failed fetching products", http.StatusInternalServerError)
		return
	}

	items := make([]catalogItem, 0, len(products))
	for _, p := range products {
		items = append(items, catalogItem{Product: p, RolePrice: p.PriceFor(claims.Role)})
	}
	writeJSON(w, http.StatusOK, items)
}

type placeOrderRequest struct {
	ProductID string              `json:"productId"`
	Fields    []model.CustomField `json:"customFields"`
	Quantity  int                 `json:"quantity"`
}

func (s *Server) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	order, err := s.Data.PlaceOrder(claims.UserID, req.ProductID, req.Fields, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrProductNotFound):
			http.Error(w, "The product does not exist", http.StatusNotFound)
		case errors.Is(err, data.ErrInsufficientCredits):
			http.Error(w, "Insufficient credits", http.StatusPaymentRequired)
		case errors.Is(err, data.ErrInvalidIMEI):
			http.Error(w, "Invalid IMEI number", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
		}
		return
	}

	s.refreshSessionFor(claims.UserID)
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := s.Data.OrdersByUser(claims.UserID)
	if err != nil {
		http.Error(w, "Failed fetching orders", http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type submitTopUpRequest struct {
	Amount      int64  `json:"amount"`
	BankAccount string `json:"bankAccount"`
	ImageProof  string `json:"imageProof"`
}

func (s *Server) SubmitTopUp(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProofBytes)
	var req submitTopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format or image too large", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}

	request, err := s.Data.SubmitTopUp(claims.UserID, req.Amount, req.BankAccount, req.ImageProof)
	if err != nil {
		http.Error(w, "Failed to submit request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *Server) GetMyTopUps(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requests, err := s.Data.TopUpRequestsByUser(claims.UserID)
	if err != nil {
		http.Error(w, "Failed fetching requests", http.StatusInternalServerError)
		return
	}
	if len(requests) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	Password     *string `json:"password"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
}

// UpdateProfile правит собственные поля профиля; роль и баланс отсюда
// недоступны.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ExtractClaims(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request format", http.StatusBadRequest)
		return
	}

	full := updateUserRequest{
		Name:         req.Name,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
		Phone:        req.Phone,
		Location:     req.Location,
	}
	patch, err := full.patch()
	if err != nil {
		http.Error(w, "Failed hash the password", http.StatusInternalServerError)
		return
	}

	updated, err := s.Data.UpdateUser(claims.UserID, patch)
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	s.refreshSessionFor(claims.UserID)
	writeJSON(w, http.StatusOK, publicUser(*updated))
}
