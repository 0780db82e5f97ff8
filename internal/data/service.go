package data

import (
	"errors"
	"regexp"
	"sync"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
	"techfix-hub/internal/notify"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrRequestNotFound     = errors.New("top-up request not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrRequestProcessed    = errors.New("top-up request already processed")
	ErrInvalidIMEI         = errors.New("invalid IMEI number")
	ErrUnknownRole         = errors.New("unknown role")
	ErrRoleExists          = errors.New("role already exists")
	ErrRoleInUse           = errors.New("role is assigned to users")
)

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(word string) bool {
	return numericRegex.MatchString(word)
}

// Service — слой доступа к данным поверх kv-хранилища. Мьютекс
// сериализует каждый цикл чтение-изменение-запись, в том числе парные
// записи возврата средств (пользователь, затем заказ) как одну
// логическую операцию.
type Service struct {
	mu    sync.Mutex
	store *kv.Store
	notes *notify.Service
}

func NewService(store *kv.Store, notes *notify.Service) *Service {
	return &Service{store: store, notes: notes}
}

func (s *Service) loadUsers() ([]model.User, error) {
	var users []model.User
	if _, err := s.store.Load(kv.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) loadProducts() ([]model.Product, error) {
	var products []model.Product
	if _, err := s.store.Load(kv.KeyProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) loadOrders() ([]model.Order, error) {
	var orders []model.Order
	if _, err := s.store.Load(kv.KeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) loadTopUps() ([]model.TopUpRequest, error) {
	var requests []model.TopUpRequest
	if _, err := s.store.Load(kv.KeyTopUpRequests, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
