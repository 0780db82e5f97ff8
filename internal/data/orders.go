package data

import (
	"fmt"
	"slices"
	"time"

	luhn "github.com/EClaesson/go-luhn"
	"github.com/google/uuid"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func (s *Service) Orders() ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrders()
}

func (s *Service) OrdersByUser(userID string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	var own []model.Order
	for _, o := range orders {
		if o.UserID == userID {
			own = append(own, o)
		}
	}
	return own, nil
}

func (s *Service) Order(id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// PlaceOrder оформляет заказ: цена берётся по роли пользователя, списание
// кредитов и добавление заказа выполняются как одна логическая операция.
// Для категории IMEI поле IMEI проверяется по алгоритму Луна.
func (s *Service) PlaceOrder(userID, productID string, fields []model.CustomField, quantity int) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	user, err := s.userLocked(userID)
	if err != nil {
		return nil, err
	}
	product, err := s.productLocked(productID)
	if err != nil {
		return nil, err
	}

	if product.Category == model.CategoryIMEI {
		if err := checkIMEIFields(fields); err != nil {
			return nil, err
		}
	}

	amount := product.PriceFor(user.Role) * int64(quantity)
	if user.Credits < amount {
		return nil, ErrInsufficientCredits
	}

	if _, err := s.addCreditsLocked(userID, -amount); err != nil {
		return nil, err
	}

	order := model.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Amount:      amount,
		Date:        time.Now(),
		Status:      model.OrderPending,
		Category:    product.Category,
		Fields:      fields,
		Quantity:    quantity,
	}

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	orders = append(orders, order)
	if err := s.store.Save(kv.KeyOrders, orders); err != nil {
		return nil, err
	}

	s.notes.Publish("New Order Placed",
		fmt.Sprintf("%s ordered for %d", order.ProductName, order.Amount),
		model.NotifyOrder)
	return &order, nil
}

// AddOrder добавляет готовую запись заказа без движения кредитов.
// Используется при начальном заполнении данных.
func (s *Service) AddOrder(order model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}

	order.ID = uuid.NewString()
	orders = append(orders, order)
	if err := s.store.Save(kv.KeyOrders, orders); err != nil {
		return nil, err
	}

	s.notes.Publish("New Order Placed",
		fmt.Sprintf("%s ordered for %d", order.ProductName, order.Amount),
		model.NotifyOrder)
	return &order, nil
}

type OrderPatch struct {
	Status    *model.OrderStatus
	ReplyCode *string
}

// UpdateOrder применяет частичное обновление. Переход в cancelled из любого
// другого статуса возвращает пользователю сумму заказа ровно один раз;
// повторная отмена кредиты не двигает.
func (s *Service) UpdateOrder(id string, patch OrderPatch) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(orders, func(o model.Order) bool { return o.ID == id })
	if idx == -1 {
		return nil, ErrOrderNotFound
	}

	o := &orders[idx]
	previousStatus := o.Status

	if patch.Status != nil && *patch.Status == model.OrderCancelled && previousStatus != model.OrderCancelled {
		// Возврат записывается до смены статуса: если зачисление не
		// удалось, заказ остаётся в прежнем статусе.
		if _, err := s.addCreditsLocked(o.UserID, o.Amount); err != nil {
			return nil, err
		}
	}

	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.ReplyCode != nil {
		o.ReplyCode = *patch.ReplyCode
	}

	if err := s.store.Save(kv.KeyOrders, orders); err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != previousStatus {
		s.notes.Publish("Order Status Changed",
			fmt.Sprintf("Order for %s is now %s", o.ProductName, o.Status),
			model.NotifyOrder)
	}
	updated := *o
	return &updated, nil
}

// DeleteOrder удаляет заказ. Если заказ не отменён и не завершён, перед
// удалением пользователю возвращается сумма заказа.
func (s *Service) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(orders, func(o model.Order) bool { return o.ID == id })
	if idx == -1 {
		return ErrOrderNotFound
	}

	o := orders[idx]
	if o.Status != model.OrderCancelled && o.Status != model.OrderCompleted {
		if _, err := s.addCreditsLocked(o.UserID, o.Amount); err != nil {
			return err
		}
	}

	filtered := slices.Delete(orders, idx, idx+1)
	return s.store.Save(kv.KeyOrders, filtered)
}

func checkIMEIFields(fields []model.CustomField) error {
	for _, f := range fields {
		if f.Name != "IMEI" {
			continue
		}
		if !IsNumeric(f.Value) {
			return ErrInvalidIMEI
		}
		valid, err := luhn.IsValid(f.Value)
		if err != nil || !valid {
			return ErrInvalidIMEI
		}
	}
	return nil
}
