package data

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func (s *Service) TopUpRequests() ([]model.TopUpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTopUps()
}

func (s *Service) TopUpRequestsByUser(userID string) ([]model.TopUpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.loadTopUps()
	if err != nil {
		return nil, err
	}
	var own []model.TopUpRequest
	for _, r := range requests {
		if r.UserID == userID {
			own = append(own, r)
		}
	}
	return own, nil
}

func (s *Service) TopUpRequest(id string) (*model.TopUpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topUpLocked(id)
}

// SubmitTopUp создаёт заявку на пополнение со снимком имени пользователя.
func (s *Service) SubmitTopUp(userID string, amount int64, bankAccount, imageProof string) (*model.TopUpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userLocked(userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.loadTopUps()
	if err != nil {
		return nil, err
	}

	request := model.TopUpRequest{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		UserName:    user.Name,
		Amount:      amount,
		BankAccount: bankAccount,
		ImageProof:  imageProof,
		Status:      model.TopUpPending,
		Date:        time.Now(),
	}
	requests = append(requests, request)
	if err := s.store.Save(kv.KeyTopUpRequests, requests); err != nil {
		return nil, err
	}

	s.notes.Publish("New TopUp Request",
		fmt.Sprintf("%s requested %d credits", request.UserName, request.Amount),
		model.NotifyTopUp)
	return &request, nil
}

// ApproveTopUp зачисляет кредиты и переводит заявку в approved. Переход
// терминальный: повторная обработка заявки отклоняется.
func (s *Service) ApproveTopUp(id, notes string) (*model.TopUpRequest, error) {
	return s.processTopUp(id, notes, model.TopUpApproved)
}

// RejectTopUp переводит заявку в rejected без движения кредитов.
func (s *Service) RejectTopUp(id, notes string) (*model.TopUpRequest, error) {
	return s.processTopUp(id, notes, model.TopUpRejected)
}

func (s *Service) processTopUp(id, notes string, status model.TopUpStatus) (*model.TopUpRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.loadTopUps()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(requests, func(r model.TopUpRequest) bool { return r.ID == id })
	if idx == -1 {
		return nil, ErrRequestNotFound
	}

	r := &requests[idx]
	if r.Status != model.TopUpPending {
		return nil, ErrRequestProcessed
	}

	if status == model.TopUpApproved {
		// Сначала зачисление, затем смена статуса — одна логическая
		// операция под общим мьютексом.
		if _, err := s.addCreditsLocked(r.UserID, r.Amount); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	r.Status = status
	r.Notes = notes
	r.ProcessedDate = &now

	if err := s.store.Save(kv.KeyTopUpRequests, requests); err != nil {
		return nil, err
	}

	verdict := "approved"
	title := "TopUp Request Approved"
	if status == model.TopUpRejected {
		verdict = "rejected"
		title = "TopUp Request Rejected"
	}
	s.notes.Publish(title,
		fmt.Sprintf("%s's request for %d credits was %s", r.UserName, r.Amount, verdict),
		model.NotifyTopUp)

	updated := *r
	return &updated, nil
}

func (s *Service) DeleteTopUpRequest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.loadTopUps()
	if err != nil {
		return err
	}

	filtered := slices.DeleteFunc(requests, func(r model.TopUpRequest) bool { return r.ID == id })
	if len(filtered) == len(requests) {
		return ErrRequestNotFound
	}
	return s.store.Save(kv.KeyTopUpRequests, filtered)
}

func (s *Service) topUpLocked(id string) (*model.TopUpRequest, error) {
	requests, err := s.loadTopUps()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == id {
			return &requests[i], nil
		}
	}
	return nil, ErrRequestNotFound
}
