package data

import (
	"errors"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

var ErrBadBankAccount = errors.New("bank account number must be numeric")

// BankDetails возвращает реквизиты организации; при первом обращении
// записывает значения по умолчанию.
func (s *Service) BankDetails() (model.BankDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var details model.BankDetails
	ok, err := s.store.Load(kv.KeyBankDetails, &details)
	if err != nil {
		return model.BankDetails{}, err
	}
	if !ok {
		details = model.DefaultBankDetails()
		if err := s.store.Save(kv.KeyBankDetails, details); err != nil {
			return model.BankDetails{}, err
		}
	}
	return details, nil
}

func (s *Service) UpdateBankDetails(details model.BankDetails) (model.BankDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bank := range details.Banks {
		if !IsNumeric(bank.Account) {
			return model.BankDetails{}, ErrBadBankAccount
		}
	}

	if err := s.store.Save(kv.KeyBankDetails, details); err != nil {
		return model.BankDetails{}, err
	}
	return details, nil
}
