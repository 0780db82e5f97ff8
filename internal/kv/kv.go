package kv

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Ключи хранилища. Все коллекции живут в одном пространстве ключей,
// поэтому ключ сессии зарезервирован и оберегается при записи.
const (
	KeyUsers         = "users"
	KeyProducts      = "products"
	KeyOrders        = "orders"
	KeyTopUpRequests = "topupRequests"
	KeyBankDetails   = "bankDetails"
	KeyNotifications = "notifications"
	KeyAppSettings   = "appSettings"
	KeyRoles         = "availableRoles"
	KeySession       = "currentUser"
)

var ErrBackendClosed = errors.New("kv backend is closed")

// Backend — низкоуровневое хранилище сырых JSON-документов по ключу.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, doc []byte) error
	Delete(key string) error
	Close() error
}

// Store сериализует значения в JSON поверх Backend. Запись сохраняет
// ключ сессии: если после Put ключ currentUser пропал, он восстанавливается
// из снимка, снятого до записи.
type Store struct {
	backend Backend
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load читает значение под ключом. Возвращает false, если ключа нет.
func (s *Store) Load(key string, v any) (bool, error) {
	doc, ok, err := s.backend.Get(key)
	if err != nil {
		return false, fmt.Errorf("kv get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(doc, v); err != nil {
		return false, fmt.Errorf("kv decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv encode %q: %w", key, err)
	}

	session, hadSession, err := s.backend.Get(KeySession)
	if err != nil {
		return fmt.Errorf("kv get session: %w", err)
	}

	if err := s.backend.Put(key, doc); err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}

	if hadSession {
		if _, ok, err := s.backend.Get(KeySession); err == nil && !ok {
			if err := s.backend.Put(KeySession, session); err != nil {
				return fmt.Errorf("kv restore session: %w", err)
			}
		}
	}
	return nil
}

func (s *Store) Remove(key string) error {
	if err := s.backend.Delete(key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
