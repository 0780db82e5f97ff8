package session

import (
	"errors"
	"sync"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/data"
	"techfix-hub/internal/kv"
	"techfix-hub/internal/logging"
	"techfix-hub/internal/model"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Manager держит снимок вошедшего пользователя в памяти и зеркалирует его
// в хранилище под зарезервированным ключом. Снимок не живая ссылка:
// после мутаций пользователя вызывается Refresh.
type Manager struct {
	mu      sync.Mutex
	store   *kv.Store
	data    *data.Service
	current *model.User
}

func NewManager(store *kv.Store, svc *data.Service) *Manager {
	m := &Manager{store: store, data: svc}

	var stored model.User
	ok, err := store.Load(kv.KeySession, &stored)
	if err != nil {
		logging.Logg.Error("Failed to restore session", "error", err)
		return m
	}
	if ok {
		m.current = &stored
	}
	return m
}

// Login ищет пользователя по точному совпадению email. Если у записи есть
// хэш пароля, пароль проверяется; учётные записи без пароля входят по
// одному адресу (демо-данные без заведённого пароля).
func (m *Manager) Login(email, password string) (*model.User, error) {
	user, err := m.data.UserByEmail(email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash != "" {
		if err := auth.CheckPass(user.PasswordHash, password); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = user
	if err := m.store.Save(kv.KeySession, user); err != nil {
		return nil, err
	}
	snapshot := *user
	return &snapshot, nil
}

func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return m.store.Remove(kv.KeySession)
}

// Refresh перечитывает запись вошедшего пользователя и обновляет снимок
// в памяти и в хранилище.
func (m *Manager) Refresh() (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, nil
	}

	user, err := m.data.User(m.current.ID)
	if err != nil {
		return nil, err
	}
	m.current = user
	if err := m.store.Save(kv.KeySession, user); err != nil {
		return nil, err
	}
	snapshot := *user
	return &snapshot, nil
}

func (m *Manager) Current() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	snapshot := *m.current
	return &snapshot
}
