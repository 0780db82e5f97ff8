package session

import (
	"errors"
	"path/filepath"
	"testing"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/data"
	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
	"techfix-hub/internal/notify"
)

func newTestEnv(t *testing.T) (*kv.Store, *data.Service) {
	t.Helper()
	backend, err := kv.OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	store := kv.NewStore(backend)
	return store, data.NewService(store, notify.NewService(store))
}

func TestLoginUnknownEmail(t *testing.T) {
	store, svc := newTestEnv(t)
	m := NewManager(store, svc)

	if _, err := m.Login("nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	store, svc := newTestEnv(t)

	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if _, err := svc.AddUser(model.User{
		Name: "secure", Email: "secure@example.com", Role: "user", PasswordHash: hash,
	}); err != nil {
		t.Fatalf("add user failed: %v", err)
	}

	m := NewManager(store, svc)

	if _, err := m.Login("secure@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a wrong password, got %v", err)
	}

	user, err := m.Login("secure@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "secure@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestLoginWithoutStoredPassword(t *testing.T) {
	store, svc := newTestEnv(t)

	// Демо-учётки без пароля входят по одному адресу почты.
	if _, err := svc.AddUser(model.User{Name: "demo", Email: "demo@example.com", Role: "user"}); err != nil {
		t.Fatalf("add user failed: %v", err)
	}

	m := NewManager(store, svc)
	if _, err := m.Login("demo@example.com", "anything"); err != nil {
		t.Errorf("expected password-less login to succeed, got %v", err)
	}
}

func TestSessionMirroredAndRestored(t *testing.T) {
	store, svc := newTestEnv(t)

	if _, err := svc.AddUser(model.User{Name: "demo", Email: "demo@example.com", Role: "user"}); err != nil {
		t.Fatalf("add user failed: %v", err)
	}

	m := NewManager(store, svc)
	logged, err := m.Login("demo@example.com", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Новый менеджер над тем же хранилищем восстанавливает снимок.
	again := NewManager(store, svc)
	current := again.Current()
	if current == nil || current.ID != logged.ID {
		t.Errorf("session snapshot not restored: %+v", current)
	}

	if err := again.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if NewManager(store, svc).Current() != nil {
		t.Error("session key survived logout")
	}
}

func TestRefreshPicksUpCreditChanges(t *testing.T) {
	store, svc := newTestEnv(t)

	user, err := svc.AddUser(model.User{Name: "demo", Email: "demo@example.com", Role: "user", Credits: 100})
	if err != nil {
		t.Fatalf("add user failed: %v", err)
	}

	m := NewManager(store, svc)
	if _, err := m.Login("demo@example.com", ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.AddCredits(user.ID, 400); err != nil {
		t.Fatalf("add credits failed: %v", err)
	}

	// Снимок не живая ссылка: до Refresh видны старые кредиты.
	if got := m.Current().Credits; got != 100 {
		t.Errorf("expected stale snapshot with 100 credits, got %d", got)
	}

	refreshed, err := m.Refresh()
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.Credits != 500 {
		t.Errorf("expected 500 credits after refresh, got %d", refreshed.Credits)
	}
}
