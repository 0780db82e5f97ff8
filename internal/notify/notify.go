package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/logging"
	"techfix-hub/internal/model"
)

// Хранится не больше 20 последних уведомлений, новые в начале списка.
const MaxNotifications = 20

// Service — единственный путь записи уведомлений: им пользуются и слой
// данных, и HTTP-обработчики.
type Service struct {
	mu    sync.Mutex
	store *kv.Store
}

func NewService(store *kv.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Publish(title, message string, ntype model.NotificationType) model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.loadLocked()
	n := model.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
		Read:      false,
		Type:      ntype,
	}

	notifications = append([]model.Notification{n}, notifications...)
	if len(notifications) > MaxNotifications {
		notifications = notifications[:MaxNotifications]
	}
	s.saveLocked(notifications)
	return n
}

func (s *Service) List() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Service) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.loadLocked() {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAsRead помечает уведомление прочитанным. Неизвестный id — no-op.
func (s *Service) MarkAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.loadLocked()
	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].Read = true
			s.saveLocked(notifications)
			return
		}
	}
}

func (s *Service) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.loadLocked()
	for i := range notifications {
		notifications[i].Read = true
	}
	s.saveLocked(notifications)
}

func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked([]model.Notification{})
}

func (s *Service) loadLocked() []model.Notification {
	var notifications []model.Notification
	if _, err := s.store.Load(kv.KeyNotifications, &notifications); err != nil {
		logging.Logg.Error("Failed to load notifications", "error", err)
		return nil
	}
	return notifications
}

func (s *Service) saveLocked(notifications []model.Notification) {
	if err := s.store.Save(kv.KeyNotifications, notifications); err != nil {
		logging.Logg.Error("Failed to save notifications", "error", err)
	}
}
