package notify

import (
	"fmt"
	"path/filepath"
	"testing"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	backend, err := kv.OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	return NewService(kv.NewStore(backend))
}

func TestRingBufferKeepsLatestTwenty(t *testing.T) {
	svc := newTestService(t)

	for i := 1; i <= 25; i++ {
		svc.Publish(fmt.Sprintf("title %d", i), "msg", model.NotifyOrder)
	}

	notifications := svc.List()
	if len(notifications) != MaxNotifications {
		t.Fatalf("expected %d notifications, got %d", MaxNotifications, len(notifications))
	}

	// Новые в начале: остаются публикации с 25-й по 6-ю.
	if notifications[0].Title != "title 25" {
		t.Errorf("expected newest first, got %q", notifications[0].Title)
	}
	if notifications[len(notifications)-1].Title != "title 6" {
		t.Errorf("expected oldest kept to be #6, got %q", notifications[len(notifications)-1].Title)
	}
}

func TestUnreadCountAndMarking(t *testing.T) {
	svc := newTestService(t)

	first := svc.Publish("one", "msg", model.NotifyUser)
	svc.Publish("two", "msg", model.NotifyProduct)

	if got := svc.UnreadCount(); got != 2 {
		t.Errorf("expected 2 unread, got %d", got)
	}

	svc.MarkAsRead(first.ID)
	if got := svc.UnreadCount(); got != 1 {
		t.Errorf("expected 1 unread after marking, got %d", got)
	}

	// Неизвестный идентификатор — no-op.
	svc.MarkAsRead("missing")
	if got := svc.UnreadCount(); got != 1 {
		t.Errorf("unexpected unread count after no-op: %d", got)
	}

	svc.MarkAllAsRead()
	if got := svc.UnreadCount(); got != 0 {
		t.Errorf("expected 0 unread after mark-all, got %d", got)
	}
}

func TestClear(t *testing.T) {
	svc := newTestService(t)

	svc.Publish("one", "msg", model.NotifyTopUp)
	svc.Clear()

	if got := svc.List(); len(got) != 0 {
		t.Errorf("expected empty list after clear, got %d", len(got))
	}
}

func TestNotificationsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	backend, err := kv.OpenFileBackend(path)
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	svc := NewService(kv.NewStore(backend))
	svc.Publish("kept", "msg", model.NotifyOrder)

	reopened, err := kv.OpenFileBackend(path)
	if err != nil {
		t.Fatalf("failed to reopen file backend: %v", err)
	}
	again := NewService(kv.NewStore(reopened))
	notifications := again.List()
	if len(notifications) != 1 || notifications[0].Title != "kept" {
		t.Errorf("notifications did not survive reopen: %+v", notifications)
	}
}
