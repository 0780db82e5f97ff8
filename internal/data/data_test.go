package data

import (
	"errors"
	"path/filepath"
	"testing"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
	"techfix-hub/internal/notify"
)

func newTestService(t *testing.T) (*Service, *notify.Service) {
	t.Helper()
	backend, err := kv.OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("failed to open file backend: %v", err)
	}
	store := kv.NewStore(backend)
	notes := notify.NewService(store)
	return NewService(store, notes), notes
}

func addUser(t *testing.T, svc *Service, name string, credits int64) *model.User {
	t.Helper()
	user, err := svc.AddUser(model.User{
		Name:    name,
		Email:   name + "@example.com",
		Role:    "user",
		Credits: credits,
	})
	if err != nil {
		t.Fatalf("failed to add user: %v", err)
	}
	return user
}

func addProduct(t *testing.T, svc *Service, name string, prices map[string]int64) *model.Product {
	t.Helper()
	product, err := svc.AddProduct(model.Product{
		Name:     name,
		Prices:   prices,
		Category: model.CategoryServer,
	})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	return product
}

func TestUpdateUserMergesFields(t *testing.T) {
	svc, _ := newTestService(t)

	first := addUser(t, svc, "first", 100)
	second := addUser(t, svc, "second", 200)

	name := "renamed"
	bio := "a bio"
	updated, err := svc.UpdateUser(first.ID, UserPatch{Name: &name, Bio: &bio})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Name != "renamed" || updated.Bio != "a bio" {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Email != first.Email || updated.Credits != first.Credits || updated.Role != first.Role {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	// Соседняя запись не должна измениться.
	got, err := svc.User(second.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.Name != "second" || got.Credits != 200 {
		t.Errorf("sibling record changed: %+v", got)
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	addUser(t, svc, "only", 100)

	name := "x"
	if _, err := svc.UpdateUser("no-such-id", UserPatch{Name: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.DeleteUser("no-such-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	users, _ := svc.Users()
	if len(users) != 1 {
		t.Errorf("collection modified by no-op: %d users", len(users))
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		user := addUser(t, svc, "u", 0)
		if user.ID == "" {
			t.Fatal("empty identifier assigned")
		}
		if seen[user.ID] {
			t.Fatalf("duplicate identifier: %s", user.ID)
		}
		seen[user.ID] = true
	}
}

func TestUnknownRoleRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddUser(model.User{Name: "x", Email: "x@example.com", Role: "warlord"})
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestDeleteRoleInUse(t *testing.T) {
	svc, _ := newTestService(t)
	addUser(t, svc, "someone", 0)

	if err := svc.DeleteRole("user"); !errors.Is(err, ErrRoleInUse) {
		t.Errorf("expected ErrRoleInUse, got %v", err)
	}
	if err := svc.DeleteRole("vip"); err != nil {
		t.Errorf("expected unused role to be deletable, got %v", err)
	}
	if err := svc.DeleteRole("ghost"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestPlaceOrderChargesRolePrice(t *testing.T) {
	svc, notes := newTestService(t)

	user := addUser(t, svc, "buyer", 500)
	product := addProduct(t, svc, "Service", map[string]int64{"user": 100})

	order, err := svc.PlaceOrder(user.ID, product.ID, nil, 1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Amount != 100 || order.Status != model.OrderPending {
		t.Errorf("unexpected order: %+v", order)
	}

	got, _ := svc.User(user.ID)
	if got.Credits != 400 {
		t.Errorf("expected 400 credits after order, got %d", got.Credits)
	}

	found := false
	for _, n := range notes.List() {
		if n.Type == model.NotifyOrder {
			found = true
		}
	}
	if !found {
		t.Error("expected an order notification")
	}
}

func TestPlaceOrderInsufficientCredits(t *testing.T) {
	svc, _ := newTestService(t)

	user := addUser(t, svc, "broke", 50)
	product := addProduct(t, svc, "Service", map[string]int64{"user": 100})

	if _, err := svc.PlaceOrder(user.ID, product.ID, nil, 1); !errors.Is(err, ErrInsufficientCredits) {
		t.Errorf("expected ErrInsufficientCredits, got %v", err)
	}

	got, _ := svc.User(user.ID)
	if got.Credits != 50 {
		t.Errorf("credits moved on a failed order: %d", got.Credits)
	}
	orders, _ := svc.Orders()
	if len(orders) != 0 {
		t.Errorf("order recorded despite failure: %d", len(orders))
	}
}

func TestPlaceOrderQuantityMultiplies(t *testing.T) {
	svc, _ := newTestService(t)

	user := addUser(t, svc, "bulk", 1000)
	product := addProduct(t, svc, "Service", map[string]int64{"user": 100})

	order, err := svc.PlaceOrder(user.ID, product.ID, nil, 3)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Amount != 300 {
		t.Errorf("expected amount 300, got %d", order.Amount)
	}
	got, _ := svc.User(user.ID)
	if got.Credits != 700 {
		t.Errorf("expected 700 credits, got %d", got.Credits)
	}
}

func TestPlaceOrderValidatesIMEI(t *testing.T) {
	svc, _ := newTestService(t)

	user := addUser(t, svc, "imei", 1000)
	product, err := svc.AddProduct(model.Product{
		Name:     "Unlock",
		Prices:   map[string]int64{"user": 100},
		Category: model.CategoryIMEI,
	})
	if err != nil {
		t.Fatalf("failed to add product: %v", err)
	}

	bad := []model.CustomField{{Name: "IMEI", Value: "490154203237519"}}
	if _, err := svc.PlaceOrder(user.ID, product.ID, bad, 1); !errors.Is(err, ErrInvalidIMEI) {
		t.Errorf("expected ErrInvalidIMEI, got %v", err)
	}

	good := []model.CustomField{{Name: "IMEI", Value: "490154203237518"}}
	if _, err := svc.PlaceOrder(user.ID, product.ID, good, 1); err != nil {
		t.Errorf("valid IMEI rejected: %v", err)
	}
}

func TestCancelRefundsExactlyOnce(t *testing.T) {
	svc, _ := newTestService(t)

	user := addUser(t, svc, "refund", 500)
	product := addProduct(t, svc, "Service", map[string]int64{"user": 100})

	order, err := svc.PlaceOrder(user.ID, product.ID, nil, 1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	cancelled := model.OrderCancelled
	if _, err := svc.UpdateOrder(order.ID, OrderPatch{Status: &cancelled}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	got, _ := svc.User(user.ID)
	if got.Credits != 500 {
		t.Errorf("expected full refund to 500, got %d", got.Credits)
	}

	// Повторная отмена уже отменённого заказа кредиты не двигает.
	if _, err := svc.UpdateOrder(order.ID, OrderPatch{Status: &cancelled}); err != nil {
		t.Fatalf("repeated cancel failed: %v", err)
	}
	got, _ = svc.User(user.ID)
	if got.Credits != 500 {
		t.Errorf("double refund detected: %d", got.Credits)
	}
}

func TestDeleteOrderRefundsActiveOnly(t *testing.T) {
	svc, _ := newTestService(t)

	user := addUser(t, svc, "del", 500)
	product := addProduct(t, svc, "Service", map[string]int64{"user": 100})

	t.Run("pending order refunds", func(t *testing.T) {
		order, _ := svc.PlaceOrder(user.ID, product.ID, nil, 1)
		if err := svc.DeleteOrder(order.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		got, _ := svc.User(user.ID)
		if got.Credits != 500 {
			t.Errorf("expected refund on deleting a pending order, got %d", got.Credits)
		}
	})

	t.Run("completed order keeps charge", func(t *testing.T) {
		order, _ := svc.PlaceOrder(user.ID, product.ID, nil, 1)
		completed := model.OrderCompleted
		if _, err := svc.UpdateOrder(order.ID, OrderPatch{Status: &completed}); err != nil {
			t.Fatalf("complete failed: %v", err)
		}
		if err := svc.DeleteOrder(order.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		got, _ := svc.User(user.ID)
		if got.Credits != 400 {
			t.Errorf("completed order must not refund, got %d", got.Credits)
		}
	})
}

func TestTopUpApproval(t *testing.T) {
	svc, notes := newTestService(t)

	user := addUser(t, svc, "topup", 100)
	request, err := svc.SubmitTopUp(user.ID, 250, "acc 42", "data:image/png;base64,xxxx")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if request.Status != model.TopUpPending || request.UserName != "topup" {
		t.Errorf("unexpected request: %+v", request)
	}

	approved, err := svc.ApproveTopUp(request.ID, "ok")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != model.TopUpApproved || approved.ProcessedDate == nil {
		t.Errorf("unexpected approved request: %+v", approved)
	}

	got, _ := svc.User(user.ID)
	if got.Credits != 350 {
		t.Errorf("expected 350 credits after approval, got %d", got.Credits)
	}

	found := false
	for _, n := range notes.List() {
		if n.Type == model.NotifyTopUp && n.Title == "TopUp Request Approved" {
			found = true
		}
	}
	if !found {
		t.Error("expected a topup notification")
	}

	// Терминальный статус: повторная обработка отклоняется без зачисления.
	if _, err := svc.ApproveTopUp(request.ID, "again"); !errors.Is(err, ErrRequestProcessed) {
		t.Errorf("expected ErrRequestProcessed, got %v", err)
	}
	got, _ = svc.User(user.ID)
	if got.Credits != 350 {
		t.Errorf("double credit detected: %d", got.Credits)
	}
}

func TestTopUpRejection(t *testing.T) {
	svc, _ := newTestService(t)

	user := addUser(t, svc, "reject", 100)
	request, _ := svc.SubmitTopUp(user.ID, 250, "acc", "proof")

	rejected, err := svc.RejectTopUp(request.ID, "blurry photo")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != model.TopUpRejected || rejected.Notes != "blurry photo" {
		t.Errorf("unexpected rejected request: %+v", rejected)
	}

	got, _ := svc.User(user.ID)
	if got.Credits != 100 {
		t.Errorf("rejection must not move credits, got %d", got.Credits)
	}

	if _, err := svc.ApproveTopUp(request.ID, ""); !errors.Is(err, ErrRequestProcessed) {
		t.Errorf("expected ErrRequestProcessed after rejection, got %v", err)
	}
}

func TestBankDetailsDefaultsAndValidation(t *testing.T) {
	svc, _ := newTestService(t)

	details, err := svc.BankDetails()
	if err != nil {
		t.Fatalf("bank details failed: %v", err)
	}
	if len(details.Banks) == 0 {
		t.Fatal("expected default bank entries")
	}

	details.Banks[0].Account = "not-a-number"
	if _, err := svc.UpdateBankDetails(details); !errors.Is(err, ErrBadBankAccount) {
		t.Errorf("expected ErrBadBankAccount, got %v", err)
	}
}
