package service

import (
	"context"
	"testing"

	"github.com/vinylstore/backend/internal/entity"
)

func newCartFixture(t *testing.T) (*CartService, *capturePublisher) {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	u := entity.User{RUT: "11111111-1", Email: "juan@example.com", FirstName: "Juan", LastName: "Pérez", Role: "USER", IsActive: true}
	if err := users.Create(ctx, &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	pub := &capturePublisher{}
	return NewCartService(newFakeCartRepo(), users, pub), pub
}

func TestGetOrCreateCart(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if first.UserID != 1 {
		t.Errorf("user id = %d, want 1", first.UserID)
	}
	if len(first.Items) != 0 {
		t.Errorf("new cart has %d items, want 0", len(first.Items))
	}

	second, err := svc.GetOrCreate(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("cart id changed across calls: %d != %d", second.ID, first.ID)
	}
}

func TestGetOrCreateCartMissingUser(t *testing.T) {
	svc, _ := newCartFixture(t)

	if _, err := svc.GetOrCreate(context.Background(), 99); !entity.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestAddItemMergesBySKU(t *testing.T) {
	svc, pub := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 3)
	if err != nil {
		t.Fatalf("AddItem again: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", cart.Items[0].Quantity)
	}
	if len(pub.events) != 2 {
		t.Errorf("published %d events, want 2", len(pub.events))
	}
}

func TestAddItemDistinctSKUs(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.AddItem(ctx, 1, "dark-side-vinilo", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(cart.Items) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(cart.Items))
	}
	for _, item := range cart.Items {
		if item.ID == 0 {
			t.Errorf("item %q has no id after save", item.ProductSKU)
		}
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	updated, err := svc.UpdateItemQuantity(ctx, 1, cart.Items[0].ID, 7)
	if err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if updated.Items[0].Quantity != 7 {
		t.Errorf("quantity = %d, want 7", updated.Items[0].Quantity)
	}

	if _, err := svc.UpdateItemQuantity(ctx, 1, 999, 1); !entity.IsNotFound(err) {
		t.Errorf("absent item: got %v, want not found", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	after, err := svc.RemoveItem(ctx, 1, cart.Items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(after.Items) != 0 {
		t.Errorf("cart has %d lines after remove, want 0", len(after.Items))
	}
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.RemoveItem(ctx, 1, 999)
	if err != nil {
		t.Fatalf("RemoveItem absent: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart has %d lines, want 1 untouched", len(cart.Items))
	}
}

func TestClearCart(t *testing.T) {
	svc, pub := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, 1, "dark-side-vinilo", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	cart, err := svc.Clear(ctx, 1)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart has %d lines after clear, want 0", len(cart.Items))
	}

	last := pub.events[len(pub.events)-1]
	if last.EventType() != "CartCleared" {
		t.Errorf("last event = %q, want CartCleared", last.EventType())
	}
}

func TestCartAddAddRemoveScenario(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.AddItem(ctx, 1, "abbey-road-vinilo", 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart = %+v, want one line of 2", cart.Items)
	}

	cart, err = svc.RemoveItem(ctx, 1, cart.Items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart has %d lines, want empty", len(cart.Items))
	}
}
