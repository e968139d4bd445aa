package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/messaging"
	"github.com/vinylstore/backend/internal/repository"
)

// CartService maintains one active cart per user and its line items.
// Repeated additions of the same SKU merge into a single line.
type CartService struct {
	carts     repository.CartRepository
	users     repository.UserRepository
	publisher messaging.Publisher
}

func NewCartService(carts repository.CartRepository, users repository.UserRepository, publisher messaging.Publisher) *CartService {
	return &CartService{
		carts:     carts,
		users:     users,
		publisher: publisher,
	}
}

// GetOrCreate resolves the user's cart, creating an empty one on first
// access. An unresolvable user id is a NotFound error.
func (s *CartService) GetOrCreate(ctx context.Context, userID int64) (*entity.Cart, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !entity.IsNotFound(err) {
		return nil, err
	}
	return s.carts.CreateForUser(ctx, userID)
}

// AddItem puts quantity units of the product into the user's cart, merging
// with an existing line for the same SKU. Quantity and SKU are not validated
// against the catalog here; order placement does that.
func (s *CartService) AddItem(ctx context.Context, userID int64, sku string, quantity int) (*entity.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductSKU == sku {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, entity.CartItem{
			CartID:     cart.ID,
			ProductSKU: sku,
			Quantity:   quantity,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publish(ctx, cart, entity.CartItemAdded{
		CartID:     cart.ID,
		UserID:     userID,
		ProductSKU: sku,
		Quantity:   quantity,
	})

	slog.Info("Cart item added", "cart_id", cart.ID, "user_id", userID, "product_id", sku, "merged", merged)
	return cart, nil
}

// UpdateItemQuantity overwrites the quantity of the line identified by its
// item id. A missing item is a NotFound error.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*entity.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, entity.NewNotFound("cart item", itemID)
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line identified by its item id. Removing an absent
// item is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (*entity.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	if removed {
		s.publish(ctx, cart, entity.CartItemRemoved{CartID: cart.ID, UserID: userID, ItemID: itemID})
	}
	return cart, nil
}

// Clear empties the cart's item collection.
func (s *CartService) Clear(ctx context.Context, userID int64) (*entity.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = nil
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publish(ctx, cart, entity.CartCleared{CartID: cart.ID, UserID: userID})

	slog.Info("Cart cleared", "cart_id", cart.ID, "user_id", userID)
	return cart, nil
}

func (s *CartService) publish(ctx context.Context, cart *entity.Cart, event entity.Event) {
	if s.publisher == nil {
		return
	}
	key := strconv.FormatInt(cart.ID, 10)
	if err := s.publisher.PublishEvent(ctx, messaging.TopicCarts, key, event); err != nil {
		slog.Error("Failed to publish event", "event", event.EventType(), "cart_id", cart.ID, "err", err)
	}
}
