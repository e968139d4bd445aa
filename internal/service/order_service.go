package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/messaging"
	"github.com/vinylstore/backend/internal/repository"
)

// OrderService converts purchase requests into persisted, fully resolved
// orders, or rejects them with a typed reason.
type OrderService struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	artists   repository.ArtistRepository
	labels    repository.LabelRepository
	publisher messaging.Publisher
	nowFunc   func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	artists repository.ArtistRepository,
	labels repository.LabelRepository,
	publisher messaging.Publisher,
) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		products:  products,
		artists:   artists,
		labels:    labels,
		publisher: publisher,
		nowFunc:   time.Now,
	}
}

// OrderInput carries the identifiers and quantities of a purchase request.
// ArtistID and LabelID are optional overrides that must match the product's
// own linkage; ResponsibleID is an optional responsible-user reference.
type OrderInput struct {
	CustomerID    int64
	ProductSKU    string
	Quantity      int
	Status        string
	ArtistID      *int64
	LabelID       *int64
	ResponsibleID *int64
}

// Create validates and persists a new order and returns its projection.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*entity.OrderDetail, error) {
	order, detail, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	order.OrderDate = now
	order.UpdatedAt = now

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	detail.Order = *order

	s.publish(ctx, strconv.FormatInt(order.ID, 10), entity.OrderCreated{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductSKU: order.ProductSKU,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		OrderDate:  order.OrderDate,
	})

	slog.Info("Order created", "order_id", order.ID, "customer_id", order.CustomerID, "total_price", order.TotalPrice)
	return detail, nil
}

// Update replaces every field of an existing order after running the same
// resolution pipeline as Create. The original order date is preserved.
func (s *OrderService) Update(ctx context.Context, id int64, in OrderInput) (*entity.OrderDetail, error) {
	existing, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order, detail, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	order.ID = id
	order.OrderDate = existing.OrderDate
	order.UpdatedAt = s.nowFunc()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	detail.Order = *order

	s.publish(ctx, strconv.FormatInt(id, 10), entity.OrderUpdated{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductSKU: order.ProductSKU,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		UpdatedAt:  order.UpdatedAt,
	})

	slog.Info("Order updated", "order_id", order.ID)
	return detail, nil
}

// Delete removes an order. It has no side effects on stock or carts.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, strconv.FormatInt(id, 10), entity.OrderDeleted{OrderID: id})

	slog.Info("Order deleted", "order_id", id)
	return nil
}

// Get returns a single order projection.
func (s *OrderService) Get(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	return s.orders.FindByID(ctx, id)
}

// Filter returns orders matching the conjunction of the supplied filters;
// an empty filter returns all orders.
func (s *OrderService) Filter(ctx context.Context, filter repository.OrderFilter) ([]entity.OrderDetail, error) {
	return s.orders.Find(ctx, filter)
}

// resolve runs the shared Create/Update pipeline: resolve the customer,
// validate the product, resolve artist/label (override or product default),
// check override consistency, resolve the optional responsible user, and
// compute the total. Timestamps and the id are left to the caller.
func (s *OrderService) resolve(ctx context.Context, in OrderInput) (*entity.Order, *entity.OrderDetail, error) {
	if in.Quantity <= 0 {
		return nil, nil, entity.NewDomainError("quantity must be a positive integer")
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, nil, entity.NewDomainError("status must not be blank")
	}

	customer, err := s.users.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, nil, err
	}

	product, err := s.validateProductAvailability(ctx, in.ProductSKU, in.Quantity)
	if err != nil {
		return nil, nil, err
	}

	artistID := product.ArtistID
	if in.ArtistID != nil {
		artistID = *in.ArtistID
	}
	artist, err := s.artists.FindByID(ctx, artistID)
	if err != nil {
		return nil, nil, err
	}
	if artist.ID != product.ArtistID {
		return nil, nil, entity.NewDomainError("artist %d does not match product %s", artist.ID, product.SKU)
	}

	labelID := product.LabelID
	if in.LabelID != nil {
		labelID = *in.LabelID
	}
	label, err := s.labels.FindByID(ctx, labelID)
	if err != nil {
		return nil, nil, err
	}
	if label.ID != product.LabelID {
		return nil, nil, entity.NewDomainError("label %d does not match product %s", label.ID, product.SKU)
	}

	var responsible *entity.User
	if in.ResponsibleID != nil {
		responsible, err = s.users.FindByID(ctx, *in.ResponsibleID)
		if err != nil {
			return nil, nil, err
		}
	}

	order := &entity.Order{
		CustomerID:    customer.ID,
		ProductSKU:    product.SKU,
		ArtistID:      artist.ID,
		LabelID:       label.ID,
		ResponsibleID: in.ResponsibleID,
		Quantity:      in.Quantity,
		TotalPrice:    product.Price * int64(in.Quantity),
		Status:        in.Status,
	}

	detail := &entity.OrderDetail{
		CustomerName: customer.FullName(),
		ProductTitle: product.Title,
		ArtistName:   artist.Name,
		LabelName:    label.Name,
	}
	if responsible != nil {
		detail.ResponsibleName = responsible.FullName()
	}
	return order, detail, nil
}

// validateProductAvailability checks that the product exists, is available,
// and has enough stock. Stock is checked, not decremented: concurrent orders
// can still oversell between check and write.
func (s *OrderService) validateProductAvailability(ctx context.Context, sku string, quantity int) (*entity.Product, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, entity.NewDomainError("product id must not be blank")
	}

	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	if !product.IsAvailable {
		return nil, entity.NewDomainError("product %s is not available", sku)
	}
	if product.StockQuantity < quantity {
		return nil, entity.NewDomainError("insufficient stock for product %s", sku)
	}
	return product, nil
}

// publish sends a domain event best-effort: a broker failure is logged and
// never fails the request.
func (s *OrderService) publish(ctx context.Context, key string, event entity.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, messaging.TopicOrders, key, event); err != nil {
		slog.Error("Failed to publish event", "event", event.EventType(), "key", key, "err", err)
	}
}
