package entity

import "time"

// Event is a domain event published to the message broker.
type Event interface {
	EventType() string
}

// OrderCreated is emitted after a new order is persisted.
type OrderCreated struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	ProductSKU string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	OrderDate  time.Time `json:"order_date"`
}

func (e OrderCreated) EventType() string { return "OrderCreated" }

// OrderUpdated is emitted after an order is replaced wholesale.
type OrderUpdated struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	ProductSKU string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e OrderUpdated) EventType() string { return "OrderUpdated" }

// OrderDeleted is emitted after an order is removed.
type OrderDeleted struct {
	OrderID int64 `json:"order_id"`
}

func (e OrderDeleted) EventType() string { return "OrderDeleted" }

// CartItemAdded is emitted when a product lands in a user's cart, whether as
// a new line or merged into an existing one.
type CartItemAdded struct {
	CartID     int64  `json:"cart_id"`
	UserID     int64  `json:"user_id"`
	ProductSKU string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

func (e CartItemAdded) EventType() string { return "CartItemAdded" }

// CartItemRemoved is emitted when a line leaves a user's cart.
type CartItemRemoved struct {
	CartID int64 `json:"cart_id"`
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
}

func (e CartItemRemoved) EventType() string { return "CartItemRemoved" }

// CartCleared is emitted when a cart is emptied in one call.
type CartCleared struct {
	CartID int64 `json:"cart_id"`
	UserID int64 `json:"user_id"`
}

func (e CartCleared) EventType() string { return "CartCleared" }
