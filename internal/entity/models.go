package entity

import (
	"time"
)

// Artist is a catalog reference entity. Artists are shared read-mostly data
// owned by catalog management; orders and products reference them by id.
type Artist struct {
	ID   int64  `json:"artist_id"`
	Name string `json:"artist_name"`
}

// Label is a record label, referenced the same way as Artist.
type Label struct {
	ID   int64  `json:"label_id"`
	Name string `json:"label_name"`
}

// Product is a catalog record identified by its SKU.
// Price is expressed in minor currency units.
type Product struct {
	SKU           string    `json:"product_id"`
	Title         string    `json:"title"`
	ArtistID      int64     `json:"artist_id"`
	LabelID       int64     `json:"label_id"`
	FormatName    string    `json:"format_name"`
	FormatType    string    `json:"format_type"`
	ImageURL      string    `json:"image_url"`
	ReleaseYear   int       `json:"release_year,omitempty"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	AvgRating     float64   `json:"avg_rating"`
	RatingCount   int       `json:"rating_count"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// User is a directory entry. The same entity serves as a customer and as the
// responsible party on orders. RUT and email are unique natural keys.
type User struct {
	ID           int64  `json:"user_id"`
	RUT          string `json:"rut"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone,omitempty"`
	Age          int    `json:"age,omitempty"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
	PasswordHash string `json:"-"`
}

// FullName returns the display name used in order projections.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Order is a purchase of a single product. TotalPrice is computed as
// product price times quantity at write time and never recomputed.
type Order struct {
	ID            int64     `json:"order_id"`
	CustomerID    int64     `json:"customer_id"`
	ProductSKU    string    `json:"product_id"`
	ArtistID      int64     `json:"artist_id"`
	LabelID       int64     `json:"label_id"`
	ResponsibleID *int64    `json:"responsible_user_id,omitempty"`
	Quantity      int       `json:"quantity"`
	TotalPrice    int64     `json:"total_price"`
	Status        string    `json:"status"`
	OrderDate     time.Time `json:"order_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderDetail is the order projection handed to the presentation layer,
// with display names resolved for every referenced entity.
// ResponsibleName is empty when no responsible user is set.
type OrderDetail struct {
	Order
	CustomerName    string `json:"customer_name"`
	ProductTitle    string `json:"product_title"`
	ArtistName      string `json:"artist_name"`
	LabelName       string `json:"label_name"`
	ResponsibleName string `json:"responsible_name,omitempty"`
}

// Cart is the per-user shopping cart aggregate. At most one cart exists per
// user; its items are owned exclusively by the cart and deleted with it.
type Cart struct {
	ID     int64      `json:"cart_id"`
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem is a single line in a cart. Lines are merged by SKU when the same
// product is added again.
type CartItem struct {
	ID         int64  `json:"item_id"`
	CartID     int64  `json:"cart_id"`
	ProductSKU string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}
