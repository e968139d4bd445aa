package validation

// OrderRequest is the payload for POST /api/orders and PUT /api/orders/:id.
// ArtistID and LabelID are optional overrides; when present they must match
// the product's own linkage, which the order service enforces.
type OrderRequest struct {
	CustomerID        int64  `json:"customer_id" validate:"required,gt=0"`
	ProductID         string `json:"product_id" validate:"required"`
	Quantity          int    `json:"quantity" validate:"required,gt=0"`
	Status            string `json:"status" validate:"required"`
	ArtistID          *int64 `json:"artist_id,omitempty" validate:"omitempty,gt=0"`
	LabelID           *int64 `json:"label_id,omitempty" validate:"omitempty,gt=0"`
	ResponsibleUserID *int64 `json:"responsible_user_id,omitempty" validate:"omitempty,gt=0"`
}

// AddCartItemRequest is the payload for POST /api/users/:id/cart/items.
// Quantity is not floor-checked here; cart additions defer catalog and
// quantity validation to order placement.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

// UpdateCartItemRequest is the payload for PUT /api/users/:id/cart/items/:itemID.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// NameRequest is the payload for artist and label writes.
type NameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProductRequest is the payload for product writes.
type ProductRequest struct {
	ProductID     string  `json:"product_id" validate:"required"`
	Title         string  `json:"title" validate:"required"`
	ArtistID      int64   `json:"artist_id" validate:"required,gt=0"`
	LabelID       int64   `json:"label_id" validate:"required,gt=0"`
	FormatName    string  `json:"format_name" validate:"required"`
	FormatType    string  `json:"format_type" validate:"required"`
	ImageURL      string  `json:"image_url"`
	ReleaseYear   int     `json:"release_year" validate:"omitempty,gte=0"`
	Description   string  `json:"description"`
	Price         int64   `json:"price" validate:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	AvgRating     float64 `json:"avg_rating" validate:"gte=0,lte=5"`
	RatingCount   int     `json:"rating_count" validate:"gte=0"`
	IsAvailable   *bool   `json:"is_available"`
}

// UserRequest is the payload for user writes. PasswordHash is required on
// create only; the user service enforces that.
type UserRequest struct {
	RUT          string `json:"rut" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Phone        string `json:"phone"`
	Age          int    `json:"age" validate:"gte=0"`
	Role         string `json:"role" validate:"required,oneof=USER ADMIN"`
	IsActive     *bool  `json:"is_active"`
	PasswordHash string `json:"password_hash"`
}
