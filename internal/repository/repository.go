package repository

import (
	"context"
	"time"

	"github.com/vinylstore/backend/internal/entity"
)

// UserRepository handles persistence for the user directory.
// Find methods return a NotFoundError when no row matches.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByRUT(ctx context.Context, rut string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRUT(ctx context.Context, rut string) (bool, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

// ArtistRepository handles persistence for Artists.
type ArtistRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Artist, error)
	FindByName(ctx context.Context, name string) (*entity.Artist, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	SearchByName(ctx context.Context, name string) ([]entity.Artist, error)
	FindAll(ctx context.Context) ([]entity.Artist, error)
	Create(ctx context.Context, artist *entity.Artist) error
	Update(ctx context.Context, artist *entity.Artist) error
	Delete(ctx context.Context, id int64) error
}

// LabelRepository handles persistence for Labels.
type LabelRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Label, error)
	FindByName(ctx context.Context, name string) (*entity.Label, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]entity.Label, error)
	Create(ctx context.Context, label *entity.Label) error
	Update(ctx context.Context, label *entity.Label) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository handles persistence for Products, keyed by SKU.
type ProductRepository interface {
	FindBySKU(ctx context.Context, sku string) (*entity.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindAvailable(ctx context.Context) ([]entity.Product, error)
	FindByArtist(ctx context.Context, artistID int64) ([]entity.Product, error)
	FindByFormatType(ctx context.Context, formatType string) ([]entity.Product, error)
	SearchByTitle(ctx context.Context, title string) ([]entity.Product, error)
	SearchByArtistName(ctx context.Context, artistName string) ([]entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, sku string) error
}

// OrderFilter narrows Find results. Nil fields are ignored; all non-nil
// fields must hold at once. An empty filter matches every order.
type OrderFilter struct {
	Start         *time.Time
	End           *time.Time
	Status        *string
	ResponsibleID *int64
}

// OrderRepository handles persistence for Orders. Reads return the projection
// with display names already joined in.
type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.OrderDetail, error)
	Find(ctx context.Context, filter OrderFilter) ([]entity.OrderDetail, error)
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
}

// CartRepository handles persistence for the cart aggregate and its items.
type CartRepository interface {
	FindByUser(ctx context.Context, userID int64) (*entity.Cart, error)
	// CreateForUser inserts a cart for the user if none exists and returns
	// the surviving cart either way, so concurrent first requests converge.
	CreateForUser(ctx context.Context, userID int64) (*entity.Cart, error)
	// Save persists the whole aggregate: kept items are updated, new items
	// inserted with their generated ids backfilled, missing items deleted.
	Save(ctx context.Context, cart *entity.Cart) error
}
