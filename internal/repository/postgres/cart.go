package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a CartRepository backed by Postgres.
func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUser(ctx context.Context, userID int64) (*entity.Cart, error) {
	cart := &entity.Cart{UserID: userID}
	err := r.db.QueryRowContext(ctx, "SELECT cart_id FROM carts WHERE user_id = $1", userID).Scan(&cart.ID)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("cart", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart: %w", err)
	}

	if err := r.loadItems(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) loadItems(ctx context.Context, cart *entity.Cart) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT item_id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY item_id",
		cart.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductSKU, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

// CreateForUser inserts a cart for the user unless one already exists.
// ON CONFLICT DO NOTHING plus the re-read makes concurrent first requests
// for the same user converge on a single cart row.
func (r *cartRepository) CreateForUser(ctx context.Context, userID int64) (*entity.Cart, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart: %w", err)
	}
	return r.FindByUser(ctx, userID)
}

// Save persists the whole aggregate in one transaction: rows absent from
// cart.Items are deleted, existing rows updated, and new rows (zero id)
// inserted with their generated item_id written back.
func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	kept := make([]int64, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ID != 0 {
			kept = append(kept, item.ID)
		}
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_id = $1 AND NOT (item_id = ANY($2))",
		cart.ID, pq.Array(kept),
	)
	if err != nil {
		return fmt.Errorf("failed to prune cart items: %w", err)
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ID == 0 {
			err = tx.QueryRowContext(ctx,
				"INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING item_id",
				cart.ID, item.ProductSKU, item.Quantity,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
			item.CartID = cart.ID
		} else {
			_, err = tx.ExecContext(ctx,
				"UPDATE cart_items SET product_id = $2, quantity = $3 WHERE item_id = $1 AND cart_id = $4",
				item.ID, item.ProductSKU, item.Quantity, cart.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
