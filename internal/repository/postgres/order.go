package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

const orderSelect = `
	SELECT o.order_id, o.customer_id, o.product_id, o.artist_id, o.label_id, o.responsible_user_id,
		o.quantity, o.total_price, o.status, o.order_date, o.updated_at,
		c.first_name || ' ' || c.last_name,
		p.title, a.artist_name, l.label_name,
		COALESCE(r.first_name || ' ' || r.last_name, '')
	FROM orders o
	JOIN users c ON c.user_id = o.customer_id
	JOIN products p ON p.product_id = o.product_id
	JOIN artists a ON a.artist_id = o.artist_id
	JOIN labels l ON l.label_id = o.label_id
	LEFT JOIN users r ON r.user_id = o.responsible_user_id`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates an OrderRepository backed by Postgres.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func scanOrderDetail(scan func(dest ...any) error) (*entity.OrderDetail, error) {
	var d entity.OrderDetail
	var responsible sql.NullInt64
	err := scan(&d.ID, &d.CustomerID, &d.ProductSKU, &d.ArtistID, &d.LabelID, &responsible,
		&d.Quantity, &d.TotalPrice, &d.Status, &d.OrderDate, &d.UpdatedAt,
		&d.CustomerName, &d.ProductTitle, &d.ArtistName, &d.LabelName, &d.ResponsibleName)
	if err != nil {
		return nil, err
	}
	if responsible.Valid {
		d.ResponsibleID = &responsible.Int64
	} else {
		d.ResponsibleName = ""
	}
	return &d, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	row := r.db.QueryRowContext(ctx, orderSelect+" WHERE o.order_id = $1", id)
	d, err := scanOrderDetail(row.Scan)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return d, nil
}

// Find returns orders matching the conjunction of the supplied filters.
// An empty filter returns every order.
func (r *orderRepository) Find(ctx context.Context, filter repository.OrderFilter) ([]entity.OrderDetail, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Start != nil {
		conds = append(conds, "o.order_date >= "+arg(*filter.Start))
	}
	if filter.End != nil {
		conds = append(conds, "o.order_date <= "+arg(*filter.End))
	}
	if filter.Status != nil {
		conds = append(conds, "o.status = "+arg(*filter.Status))
	}
	if filter.ResponsibleID != nil {
		conds = append(conds, "o.responsible_user_id = "+arg(*filter.ResponsibleID))
	}

	query := orderSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY o.order_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.OrderDetail
	for rows.Next() {
		d, err := scanOrderDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *d)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, product_id, artist_id, label_id, responsible_user_id,
			quantity, total_price, status, order_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING order_id`,
		order.CustomerID, order.ProductSKU, order.ArtistID, order.LabelID, order.ResponsibleID,
		order.Quantity, order.TotalPrice, order.Status, order.OrderDate, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET customer_id = $2, product_id = $3, artist_id = $4, label_id = $5,
			responsible_user_id = $6, quantity = $7, total_price = $8, status = $9, updated_at = $10
		 WHERE order_id = $1`,
		order.ID, order.CustomerID, order.ProductSKU, order.ArtistID, order.LabelID,
		order.ResponsibleID, order.Quantity, order.TotalPrice, order.Status, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return requireAffected(res, "order", order.ID)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE order_id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return requireAffected(res, "order", id)
}
