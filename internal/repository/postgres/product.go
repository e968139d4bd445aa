package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

const productColumns = `product_id, title, artist_id, label_id, format_name, format_type, image_url,
	release_year, description, price, stock_quantity, avg_rating, rating_count, is_available, created_at, updated_at`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(scan func(dest ...any) error) (*entity.Product, error) {
	var p entity.Product
	err := scan(&p.SKU, &p.Title, &p.ArtistID, &p.LabelID, &p.FormatName, &p.FormatType, &p.ImageURL,
		&p.ReleaseYear, &p.Description, &p.Price, &p.StockQuantity, &p.AvgRating, &p.RatingCount,
		&p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE product_id = $1", sku)
	p, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, entity.NewNotFound("product", sku)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}

func (r *productRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)", sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product sku: %w", err)
	}
	return exists, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products ORDER BY title")
}

func (r *productRepository) FindAvailable(ctx context.Context) ([]entity.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products WHERE is_available ORDER BY title")
}

func (r *productRepository) FindByArtist(ctx context.Context, artistID int64) ([]entity.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products WHERE artist_id = $1 ORDER BY title", artistID)
}

func (r *productRepository) FindByFormatType(ctx context.Context, formatType string) ([]entity.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products WHERE format_type = $1 ORDER BY title", formatType)
}

func (r *productRepository) SearchByTitle(ctx context.Context, title string) ([]entity.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products WHERE title ILIKE '%' || $1 || '%' ORDER BY title", title)
}

func (r *productRepository) SearchByArtistName(ctx context.Context, artistName string) ([]entity.Product, error) {
	return r.query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE artist_id IN (SELECT artist_id FROM artists WHERE artist_name ILIKE '%' || $1 || '%')
		 ORDER BY title`, artistName)
}

func (r *productRepository) query(ctx context.Context, q string, args ...any) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (product_id, title, artist_id, label_id, format_name, format_type, image_url,
			release_year, description, price, stock_quantity, avg_rating, rating_count, is_available, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		product.SKU, product.Title, product.ArtistID, product.LabelID, product.FormatName, product.FormatType,
		product.ImageURL, product.ReleaseYear, product.Description, product.Price, product.StockQuantity,
		product.AvgRating, product.RatingCount, product.IsAvailable, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET title = $2, artist_id = $3, label_id = $4, format_name = $5, format_type = $6,
			image_url = $7, release_year = $8, description = $9, price = $10, stock_quantity = $11,
			avg_rating = $12, rating_count = $13, is_available = $14, updated_at = $15
		 WHERE product_id = $1`,
		product.SKU, product.Title, product.ArtistID, product.LabelID, product.FormatName, product.FormatType,
		product.ImageURL, product.ReleaseYear, product.Description, product.Price, product.StockQuantity,
		product.AvgRating, product.RatingCount, product.IsAvailable, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireAffected(res, "product", product.SKU)
}

func (r *productRepository) Delete(ctx context.Context, sku string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE product_id = $1", sku)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireAffected(res, "product", sku)
}
