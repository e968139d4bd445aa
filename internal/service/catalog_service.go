package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
)

// CatalogService manages artists, labels, and products. Orders and carts only
// read from it; the write paths enforce uniqueness of names and SKUs.
type CatalogService struct {
	artists  repository.ArtistRepository
	labels   repository.LabelRepository
	products repository.ProductRepository
	nowFunc  func() time.Time
}

func NewCatalogService(
	artists repository.ArtistRepository,
	labels repository.LabelRepository,
	products repository.ProductRepository,
) *CatalogService {
	return &CatalogService{
		artists:  artists,
		labels:   labels,
		products: products,
		nowFunc:  time.Now,
	}
}

// --- Artists ---

func (s *CatalogService) ListArtists(ctx context.Context) ([]entity.Artist, error) {
	return s.artists.FindAll(ctx)
}

func (s *CatalogService) GetArtist(ctx context.Context, id int64) (*entity.Artist, error) {
	return s.artists.FindByID(ctx, id)
}

func (s *CatalogService) GetArtistByName(ctx context.Context, name string) (*entity.Artist, error) {
	return s.artists.FindByName(ctx, name)
}

func (s *CatalogService) SearchArtists(ctx context.Context, name string) ([]entity.Artist, error) {
	return s.artists.SearchByName(ctx, name)
}

func (s *CatalogService) CreateArtist(ctx context.Context, name string) (*entity.Artist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, entity.NewDomainError("artist name is required")
	}
	exists, err := s.artists.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.NewDomainError("artist already exists: %s", name)
	}

	artist := &entity.Artist{Name: name}
	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, err
	}
	slog.Info("Artist created", "artist_id", artist.ID, "name", artist.Name)
	return artist, nil
}

func (s *CatalogService) UpdateArtist(ctx context.Context, id int64, name string) (*entity.Artist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, entity.NewDomainError("artist name is required")
	}
	existing, err := s.artists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Name != name {
		exists, err := s.artists.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, entity.NewDomainError("artist already exists: %s", name)
		}
	}

	existing.Name = name
	if err := s.artists.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CatalogService) DeleteArtist(ctx context.Context, id int64) error {
	if _, err := s.artists.FindByID(ctx, id); err != nil {
		return err
	}
	return s.artists.Delete(ctx, id)
}

// --- Labels ---

func (s *CatalogService) ListLabels(ctx context.Context) ([]entity.Label, error) {
	return s.labels.FindAll(ctx)
}

func (s *CatalogService) GetLabel(ctx context.Context, id int64) (*entity.Label, error) {
	return s.labels.FindByID(ctx, id)
}

func (s *CatalogService) GetLabelByName(ctx context.Context, name string) (*entity.Label, error) {
	return s.labels.FindByName(ctx, name)
}

func (s *CatalogService) CreateLabel(ctx context.Context, name string) (*entity.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, entity.NewDomainError("label name is required")
	}
	exists, err := s.labels.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.NewDomainError("label already exists: %s", name)
	}

	label := &entity.Label{Name: name}
	if err := s.labels.Create(ctx, label); err != nil {
		return nil, err
	}
	slog.Info("Label created", "label_id", label.ID, "name", label.Name)
	return label, nil
}

func (s *CatalogService) UpdateLabel(ctx context.Context, id int64, name string) (*entity.Label, error) {
	if strings.TrimSpace(name) == "" {
		return nil, entity.NewDomainError("label name is required")
	}
	existing, err := s.labels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Name != name {
		exists, err := s.labels.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, entity.NewDomainError("label already exists: %s", name)
		}
	}

	existing.Name = name
	if err := s.labels.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CatalogService) DeleteLabel(ctx context.Context, id int64) error {
	if _, err := s.labels.FindByID(ctx, id); err != nil {
		return err
	}
	return s.labels.Delete(ctx, id)
}

// --- Products ---

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *CatalogService) AvailableProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products.FindAvailable(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, sku string) (*entity.Product, error) {
	return s.products.FindBySKU(ctx, sku)
}

func (s *CatalogService) ProductsByArtist(ctx context.Context, artistID int64) ([]entity.Product, error) {
	return s.products.FindByArtist(ctx, artistID)
}

func (s *CatalogService) ProductsByFormat(ctx context.Context, formatType string) ([]entity.Product, error) {
	return s.products.FindByFormatType(ctx, formatType)
}

func (s *CatalogService) SearchProductsByTitle(ctx context.Context, title string) ([]entity.Product, error) {
	return s.products.SearchByTitle(ctx, title)
}

func (s *CatalogService) SearchProductsByArtistName(ctx context.Context, artistName string) ([]entity.Product, error) {
	return s.products.SearchByArtistName(ctx, artistName)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if err := s.validateProduct(ctx, product); err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.NewDomainError("product already exists: %s", product.SKU)
	}

	now := s.nowFunc()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	slog.Info("Product created", "product_id", product.SKU, "title", product.Title)
	return product, nil
}

// UpdateProduct replaces every mutable field of the product. The SKU is the
// product's identity and cannot change.
func (s *CatalogService) UpdateProduct(ctx context.Context, sku string, product *entity.Product) (*entity.Product, error) {
	existing, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	if product.SKU != "" && product.SKU != sku {
		return nil, entity.NewDomainError("product id cannot be changed")
	}
	product.SKU = sku
	if err := s.validateProduct(ctx, product); err != nil {
		return nil, err
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = s.nowFunc()
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sku string) error {
	if _, err := s.products.FindBySKU(ctx, sku); err != nil {
		return err
	}
	return s.products.Delete(ctx, sku)
}

func (s *CatalogService) validateProduct(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return entity.NewDomainError("product payload is required")
	}
	if strings.TrimSpace(product.SKU) == "" {
		return entity.NewDomainError("product id is required")
	}
	if strings.TrimSpace(product.Title) == "" {
		return entity.NewDomainError("product title is required")
	}
	if product.Price <= 0 {
		return entity.NewDomainError("product price must be positive")
	}
	if product.StockQuantity < 0 {
		return entity.NewDomainError("stock quantity must not be negative")
	}

	// Referenced artist and label must exist.
	if _, err := s.artists.FindByID(ctx, product.ArtistID); err != nil {
		return err
	}
	if _, err := s.labels.FindByID(ctx, product.LabelID); err != nil {
		return err
	}
	return nil
}
