package product

import (
	"context"

	"github.com/onlineretail/storefront/internal/model"
	"github.com/onlineretail/storefront/internal/product/dto"
)

// Repository persists the Product/InventoryRecord pair. Every write method is
// one atomic unit: both tables change or neither does.
type Repository interface {
	CreatePair(ctx context.Context, p *model.Product, initialQuantity int) error
	UpdatePair(ctx context.Context, changes *dto.UpdateProductInput) error
	DeletePair(ctx context.Context, productID string) error

	Get(ctx context.Context, productID string) (*model.CatalogItem, error)
	ListAvailable(ctx context.Context) ([]model.CatalogItem, error)
	ListCatalog(ctx context.Context) ([]model.CatalogItem, error)
}
