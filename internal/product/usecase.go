package product

import (
	"context"

	"github.com/onlineretail/storefront/internal/model"
	"github.com/onlineretail/storefront/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) error
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) error
	DeleteProduct(ctx context.Context, productID string) error

	GetProduct(ctx context.Context, productID string) (*model.CatalogItem, error)
	ListAvailableProducts(ctx context.Context) ([]model.CatalogItem, error)
	ListCatalog(ctx context.Context) ([]model.CatalogItem, error)
}
