package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/model"
	"github.com/onlineretail/storefront/internal/product"
	"github.com/onlineretail/storefront/internal/product/dto"
)

const (
	availableCacheKey = "products:available"
	availableCacheTTL = 5 * time.Minute
)

type productUseCase struct {
	repo   product.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewProductUseCase wires the inventory consistency manager. cache may be nil;
// listing then always hits the store.
func NewProductUseCase(repo product.Repository, cache *redis.Client, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) error {
	if input.InitialQuantity < 0 {
		return fmt.Errorf("%w: initial quantity %d", apperr.ErrInvalidQuantity, input.InitialQuantity)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: %f", apperr.ErrInvalidPrice, input.Price)
	}

	p := &model.Product{
		ID:          input.ID,
		Type:        input.Type,
		Name:        input.Name,
		Description: input.Description,
		Keywords:    input.Keywords,
		Price:       input.Price,
		Image:       input.Image,
	}

	if err := uc.repo.CreatePair(ctx, p, input.InitialQuantity); err != nil {
		return err
	}

	go uc.invalidateAvailableCache(context.Background())
	return nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) error {
	// Reject before any write touches the store.
	if input.Quantity < 0 {
		return fmt.Errorf("%w: quantity %d", apperr.ErrInvalidQuantity, input.Quantity)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: %f", apperr.ErrInvalidPrice, input.Price)
	}

	if err := uc.repo.UpdatePair(ctx, input); err != nil {
		return err
	}

	go uc.invalidateAvailableCache(context.Background())
	return nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, productID string) error {
	if err := uc.repo.DeletePair(ctx, productID); err != nil {
		return err
	}

	go uc.invalidateAvailableCache(context.Background())
	return nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, productID string) (*model.CatalogItem, error) {
	return uc.repo.Get(ctx, productID)
}

func (uc *productUseCase) ListAvailableProducts(ctx context.Context) ([]model.CatalogItem, error) {
	if uc.cache != nil {
		val, err := uc.cache.Get(ctx, availableCacheKey).Result()
		if err == nil {
			var items []model.CatalogItem
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := uc.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			uc.cache.Set(ctx, availableCacheKey, data, availableCacheTTL)
		}
	}

	return items, nil
}

func (uc *productUseCase) ListCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	return uc.repo.ListCatalog(ctx)
}

func (uc *productUseCase) invalidateAvailableCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Del(ctx, availableCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
