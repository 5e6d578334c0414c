package cart

import (
	"context"

	"github.com/onlineretail/storefront/internal/cart/dto"
	"github.com/onlineretail/storefront/internal/model"
)

type UseCase interface {
	// AddToCart stages the batch for ownerID and immediately merges it into
	// the committed ledger. Retrying after an ambiguous failure is safe.
	AddToCart(ctx context.Context, ownerID string, input *dto.AddToCartInput) error

	StageItems(ctx context.Context, ownerID string, items []dto.CartItemInput) error
	MergeStagedToCommitted(ctx context.Context, ownerID string) (int, error)

	FetchCart(ctx context.Context, ownerID string) ([]model.CommittedCartLine, error)
}
