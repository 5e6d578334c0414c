package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/cart"
	"github.com/onlineretail/storefront/internal/cart/dto"
	"github.com/onlineretail/storefront/internal/model"
)

type cartUseCase struct {
	repo   cart.Repository
	events *kafka.Writer
	logger *zap.Logger
}

// NewCartUseCase wires the staging and merge pipeline. events may be nil;
// merges then commit without publishing.
func NewCartUseCase(repo cart.Repository, events *kafka.Writer, log *zap.Logger) cart.UseCase {
	return &cartUseCase{
		repo:   repo,
		events: events,
		logger: log,
	}
}

func (uc *cartUseCase) AddToCart(ctx context.Context, ownerID string, input *dto.AddToCartInput) error {
	if input.OwnerID != "" && input.OwnerID != ownerID {
		return fmt.Errorf("%w: batch for %q submitted by %q", apperr.ErrMergeScopeViolation, input.OwnerID, ownerID)
	}

	if err := uc.StageItems(ctx, ownerID, input.Items); err != nil {
		return err
	}

	_, err := uc.MergeStagedToCommitted(ctx, ownerID)
	return err
}

func (uc *cartUseCase) StageItems(ctx context.Context, ownerID string, items []dto.CartItemInput) error {
	if ownerID == "" {
		return fmt.Errorf("%w: empty owner", apperr.ErrMergeScopeViolation)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: empty batch", apperr.ErrInvalidQuantity)
	}

	lines := make([]model.StagedCartLine, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: %d for product %s", apperr.ErrInvalidQuantity, item.Quantity, item.ProductID)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: %f for product %s", apperr.ErrInvalidPrice, item.UnitPrice, item.ProductID)
		}
		lines = append(lines, model.StagedCartLine{
			OwnerID:   ownerID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return uc.repo.StageItems(ctx, ownerID, lines)
}

func (uc *cartUseCase) MergeStagedToCommitted(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("%w: empty owner", apperr.ErrMergeScopeViolation)
	}

	merged, err := uc.repo.MergeStagedToCommitted(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	if merged > 0 {
		go uc.publishCommitted(context.Background(), ownerID, merged)
	}
	return merged, nil
}

func (uc *cartUseCase) FetchCart(ctx context.Context, ownerID string) ([]model.CommittedCartLine, error) {
	return uc.repo.ListCommitted(ctx, ownerID)
}

// publishCommitted announces a committed batch for downstream consumers
// (reporting, fulfilment). The merge is already durable; publish failures are
// logged and never unwind it.
func (uc *cartUseCase) publishCommitted(ctx context.Context, ownerID string, lines int) {
	if uc.events == nil {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"owner_id": ownerID,
		"lines":    lines,
	})
	if err != nil {
		return
	}

	err = uc.events.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ownerID),
		Value: payload,
	})
	if err != nil {
		uc.logger.Warn("failed to publish cart commit event",
			zap.String("owner_id", ownerID), zap.Error(err))
	}
}
