package cart

import (
	"context"

	"github.com/onlineretail/storefront/internal/model"
)

// Repository owns both cart tables. It is the sole writer of the committed
// ledger; every mutating method is owner-scoped and atomic.
type Repository interface {
	// StageItems writes the batch as one unit: all lines persist or none do.
	StageItems(ctx context.Context, ownerID string, lines []model.StagedCartLine) error

	// MergeStagedToCommitted moves exactly ownerID's staged lines into the
	// committed ledger and drains them from staging, in one transaction.
	// Merging with nothing staged is a successful no-op. Returns the number
	// of lines committed.
	MergeStagedToCommitted(ctx context.Context, ownerID string) (int, error)

	ListStaged(ctx context.Context, ownerID string) ([]model.StagedCartLine, error)
	ListCommitted(ctx context.Context, ownerID string) ([]model.CommittedCartLine, error)
}
