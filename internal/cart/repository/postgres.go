package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// StageItems inserts the whole batch in one transaction, every row tagged
// with ownerID regardless of what the line carries.
func (r *PGRepository) StageItems(ctx context.Context, ownerID string, lines []model.StagedCartLine) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", apperr.ErrAtomicUnitAborted, err)
	}
	defer tx.Rollback()

	for _, line := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO online_retail.cart_staging
				(owner_id, product_id, product_name, quantity, product_price)
			VALUES ($1, $2, $3, $4, $5)
		`, ownerID, line.ProductID, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			return fmt.Errorf("%w: stage %s: %v", apperr.ErrAtomicUnitAborted, line.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperr.ErrAtomicUnitAborted, err)
	}
	return nil
}

// MergeStagedToCommitted copies ownerID's staged lines into the committed
// ledger and drains exactly those lines, all inside one transaction. Other
// owners' staged rows are untouched. With nothing staged the merge commits
// zero rows and reports no error, which makes retries safe.
func (r *PGRepository) MergeStagedToCommitted(ctx context.Context, ownerID string) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", apperr.ErrAtomicUnitAborted, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO online_retail.cart_committed
			(owner_id, product_id, product_name, quantity, product_price, inserted_at)
		SELECT owner_id, product_id, product_name, quantity, product_price, NOW()
		FROM online_retail.cart_staging
		WHERE owner_id = $1
	`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: merge insert: %v", apperr.ErrAtomicUnitAborted, err)
	}
	merged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: merge rows: %v", apperr.ErrAtomicUnitAborted, err)
	}

	res, err = tx.ExecContext(ctx,
		`DELETE FROM online_retail.cart_staging WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: drain staging: %v", apperr.ErrAtomicUnitAborted, err)
	}
	drained, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: drain rows: %v", apperr.ErrAtomicUnitAborted, err)
	}

	// The drain must consume exactly what the insert copied. A mismatch means
	// the owner scope was breached mid-merge; abort rather than commit.
	if merged != drained {
		return 0, fmt.Errorf("%w: committed %d lines but drained %d", apperr.ErrMergeScopeViolation, merged, drained)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", apperr.ErrAtomicUnitAborted, err)
	}
	return int(merged), nil
}

func (r *PGRepository) ListStaged(ctx context.Context, ownerID string) ([]model.StagedCartLine, error) {
	var lines []model.StagedCartLine
	err := r.DB.SelectContext(ctx, &lines, `
		SELECT owner_id, product_id, product_name, quantity, product_price
		FROM online_retail.cart_staging
		WHERE owner_id = $1
	`, ownerID)
	return lines, err
}

func (r *PGRepository) ListCommitted(ctx context.Context, ownerID string) ([]model.CommittedCartLine, error) {
	var lines []model.CommittedCartLine
	err := r.DB.SelectContext(ctx, &lines, `
		SELECT owner_id, product_id, product_name, quantity, product_price, inserted_at
		FROM online_retail.cart_committed
		WHERE owner_id = $1
		ORDER BY inserted_at DESC
	`, ownerID)
	return lines, err
}
