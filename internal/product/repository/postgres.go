package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/onlineretail/storefront/internal/apperr"
	"github.com/onlineretail/storefront/internal/model"
	"github.com/onlineretail/storefront/internal/product/dto"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// CreatePair inserts the product row and its inventory row in one transaction.
// A uniqueness violation on product_info surfaces as ErrDuplicateProductID
// with nothing persisted; any later failure rolls the product insert back too.
func (r *PGRepository) CreatePair(ctx context.Context, p *model.Product, initialQuantity int) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", apperr.ErrAtomicUnitAborted, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO online_retail.product_info
			(product_id, product_type, product_name, product_desc, product_keywords, product_price, product_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Type, p.Name, p.Description, p.Keywords, p.Price, p.Image)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: %s", apperr.ErrDuplicateProductID, p.ID)
		}
		return fmt.Errorf("%w: insert product: %v", apperr.ErrAtomicUnitAborted, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO online_retail.inventory_info (product_id, product_quantity)
		VALUES ($1, $2)
	`, p.ID, initialQuantity)
	if err != nil {
		return fmt.Errorf("%w: insert inventory: %v", apperr.ErrAtomicUnitAborted, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperr.ErrAtomicUnitAborted, err)
	}
	return nil
}

// UpdatePair applies price/description and quantity together. A missing pair
// is ErrProductNotFound and nothing is written.
func (r *PGRepository) UpdatePair(ctx context.Context, changes *dto.UpdateProductInput) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", apperr.ErrAtomicUnitAborted, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE online_retail.product_info
		SET product_price = $1, product_desc = $2
		WHERE product_id = $3
	`, changes.Price, changes.Description, changes.ID)
	if err != nil {
		return fmt.Errorf("%w: update product: %v", apperr.ErrAtomicUnitAborted, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", apperr.ErrProductNotFound, changes.ID)
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE online_retail.inventory_info
		SET product_quantity = $1
		WHERE product_id = $2
	`, changes.Quantity, changes.ID)
	if err != nil {
		return fmt.Errorf("%w: update inventory: %v", apperr.ErrAtomicUnitAborted, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", apperr.ErrProductNotFound, changes.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperr.ErrAtomicUnitAborted, err)
	}
	return nil
}

// DeletePair removes inventory then product inside one transaction so a
// dangling row on either side cannot survive a mid-way failure.
func (r *PGRepository) DeletePair(ctx context.Context, productID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", apperr.ErrAtomicUnitAborted, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM online_retail.inventory_info WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("%w: delete inventory: %v", apperr.ErrAtomicUnitAborted, err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM online_retail.product_info WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("%w: delete product: %v", apperr.ErrAtomicUnitAborted, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", apperr.ErrProductNotFound, productID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperr.ErrAtomicUnitAborted, err)
	}
	return nil
}

func (r *PGRepository) Get(ctx context.Context, productID string) (*model.CatalogItem, error) {
	var item model.CatalogItem
	err := r.DB.GetContext(ctx, &item, `
		SELECT p.product_id, p.product_type, p.product_name, p.product_desc,
		       p.product_keywords, p.product_price, p.product_image, i.product_quantity
		FROM online_retail.product_info p
		JOIN online_retail.inventory_info i ON p.product_id = i.product_id
		WHERE p.product_id = $1
	`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrProductNotFound, productID)
		}
		return nil, err
	}
	return &item, nil
}

// ListAvailable is the shopper view: only pairs with stock on hand.
func (r *PGRepository) ListAvailable(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	err := r.DB.SelectContext(ctx, &items, `
		SELECT p.product_id, p.product_type, p.product_name, p.product_desc,
		       p.product_keywords, p.product_price, p.product_image, i.product_quantity
		FROM online_retail.product_info p
		JOIN online_retail.inventory_info i ON p.product_id = i.product_id
		WHERE i.product_quantity > 0
		ORDER BY p.product_name
	`)
	return items, err
}

// ListCatalog is the retailer view: every pair, zero stock included.
func (r *PGRepository) ListCatalog(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	err := r.DB.SelectContext(ctx, &items, `
		SELECT p.product_id, p.product_type, p.product_name, p.product_desc,
		       p.product_keywords, p.product_price, p.product_image, i.product_quantity
		FROM online_retail.product_info p
		JOIN online_retail.inventory_info i ON p.product_id = i.product_id
		ORDER BY p.product_name
	`)
	return items, err
}
