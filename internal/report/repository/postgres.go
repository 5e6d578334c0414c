package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/onlineretail/storefront/internal/report"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Revenue(ctx context.Context, start, end time.Time) (float64, error) {
	var revenue sql.NullFloat64
	err := r.DB.GetContext(ctx, &revenue, `
		SELECT SUM(product_price * quantity)
		FROM online_retail.cart_committed
		WHERE inserted_at::date BETWEEN $1 AND $2
	`, start, end)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	// SUM over an empty range is NULL, which is zero revenue.
	return revenue.Float64, nil
}

func (r *PGRepository) Bestsellers(ctx context.Context, start, end time.Time, limit int) ([]report.ProductSales, error) {
	var rows []report.ProductSales
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT product_name, SUM(product_price * quantity) AS total_sales
		FROM online_retail.cart_committed
		WHERE inserted_at::date BETWEEN $1 AND $2
		GROUP BY product_name
		ORDER BY total_sales DESC
		LIMIT $3
	`, start, end, limit)
	return rows, err
}

func (r *PGRepository) SalesReport(ctx context.Context) ([]report.DailySales, error) {
	var rows []report.DailySales
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT inserted_at::date AS purchase_date, product_name,
		       SUM(quantity) AS quantity_sold,
		       SUM(product_price * quantity) AS total_sales
		FROM online_retail.cart_committed
		GROUP BY purchase_date, product_name
		ORDER BY purchase_date DESC
	`)
	return rows, err
}
