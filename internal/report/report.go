package report

import (
	"context"
	"time"
)

// ProductSales is one bestseller row: a product and its total sales value.
type ProductSales struct {
	Name       string  `db:"product_name" json:"product_name"`
	TotalSales float64 `db:"total_sales" json:"total_sales"`
}

// DailySales is one sales-report row, grouped by purchase date and product.
type DailySales struct {
	Date         time.Time `db:"purchase_date" json:"purchase_date"`
	Name         string    `db:"product_name" json:"product_name"`
	QuantitySold int       `db:"quantity_sold" json:"quantity_sold"`
	TotalSales   float64   `db:"total_sales" json:"total_sales"`
}

// Repository is the read-only reporting surface over the committed cart
// ledger. It never writes; the merge pipeline is the ledger's sole writer.
type Repository interface {
	Revenue(ctx context.Context, start, end time.Time) (float64, error)
	Bestsellers(ctx context.Context, start, end time.Time, limit int) ([]ProductSales, error)
	SalesReport(ctx context.Context) ([]DailySales, error)
}
