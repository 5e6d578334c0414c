package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var (
	start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
)

func TestRevenue(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT SUM\(product_price \* quantity\)`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(119.97))

	revenue, err := repo.Revenue(context.Background(), start, end)
	require.NoError(t, err)
	assert.InDelta(t, 119.97, revenue, 0.0001)
}

func TestRevenueEmptyRangeIsZero(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT SUM\(product_price \* quantity\)`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

	revenue, err := repo.Revenue(context.Background(), start, end)
	require.NoError(t, err)
	assert.Zero(t, revenue)
}

func TestBestsellers(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`ORDER BY total_sales DESC`).
		WithArgs(start, end, 2).
		WillReturnRows(sqlmock.NewRows([]string{"product_name", "total_sales"}).
			AddRow("Chair", 99.98).
			AddRow("Lamp", 19.99))

	rows, err := repo.Bestsellers(context.Background(), start, end, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chair", rows[0].Name)
	assert.Greater(t, rows[0].TotalSales, rows[1].TotalSales)
}

func TestSalesReport(t *testing.T) {
	repo, mock := newMockRepo(t)

	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`GROUP BY purchase_date, product_name`).
		WillReturnRows(sqlmock.NewRows([]string{"purchase_date", "product_name", "quantity_sold", "total_sales"}).
			AddRow(day, "Chair", 2, 99.98))

	rows, err := repo.SalesReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chair", rows[0].Name)
	assert.Equal(t, 2, rows[0].QuantitySold)
}
