package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInventoryRepo_CallsProcedures(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepo(db)
	ctx := context.Background()

	calls := []struct {
		procedure string
		run       func() error
	}{
		{"decrease_stock", func() error { return repo.DecreaseStock(ctx, 1, 2) }},
		{"increase_stock", func() error { return repo.IncreaseStock(ctx, 1, 2) }},
		{"log_sale", func() error { return repo.LogSale(ctx, 1, 2) }},
		{"log_restock", func() error { return repo.LogRestock(ctx, 1, 2) }},
	}
	for _, c := range calls {
		mock.ExpectExec(regexp.QuoteMeta("CALL " + c.procedure + "($1, $2)")).
			WithArgs(int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, c.run(), c.procedure)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepo_CheckConstraintSurfaces(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("CALL decrease_stock($1, $2)")).
		WillReturnError(&pgconn.PgError{Code: "23514", Message: `new row for relation "products" violates check constraint "stock_quantity_check"`})

	err := repo.DecreaseStock(context.Background(), 1, 1000)
	assert.True(t, IsCheckViolation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepo_StockLevel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepo(db)
	ctx := context.Background()
	stockQuery := regexp.QuoteMeta("SELECT product_id, stock_quantity FROM products WHERE product_id = $1")

	mock.ExpectQuery(stockQuery).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "stock_quantity"}).AddRow(7, 42))
	level, err := repo.StockLevel(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), level.ProductID)
	assert.Equal(t, int64(42), level.StockQuantity)

	mock.ExpectQuery(stockQuery).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "stock_quantity"}))
	_, err = repo.StockLevel(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepo_LatestSale(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepo(db)
	ctx := context.Background()
	soldAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sales" WHERE product_id = $1 ORDER BY sale_date DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"sale_id", "product_id", "quantity_sold", "sale_date"}).
			AddRow(11, 7, 3, soldAt))
	sale, err := repo.LatestSale(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, sale["quantity_sold"])

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "audit_log" WHERE product_id = $1 ORDER BY change_date DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"log_id", "product_id", "change_type"}))
	_, err = repo.LatestAudit(ctx, 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
