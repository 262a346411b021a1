package repository

import (
	"context"

	"go-admin-console/internal/model"

	"gorm.io/gorm"
)

// InventoryRepository calls the stock procedures of the inventory database.
// The procedures and triggers behind them are owned by that database.
type InventoryRepository interface {
	DecreaseStock(ctx context.Context, productID, quantity int64) error
	IncreaseStock(ctx context.Context, productID, quantity int64) error
	LogSale(ctx context.Context, productID, quantitySold int64) error
	LogRestock(ctx context.Context, productID, quantityAdded int64) error
	StockLevel(ctx context.Context, productID int64) (*model.StockLevel, error)
	LatestSale(ctx context.Context, productID int64) (model.Record, error)
	LatestRestock(ctx context.Context, productID int64) (model.Record, error)
	LatestAudit(ctx context.Context, productID int64) (model.Record, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) call(ctx context.Context, procedure string, productID, quantity int64) error {
	return r.db.WithContext(ctx).Exec("CALL "+procedure+"(?, ?)", productID, quantity).Error
}

func (r *inventoryRepo) DecreaseStock(ctx context.Context, productID, quantity int64) error {
	return r.call(ctx, "decrease_stock", productID, quantity)
}

func (r *inventoryRepo) IncreaseStock(ctx context.Context, productID, quantity int64) error {
	return r.call(ctx, "increase_stock", productID, quantity)
}

func (r *inventoryRepo) LogSale(ctx context.Context, productID, quantitySold int64) error {
	return r.call(ctx, "log_sale", productID, quantitySold)
}

func (r *inventoryRepo) LogRestock(ctx context.Context, productID, quantityAdded int64) error {
	return r.call(ctx, "log_restock", productID, quantityAdded)
}

func (r *inventoryRepo) StockLevel(ctx context.Context, productID int64) (*model.StockLevel, error) {
	var level model.StockLevel
	err := r.db.WithContext(ctx).
		Raw("SELECT product_id, stock_quantity FROM products WHERE product_id = ?", productID).
		Scan(&level).Error
	if err != nil {
		return nil, err
	}
	if level.ProductID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &level, nil
}

func (r *inventoryRepo) latest(ctx context.Context, table, orderColumn string, productID int64) (model.Record, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).
		Table(table).
		Where("product_id = ?", productID).
		Order(orderColumn + " DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return model.Record(rows[0]), nil
}

func (r *inventoryRepo) LatestSale(ctx context.Context, productID int64) (model.Record, error) {
	return r.latest(ctx, "sales", "sale_date", productID)
}

func (r *inventoryRepo) LatestRestock(ctx context.Context, productID int64) (model.Record, error) {
	return r.latest(ctx, "restocks", "restock_date", productID)
}

func (r *inventoryRepo) LatestAudit(ctx context.Context, productID int64) (model.Record, error) {
	return r.latest(ctx, "audit_log", "change_date", productID)
}
