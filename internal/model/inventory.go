package model

// StockChange is the direction of an audited stock movement.
type StockChange string

const (
	StockIncrease StockChange = "Increase"
	StockDecrease StockChange = "Decrease"
)

// StockLevel is the quantity on hand read back after a stock procedure.
// The products table belongs to the inventory database, not to this service.
type StockLevel struct {
	ProductID     int64 `gorm:"column:product_id" json:"productId"`
	StockQuantity int64 `gorm:"column:stock_quantity" json:"stockQuantity"`
}

// Record is a row of an externally owned table (sales, restocks, audit_log).
type Record map[string]interface{}

// ProbeResult reports the outcome of a trigger probe.
type ProbeResult struct {
	Trigger   string `json:"trigger"`
	Fired     bool   `json:"fired"`
	Detail    string `json:"detail,omitempty"`
	LastEntry Record `json:"lastEntry,omitempty"`
}
