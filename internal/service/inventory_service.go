package service

import (
	"context"
	"errors"
	"fmt"

	"go-admin-console/internal/model"
	"go-admin-console/internal/repository"
	"go-admin-console/internal/ws"
	"go-admin-console/pkg/validator"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrNegativeStockAllowed  = errors.New("trigger did not fire: stock went negative")
	ErrAuditEntryMissing     = errors.New("audit log entry not found or change type mismatch")
	ErrStockConstraintFailed = errors.New("stock change rejected by the database")
)

type InventoryService interface {
	DecreaseStock(ctx context.Context, req *StockChangeRequest) (*model.StockLevel, error)
	IncreaseStock(ctx context.Context, req *StockChangeRequest) (*model.StockLevel, error)
	LogSale(ctx context.Context, req *SaleRequest) (model.Record, error)
	LogRestock(ctx context.Context, req *RestockRequest) (model.Record, error)
	ProbeNegativeStock(ctx context.Context, req *NegativeStockProbeRequest) (*model.ProbeResult, error)
	ProbeAuditTrail(ctx context.Context, req *AuditProbeRequest) (*model.ProbeResult, error)
}

type StockChangeRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

type SaleRequest struct {
	ProductID    int64 `json:"productId" validate:"required,gt=0"`
	QuantitySold int64 `json:"quantitySold" validate:"required,gt=0"`
}

type RestockRequest struct {
	ProductID     int64 `json:"productId" validate:"required,gt=0"`
	QuantityAdded int64 `json:"quantityAdded" validate:"required,gt=0"`
}

type NegativeStockProbeRequest struct {
	ProductID       int64 `json:"productId" validate:"required,gt=0"`
	InvalidQuantity int64 `json:"invalidQuantity" validate:"required,gt=0"`
}

type AuditProbeRequest struct {
	ProductID  int64             `json:"productId" validate:"required,gt=0"`
	ChangeType model.StockChange `json:"changeType" validate:"required,oneof=Increase Decrease"`
	Quantity   int64             `json:"quantity" validate:"required,gt=0"`
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	events        ws.Publisher
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, events ws.Publisher) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		events:        events,
	}
}

func (s *inventoryService) stockChanged(level *model.StockLevel) {
	if s.events != nil {
		s.events.Publish(ws.EventStockUpdate, level)
	}
}

// procedureError classifies an error raised by a stock procedure.
func procedureError(op string, err error) error {
	if repository.IsCheckViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrStockConstraintFailed)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *inventoryService) readStock(ctx context.Context, productID int64) (*model.StockLevel, error) {
	level, err := s.inventoryRepo.StockLevel(ctx, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("read stock: %w", err)
	}
	return level, nil
}

func (s *inventoryService) DecreaseStock(ctx context.Context, req *StockChangeRequest) (*model.StockLevel, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.DecreaseStock(ctx, req.ProductID, req.Quantity); err != nil {
		return nil, procedureError("decrease stock", err)
	}
	level, err := s.readStock(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	s.stockChanged(level)
	return level, nil
}

func (s *inventoryService) IncreaseStock(ctx context.Context, req *StockChangeRequest) (*model.StockLevel, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.IncreaseStock(ctx, req.ProductID, req.Quantity); err != nil {
		return nil, procedureError("increase stock", err)
	}
	level, err := s.readStock(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	s.stockChanged(level)
	return level, nil
}

func (s *inventoryService) LogSale(ctx context.Context, req *SaleRequest) (model.Record, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.LogSale(ctx, req.ProductID, req.QuantitySold); err != nil {
		return nil, procedureError("log sale", err)
	}
	sale, err := s.inventoryRepo.LatestSale(ctx, req.ProductID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("read sale: %w", err)
	}
	return sale, nil
}

func (s *inventoryService) LogRestock(ctx context.Context, req *RestockRequest) (model.Record, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.LogRestock(ctx, req.ProductID, req.QuantityAdded); err != nil {
		return nil, procedureError("log restock", err)
	}
	restock, err := s.inventoryRepo.LatestRestock(ctx, req.ProductID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("read restock: %w", err)
	}
	return restock, nil
}

// ProbeNegativeStock tries to take more stock than is on hand and expects the
// database to refuse with a check constraint violation.
func (s *inventoryService) ProbeNegativeStock(ctx context.Context, req *NegativeStockProbeRequest) (*model.ProbeResult, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	err := s.inventoryRepo.DecreaseStock(ctx, req.ProductID, req.InvalidQuantity)
	if err == nil {
		return nil, ErrNegativeStockAllowed
	}
	if !repository.IsCheckViolation(err) {
		return nil, fmt.Errorf("probe negative stock: %w", err)
	}
	return &model.ProbeResult{
		Trigger: "prevent_negative_stock",
		Fired:   true,
		Detail:  err.Error(),
	}, nil
}

// ProbeAuditTrail moves stock in the requested direction and checks that the
// audit trigger logged a matching entry.
func (s *inventoryService) ProbeAuditTrail(ctx context.Context, req *AuditProbeRequest) (*model.ProbeResult, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var err error
	switch req.ChangeType {
	case model.StockIncrease:
		err = s.inventoryRepo.IncreaseStock(ctx, req.ProductID, req.Quantity)
	case model.StockDecrease:
		err = s.inventoryRepo.DecreaseStock(ctx, req.ProductID, req.Quantity)
	}
	if err != nil {
		return nil, procedureError("probe audit trail", err)
	}

	entry, err := s.inventoryRepo.LatestAudit(ctx, req.ProductID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAuditEntryMissing
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	if fmt.Sprint(entry["change_type"]) != string(req.ChangeType) {
		return nil, ErrAuditEntryMissing
	}

	if level, err := s.readStock(ctx, req.ProductID); err == nil {
		s.stockChanged(level)
	}
	return &model.ProbeResult{
		Trigger:   "audit_stock_changes",
		Fired:     true,
		LastEntry: entry,
	}, nil
}
