package handler

import (
	"go-admin-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
	res              *Responder
}

func NewInventoryHandler(inventoryService service.InventoryService, res *Responder) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, res: res}
}

// POST /api/inventory/decrease-stock
func (h *InventoryHandler) DecreaseStock(c *fiber.Ctx) error {
	var req service.StockChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	level, err := h.inventoryService.DecreaseStock(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, level)
}

// POST /api/inventory/increase-stock
func (h *InventoryHandler) IncreaseStock(c *fiber.Ctx) error {
	var req service.StockChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	level, err := h.inventoryService.IncreaseStock(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, level)
}

// POST /api/inventory/log-sale
func (h *InventoryHandler) LogSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	sale, err := h.inventoryService.LogSale(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, sale)
}

// POST /api/inventory/log-restock
func (h *InventoryHandler) LogRestock(c *fiber.Ctx) error {
	var req service.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	restock, err := h.inventoryService.LogRestock(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, restock)
}

// POST /api/inventory/test-prevent-negative-stock
func (h *InventoryHandler) TestPreventNegativeStock(c *fiber.Ctx) error {
	var req service.NegativeStockProbeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	result, err := h.inventoryService.ProbeNegativeStock(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, result)
}

// POST /api/inventory/test-audit-stock-changes
func (h *InventoryHandler) TestAuditStockChanges(c *fiber.Ctx) error {
	var req service.AuditProbeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	result, err := h.inventoryService.ProbeAuditTrail(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, result)
}
