package handler

import (
	"net/url"

	"go-admin-console/internal/model"
	"go-admin-console/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PermissionHandler struct {
	permissionService service.PermissionService
	res               *Responder
}

func NewPermissionHandler(permissionService service.PermissionService, res *Responder) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService, res: res}
}

// roleParam decodes the :role parameter; "data manager" arrives as "data%20manager".
func roleParam(c *fiber.Ctx) model.Role {
	raw := c.Params("role")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return model.Role(raw)
}

// GET /api/permissions
func (h *PermissionHandler) GetAll(c *fiber.Ctx) error {
	permissions, err := h.permissionService.List(c.UserContext())
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, permissions)
}

// GET /api/permissions/:id
func (h *PermissionHandler) GetForUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.res.BadParam(c, "user id")
	}

	p, err := h.permissionService.GetForUser(c.UserContext(), id)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, p)
}

// GET /api/permissions/role/:role
func (h *PermissionHandler) GetForRole(c *fiber.Ctx) error {
	p, err := h.permissionService.GetByRole(c.UserContext(), roleParam(c))
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, p)
}

// PUT /api/permissions/role/:role
func (h *PermissionHandler) UpdateForRole(c *fiber.Ctx) error {
	var patch model.PermissionPatch
	if err := c.BodyParser(&patch); err != nil {
		return h.res.BadBody(c, err)
	}

	p, err := h.permissionService.UpdateForRole(c.UserContext(), roleParam(c), patch)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, p)
}
