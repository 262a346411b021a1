package handler

import (
	"go-admin-console/internal/middleware"
	"go-admin-console/internal/query"
	"go-admin-console/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
	res         *Responder
}

func NewUserHandler(userService service.UserService, res *Responder) *UserHandler {
	return &UserHandler{userService: userService, res: res}
}

func (h *UserHandler) idParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// GetUsers returns one page of the user grid
// POST /api/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	var req query.GridRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.res.BadBody(c, err)
		}
	}

	page, err := h.userService.List(c.UserContext(), req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.List(c, page, page.Count)
}

// GetUser returns a single user
// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := h.idParam(c)
	if !ok {
		return h.res.BadParam(c, "user id")
	}

	user, err := h.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, user)
}

// GetCurrentUser returns the caller's own record
// GET /api/users/me
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)
	if current == nil {
		return h.res.Fail(c, middleware.ErrForbidden)
	}
	return h.res.OK(c, current)
}

// CreateUser handles user creation
// POST /api/users/create-new
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Created(c, user)
}

// UpdateUser applies a partial update
// PUT /api/users/update/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := h.idParam(c)
	if !ok {
		return h.res.BadParam(c, "user id")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	// editing your own profile does not include your role
	if req.Role != nil && middleware.SelfOnly(c) {
		return h.res.Fail(c, middleware.ErrForbidden)
	}

	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, user)
}

// DeleteUser handles user deletion
// DELETE /api/users/delete/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := h.idParam(c)
	if !ok {
		return h.res.BadParam(c, "user id")
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, fiber.Map{"id": id})
}

type checkEmailRequest struct {
	Email string `json:"email"`
}

// CheckEmail reports whether an email is free for the user in the path
// POST /api/users/check-email/:id
func (h *UserHandler) CheckEmail(c *fiber.Ctx) error {
	// new users have no id yet; anything unparsable excludes nobody
	excludeID, _ := h.idParam(c)

	var req checkEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}

	available, err := h.userService.CheckEmailAvailability(c.UserContext(), req.Email, excludeID)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, fiber.Map{"isAvailable": available})
}

type checkPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
}

// CheckPassword verifies the current password of a user
// POST /api/users/check-password/:id
func (h *UserHandler) CheckPassword(c *fiber.Ctx) error {
	id, ok := h.idParam(c)
	if !ok {
		return h.res.BadParam(c, "user id")
	}

	var req checkPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}

	valid, err := h.userService.CheckPassword(c.UserContext(), id, req.CurrentPassword)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, fiber.Map{"isValid": valid})
}

// GetStats returns head counts per role
// GET /api/users/stats
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.UserContext())
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, stats)
}
