package handler

import (
	"strings"

	"go-admin-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	res         *Responder
}

func NewAuthHandler(authService service.AuthService, res *Responder) *AuthHandler {
	return &AuthHandler{authService: authService, res: res}
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.BadBody(c, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, resp)
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateToken checks a token from the body, or from the Authorization header
// when the body has none.
// POST /api/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.res.BadBody(c, err)
		}
	}
	if req.Token == "" {
		req.Token = strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	}

	resp, err := h.authService.ValidateToken(c.UserContext(), req.Token)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, resp)
}
