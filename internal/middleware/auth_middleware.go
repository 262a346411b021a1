package middleware

import (
	"context"
	"errors"
	"strings"

	"go-admin-console/internal/model"
	"go-admin-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser     = "user"
	localSelfOnly = "selfOnly"
)

// ErrForbidden is passed to the error handler when the caller lacks access.
var ErrForbidden = errors.New("forbidden")

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(c *fiber.Ctx, err error) error

type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*model.User, error)
}

type PermissionChecker interface {
	Allows(ctx context.Context, role model.Role, action model.Action) (bool, error)
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localUser).(*model.User)
	return user
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", jwt.ErrMissingToken
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", jwt.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireAuth validates the bearer token, loads the user it names and stores
// it for downstream handlers.
func RequireAuth(auth Authenticator, onError ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return onError(c, err)
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return onError(c, err)
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}

// SelfOnly reports whether the request got past RequirePermission only
// because it targets the caller's own record.
func SelfOnly(c *fiber.Ctx) bool {
	self, _ := c.Locals(localSelfOnly).(bool)
	return self
}

func isSelf(c *fiber.Ctx, param string, user *model.User) bool {
	return param != "" && strings.EqualFold(c.Params(param), user.ID.String())
}

type permissionOptions struct {
	selfParam string
}

type PermissionOption func(*permissionOptions)

// AllowSelf lets a caller through without the flag when the named path
// parameter is their own user id. Such requests are marked SelfOnly.
func AllowSelf(param string) PermissionOption {
	return func(o *permissionOptions) { o.selfParam = param }
}

// RequirePermission checks the caller's role grants action. Must run after RequireAuth.
func RequirePermission(checker PermissionChecker, action model.Action, onError ErrorHandler, opts ...PermissionOption) fiber.Handler {
	var o permissionOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return onError(c, ErrForbidden)
		}

		ok, err := checker.Allows(c.UserContext(), user.Role, action)
		if err != nil {
			return onError(c, err)
		}
		if ok {
			return c.Next()
		}
		if isSelf(c, o.selfParam, user) {
			c.Locals(localSelfOnly, true)
			return c.Next()
		}
		return onError(c, ErrForbidden)
	}
}

// RequireSelf lets through only callers whose own id is in the named path parameter.
func RequireSelf(param string, onError ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !isSelf(c, param, user) {
			return onError(c, ErrForbidden)
		}
		return c.Next()
	}
}

// RequireRole lets through only callers holding one of roles.
func RequireRole(onError ErrorHandler, roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return onError(c, ErrForbidden)
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return onError(c, ErrForbidden)
	}
}
