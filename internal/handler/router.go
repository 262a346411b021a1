package handler

import (
	"go-admin-console/internal/middleware"
	"go-admin-console/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Routes holds everything needed to mount the REST API.
type Routes struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Permissions *PermissionHandler
	Inventory   *InventoryHandler

	Authenticator middleware.Authenticator
	Checker       middleware.PermissionChecker
	Responder     *Responder
}

// Register mounts the API under /api.
func (r Routes) Register(app fiber.Router) {
	onError := r.Responder.Fail
	can := func(action model.Action, opts ...middleware.PermissionOption) fiber.Handler {
		return middleware.RequirePermission(r.Checker, action, onError, opts...)
	}
	adminOnly := middleware.RequireRole(onError, model.RoleAdmin)

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", r.Auth.Login)
	auth.Post("/validate-token", r.Auth.ValidateToken)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth(r.Authenticator, onError)

	users := api.Group("/users", requireAuth)
	users.Post("/", can(model.ActionRead), r.Users.GetUsers)
	users.Get("/stats", r.Users.GetStats)
	users.Get("/me", r.Users.GetCurrentUser)
	users.Get("/current-user/:id", can(model.ActionRead, middleware.AllowSelf("id")), r.Users.GetUser)
	users.Post("/create-new", can(model.ActionCreate), r.Users.CreateUser)
	users.Put("/update/:id", can(model.ActionUpdate, middleware.AllowSelf("id")), r.Users.UpdateUser)
	users.Delete("/delete/:id", can(model.ActionDelete), r.Users.DeleteUser)
	users.Post("/check-email/:id", r.Users.CheckEmail)
	users.Post("/check-password/:id", middleware.RequireSelf("id", onError), r.Users.CheckPassword)
	users.Get("/:id", can(model.ActionRead, middleware.AllowSelf("id")), r.Users.GetUser)

	permissions := api.Group("/permissions", requireAuth)
	permissions.Get("/", r.Permissions.GetAll)
	permissions.Get("/role/:role", r.Permissions.GetForRole)
	permissions.Put("/role/:role", adminOnly, r.Permissions.UpdateForRole)
	permissions.Get("/:id", r.Permissions.GetForUser)

	inventory := api.Group("/inventory", requireAuth)
	inventory.Post("/decrease-stock", can(model.ActionUpdate), r.Inventory.DecreaseStock)
	inventory.Post("/increase-stock", can(model.ActionUpdate), r.Inventory.IncreaseStock)
	inventory.Post("/log-sale", can(model.ActionCreate), r.Inventory.LogSale)
	inventory.Post("/log-restock", can(model.ActionCreate), r.Inventory.LogRestock)
	inventory.Post("/test-prevent-negative-stock", adminOnly, r.Inventory.TestPreventNegativeStock)
	inventory.Post("/test-audit-stock-changes", adminOnly, r.Inventory.TestAuditStockChanges)
}
