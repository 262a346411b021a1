package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-admin-console/internal/cache"
	"go-admin-console/internal/handler"
	"go-admin-console/internal/model"
	"go-admin-console/internal/query"
	"go-admin-console/internal/repository"
	"go-admin-console/internal/seed"
	"go-admin-console/internal/service"
	"go-admin-console/internal/ws"
	"go-admin-console/pkg/config"
	"go-admin-console/pkg/database"
	"go-admin-console/pkg/jwt"
	"go-admin-console/pkg/logger"
	"go-admin-console/pkg/response"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zl := logger.New(cfg.App.Env, cfg.Log.Level)

	// 2. Setup database
	db, err := database.ConnectDB(cfg.DB, zl, !cfg.IsProduction())
	if err != nil {
		zl.Fatal().Err(err).Msg("connect database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.RolePermission{}); err != nil {
		zl.Fatal().Err(err).Msg("auto migrate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Cache and websocket hub
	redisClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, zl)
	if err := redisClient.Ping(ctx); err != nil {
		zl.Warn().Err(err).Msg("redis unavailable, permission cache disabled")
	}
	defer redisClient.Close()

	wsHub := ws.NewHub(zl)
	go wsHub.Run(ctx)

	// 4. Wiring layers
	userRepo := repository.NewUserRepo(db)
	permissionRepo := repository.NewPermissionRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)

	if cfg.App.SeedOnStart {
		n, err := seed.New(userRepo, permissionRepo, cfg.Security.BcryptCost, zl).Run(ctx, seed.DemoUsers)
		if err != nil {
			zl.Warn().Err(err).Msg("seeding failed")
		} else {
			zl.Info().Int("users_created", n).Msg("seed complete")
		}
	}

	builder := query.NewBuilder(repository.UserColumns, repository.UserSearchColumns, repository.UserDefaultSort,
		cfg.Grid.DefaultLimit, cfg.Grid.MaxLimit)
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL(), cfg.JWT.Issuer)
	permissionCache := cache.NewPermissionCache(redisClient, cfg.Redis.PermissionCacheTTL)

	permissionService := service.NewPermissionService(permissionRepo, userRepo, permissionCache, wsHub)
	authService := service.NewAuthService(userRepo, permissionService, tokens, cfg.Security.BcryptCost)
	userService := service.NewUserService(userRepo, builder, wsHub, cfg.Security.BcryptCost)
	inventoryService := service.NewInventoryService(inventoryRepo, wsHub)

	res := handler.NewResponder(response.NewWriter(cfg.IsProduction()), zl)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.IsProduction(),
	})
	app.Use(recover.New())
	app.Use(logger.Middleware(zl))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ClientCount()})
	})

	handler.Routes{
		Auth:          handler.NewAuthHandler(authService, res),
		Users:         handler.NewUserHandler(userService, res),
		Permissions:   handler.NewPermissionHandler(permissionService, res),
		Inventory:     handler.NewInventoryHandler(inventoryService, res),
		Authenticator: authService,
		Checker:       permissionService,
		Responder:     res,
	}.Register(app)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 6. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.HTTP.Port); err != nil {
			zl.Error().Err(err).Msg("listen")
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}
	zl.Info().Msg("server exited")
}
