package main

import (
	"context"
	"flag"

	"go-admin-console/internal/model"
	"go-admin-console/internal/repository"
	"go-admin-console/internal/seed"
	"go-admin-console/pkg/config"
	"go-admin-console/pkg/database"
	"go-admin-console/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	permissionsOnly := flag.Bool("permissions-only", false, "seed role permissions without demo users")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zl := logger.New(cfg.App.Env, cfg.Log.Level)

	db, err := database.ConnectDB(cfg.DB, zl, false)
	if err != nil {
		zl.Fatal().Err(err).Msg("connect database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.RolePermission{}); err != nil {
		zl.Fatal().Err(err).Msg("auto migrate")
	}

	demo := seed.DemoUsers
	if *permissionsOnly {
		demo = nil
	}

	s := seed.New(repository.NewUserRepo(db), repository.NewPermissionRepo(db), cfg.Security.BcryptCost, zl)
	n, err := s.Run(context.Background(), demo)
	if err != nil {
		zl.Fatal().Err(err).Msg("seeding failed")
	}
	zl.Info().Int("users_created", n).Msg("database seeded successfully")
}
