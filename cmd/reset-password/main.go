package main

import (
	"context"
	"flag"

	"go-admin-console/internal/model"
	"go-admin-console/internal/repository"
	"go-admin-console/pkg/config"
	"go-admin-console/pkg/database"
	"go-admin-console/pkg/logger"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	email := flag.String("email", "john@example.com", "account to reset")
	newPassword := flag.String("password", "Admin@123!", "new password")
	flag.Parse()
	*email = model.NormalizeEmail(*email)

	// 1. Load Env
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zl := logger.New(cfg.App.Env, cfg.Log.Level)

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB, zl, false)
	if err != nil {
		zl.Fatal().Err(err).Msg("connect database")
	}
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	// 3. Find user
	user, err := users.FindByEmail(ctx, *email)
	if err != nil {
		zl.Fatal().Err(err).Str("email", *email).Msg("user not found")
	}

	// 4. Hash new password
	hashed, err := bcrypt.GenerateFromPassword([]byte(*newPassword), cfg.Security.BcryptCost)
	if err != nil {
		zl.Fatal().Err(err).Msg("hash password")
	}

	// 5. Update
	if err := users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		zl.Fatal().Err(err).Msg("update password")
	}

	zl.Info().Str("email", *email).Msg("password reset")
}
