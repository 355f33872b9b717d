// Command seed provisions the bootstrap admin account. Rerunning against a
// database that already has the account logs and exits cleanly.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/service"
	"github.com/staffhub/employee-system/internal/infrastructure/db/mongo"
	"github.com/staffhub/employee-system/internal/pkg/config"
	"github.com/staffhub/employee-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@staffhub.io"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	auth := service.NewAuthService(mongo.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL, log)

	_, user, err := auth.Register(ctx, "admin", email, password, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			log.Info().Str("email", email).Msg("admin account already exists")
			return
		}
		log.Fatal().Err(err).Msg("seeding admin failed")
	}

	log.Info().Str("user_id", user.ID).Str("email", email).Msg("admin account created")
}
