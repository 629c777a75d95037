package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"snack_factory_backend/internal/config"
	"snack_factory_backend/internal/database"
	"snack_factory_backend/internal/repositories"
	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file (defaults to $CONFIG_FILE)")
		email      = flag.String("email", "", "admin email (required)")
		name       = flag.String("name", "Administrator", "display name when creating the account")
		phone      = flag.String("phone", "0000000000", "phone number when creating the account")
		password   = flag.String("password", "", "password when creating the account (min 6 chars)")
		check      = flag.Bool("check", false, "only report whether the account is an admin")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.ValidateDatabase(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if *email == "" {
		log.Fatal().Msg("-email is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database.URL, database.Options{MaxOpenConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	authRepo := repositories.NewAuthRepository()

	if *check {
		user, err := authRepo.FindUserByEmail(ctx, db, strings.ToLower(strings.TrimSpace(*email)))
		if errors.Is(err, repositories.ErrNotFound) {
			fmt.Printf("%s: no such account\n", *email)
			os.Exit(2)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to look up account")
		}
		fmt.Printf("%s (%s): isAdmin=%t\n", user.Email, user.ID, user.IsAdmin)
		return
	}

	authService := services.NewAuthService(authRepo, db, nil)
	user, created, err := authService.EnsureAdmin(ctx, services.EnsureAdminRequest{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Password: *password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure admin account")
	}

	if created {
		fmt.Printf("Created admin account %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Printf("Promoted %s (%s) to admin\n", user.Email, user.ID)
	}
}
