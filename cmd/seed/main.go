package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"snack_factory_backend/internal/seed"
	"snack_factory_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "YAML catalog to load (defaults to the built-in sample)")
	api := flag.String("api", utils.Getenv("SEED_API_URL", "http://localhost:5000"), "API base URL")
	flag.Parse()

	utils.InitLogger(utils.Getenv("LOG_LEVEL", "info"), true)

	catalog, err := seed.LoadCatalog(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.GetenvDuration("SEED_TIMEOUT", 2*time.Minute))
	defer cancel()

	result, err := seed.NewSeeder(*api).Seed(ctx, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	fmt.Fprintf(os.Stdout, "Seeded %d snacks, skipped %d already present\n", len(result.Created), len(result.Skipped))
}
