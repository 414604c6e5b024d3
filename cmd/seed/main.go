package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apnadr/hospital-api/internal/config"
	"github.com/apnadr/hospital-api/internal/repository/postgres"
	"github.com/apnadr/hospital-api/pkg/logger"
)

// Loads the Telangana hospital fixtures. Safe to run repeatedly: seeding is
// skipped when the directory already has hospitals.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Logging.Level)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	repo := postgres.NewHospitalRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count hospitals")
	}
	if count > 0 {
		log.Info().Int("hospitals", count).Msg("database already contains hospitals, skipping seed")
		return
	}

	for i := range telanganaHospitals {
		h := telanganaHospitals[i]
		if err := repo.Create(ctx, &h); err != nil {
			log.Fatal().Err(err).Str("hospital", h.Name).Msg("failed to seed hospital")
		}
		log.Info().Str("hospital", h.Name).Str("city", h.City).Msg("seeded")
	}

	log.Info().Int("hospitals", len(telanganaHospitals)).Msg("Telangana hospitals loaded into database")
}
