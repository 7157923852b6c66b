package main

import (
	"context"
	"hotelres/config"
	"hotelres/di"
	"hotelres/helper"
	"hotelres/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// @title Hotel Reservation API
// @version 1.0
// @description Room booking, pricing and checkout for a single hotel.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := di.InitializeService()

	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with an error")
	}
}
