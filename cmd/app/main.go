package main

import (
	"log"
	"net/http"
	"os"

	"github.com/chris/recording-settlements/pkg/balance"
	"github.com/chris/recording-settlements/pkg/config"
	"github.com/chris/recording-settlements/pkg/earnings"
	"github.com/chris/recording-settlements/pkg/handlers"
	"github.com/chris/recording-settlements/pkg/middleware"
	"github.com/chris/recording-settlements/pkg/settlement"
	"github.com/chris/recording-settlements/pkg/storage/memory"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}

	level, err := zerolog.ParseLevel(conf.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// All state is in-memory; the service restarts empty.
	store := memory.New()
	calculator := earnings.NewCalculator(conf.Earnings.RateCentsPerHour)
	engine := settlement.NewEngine(store, calculator, logger)
	balances := balance.NewService(store, logger)

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	router := handlers.NewRouter(handlers.Services{
		Engine:   engine,
		Balances: balances,
		Ledger:   balances,
	}, logger, metrics)

	logger.Info().Str("port", conf.Server.Port).Msg("starting server")

	if err := http.ListenAndServe(":"+conf.Server.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
