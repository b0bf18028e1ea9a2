package main

import (
	"context"
	"net/http"

	webAdapter "github.com/imanaswer/GOLDY/internal/adapters/web"
	"github.com/imanaswer/GOLDY/internal/app"
	"github.com/imanaswer/GOLDY/internal/config"
	"github.com/imanaswer/GOLDY/internal/core"
	"github.com/imanaswer/GOLDY/internal/db"
	"github.com/imanaswer/GOLDY/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := logger.Setup(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	partyService := core.NewPartyService(pool)
	invoiceService := core.NewInvoiceService(pool)
	jobCardService := core.NewJobCardService(pool)
	transactionService := core.NewTransactionService(pool)
	closingService := core.NewClosingService(pool)
	settingsService := core.NewSettingsService(pool)

	svc := app.NewAppService(partyService, invoiceService, jobCardService,
		transactionService, closingService, settingsService)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
