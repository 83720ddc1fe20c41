package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"platerental/auth"
	"platerental/config"
	"platerental/handlers"
	"platerental/ledger"
	"platerental/logger"
	"platerental/repository"
	"platerental/routes"
	"platerental/utils"
)

func main() {
	// Load config from .env or environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("db_type", cfg.DBType).Msg("failed to open store")
	}
	defer store.Close()

	reporter := ledger.NewLogReporter()
	ledgerHandler := handlers.NewLedgerHandler(store.Challans, reporter)

	receiptHandler := &handlers.ReceiptHandler{
		Clients:  store.Clients,
		Bills:    store.Bills,
		Ledger:   ledgerHandler,
		Renderer: utils.NewChromeRenderer(),
		SavePath: cfg.ReceiptDir,
	}
	if cfg.R2Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up R2")
		}
		receiptHandler.Uploader = uploader
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, routes.Handlers{
		User:    &handlers.UserHandler{Repo: store.Users, Verifier: auth.NewBcryptVerifier(store.Users)},
		Client:  &handlers.ClientHandler{Repo: store.Clients},
		Challan: &handlers.ChallanHandler{Repo: store.Challans},
		Stock:   &handlers.StockHandler{Repo: store.Stock},
		Ledger:  ledgerHandler,
		Bill:    &handlers.BillHandler{Saver: ledger.NewSaver(store.Bills, reporter), Repo: store.Bills, Ledger: ledgerHandler},
		Receipt: receiptHandler,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Str("db_type", cfg.DBType).Msg("server running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server stopped")
	}
}
