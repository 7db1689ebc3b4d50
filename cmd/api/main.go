package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.Level})))

	transactionService := transaction.NewService(txStore.New(cfg.DB.Path))
	if err := transactionService.Initialize(context.Background()); err != nil {
		slog.Error("failed to initialize database", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}

	var (
		vocab         = transaction.Vocabulary{Categories: cfg.Categories}
		importService = importer.NewService(importer.NewParser(vocab, time.Local), transactionService)
		exportService = export.NewService(transactionService)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService, vocab, time.Local)
		reportH      = reportHandler.NewHandler(transactionService)
		importH      = importHandler.NewHandler(importService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := tallyHttp.New(cfg.CORS.AllowedOrigins, transactionH, reportH, importH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port, "db", cfg.DB.Path)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
