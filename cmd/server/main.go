package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/AngelCh415/utm-dashboard/internal/config"
	"github.com/AngelCh415/utm-dashboard/internal/httpx"
	"github.com/AngelCh415/utm-dashboard/internal/ingest"
	"github.com/AngelCh415/utm-dashboard/internal/insight"
	"github.com/AngelCh415/utm-dashboard/internal/metrics"
	"github.com/AngelCh415/utm-dashboard/internal/store"
)

func main() {
	// .env es opcional
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewMemoryStore()
	loader := ingest.NewLoader(cl, st, logger, cfg.Columns)
	mSvc := metrics.NewService(st, cfg.Columns)

	gemini := &insight.GeminiProvider{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}
	iSvc, err := insight.NewService(gemini, cfg.InsightMaxRows, cfg.InsightCacheSize, cfg.InsightRetries, logger)
	if err != nil {
		logger.Error("insight init", slog.String("err", err.Error()))
		os.Exit(1)
	}

	r := httpx.NewRouter(httpx.Deps{
		Log:       logger,
		Loader:    loader,
		Store:     st,
		Metrics:   mSvc,
		Insight:   iSvc,
		MaxUpload: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port), slog.Bool("insight", cfg.GeminiAPIKey != ""))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
