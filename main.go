package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datasense/adapters/llm"
	"datasense/adapters/postgres"
	profileadapter "datasense/adapters/profile"
	"datasense/app"
	"datasense/internal"
	"datasense/internal/config"
	"datasense/internal/session"
	"datasense/ports"
	"datasense/ui"
)

func main() {
	_ = godotenv.Load()
	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration failed: %v", err)
		os.Exit(1)
	}

	client, err := llm.NewOpenAIClient(cfg.AI)
	if err != nil {
		logger.Error("LLM client construction failed: %v", err)
		os.Exit(1)
	}

	var repo ports.DatasetRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			logger.Error("database connection failed: %v", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			logger.Error("database migration failed: %v", err)
			os.Exit(1)
		}
		repo = postgres.NewDatasetRepository(db)
		logger.Info("dataset persistence enabled")
	}

	analyzer := profileadapter.NewAnalyzer()
	calculator := profileadapter.NewCalculator()
	store := session.NewStore()

	datasets := app.NewDatasetService(analyzer, store, repo)
	bridge := app.NewBridge(llm.NewInterpretationService(client), calculator)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: ui.NewServer(datasets, bridge).Handler(),
	}

	go func() {
		logger.Info("listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed: %v", err)
	}
}
