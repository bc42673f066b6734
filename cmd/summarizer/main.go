package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pollboard/api/internal/adapters/repository/postgres"
	"github.com/pollboard/api/internal/core/services"
	"github.com/pollboard/api/pkg/config"
	"github.com/pollboard/api/pkg/logger"
)

// Batch job: refreshes the poll_results snapshot table from the votes log.
// Meant to run on a schedule (cron or similar).
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	pollRepo := postgres.NewPollRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)
	summarySvc := services.NewSummaryService(pollRepo, resultRepo, log)

	// Bound the run so a stuck query cannot hang the job forever.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Info("starting vote summarization job")
	if err := summarySvc.SummarizeAllVotes(ctx); err != nil {
		log.Fatal("vote summarization failed", zap.Error(err))
	}
	log.Info("vote summarization completed")
}
