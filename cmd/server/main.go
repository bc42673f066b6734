package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pollboard/api/pkg/config"
	"github.com/pollboard/api/pkg/logger"
	"github.com/pollboard/api/pkg/metrics"

	_ "github.com/lib/pq"
	redisdriver "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	rediscache "github.com/pollboard/api/internal/adapters/cache/redis"
	"github.com/pollboard/api/internal/adapters/handler/http"
	"github.com/pollboard/api/internal/adapters/oauth/google"
	"github.com/pollboard/api/internal/adapters/repository/postgres"
	"github.com/pollboard/api/internal/core/services"
)

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

	metrics.Init(cfg.Metrics.Prefix)

	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	redisClient := redisdriver.NewClient(&redisdriver.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	listingCache := rediscache.NewListingCache(redisClient)

	pollSvc := services.NewPollService(pollRepo, listingCache, log)
	voteSvc := services.NewVoteService(pollRepo, voteRepo)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), cfg.Auth.JWTSecret, cfg.Auth.GoogleClientID)

	pollHandler := http.NewPollHandler(pollSvc, listingCache, log)
	voteHandler := http.NewVoteHandler(voteSvc)
	userHandler := http.NewUserHandler(userSvc)
	authHandler := http.NewAuthHandler(authSvc, cfg.Auth.CookieDomain)
	authenticator := http.NewAuthenticator(cfg.Auth.JWTSecret)

	handler := http.NewHandler(pollHandler, voteHandler, authHandler, userHandler, authenticator, log)
	server := &stdhttp.Server{Addr: "0.0.0.0:" + cfg.Server.Port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}
}
