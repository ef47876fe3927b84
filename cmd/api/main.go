package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/nutrichat/backend/config"
	"github.com/pageza/nutrichat/backend/internal/api"
	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/conversation"
	"github.com/pageza/nutrichat/backend/internal/database"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/logger"
	"github.com/pageza/nutrichat/backend/internal/middleware"
	"github.com/pageza/nutrichat/backend/internal/nutrition"
	"github.com/pageza/nutrichat/backend/internal/server"
	"github.com/pageza/nutrichat/backend/internal/service"
)

func main() {
	log, err := logger.New(string(config.GetEnvironment()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("server exited", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, log *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, getEnv("MIGRATIONS_DIR", "migrations"), log); err != nil {
		return err
	}

	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	calc := nutrition.NewCalculator(c)
	planner := diet.NewPlanner(calc, diet.NewEngine(c, nil, log))
	engine := conversation.NewEngine(planner, c, log)

	search := service.NewMealSearchService(db)
	seeded, err := search.Seed(ctx, c)
	if err != nil {
		return err
	}
	log.Info("catalog indexed", zap.Int("meals", seeded))

	deps := api.Dependencies{
		DB:     db,
		Auth:   service.NewAuthService(db, cfg.JWTSecret),
		Plans:  service.NewPlanService(calc, planner, c, engine),
		Search: search,
	}

	var cache service.PlanCache
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("redis unavailable; running without plan cache and rate limits", zap.Error(err))
		} else {
			defer client.Close()
			cache = service.NewRedisPlanCache(client, cfg.PlanCacheTTL)
			deps.Redis = client
			deps.Limiter = middleware.NewChatRateLimiter(client, cfg.ChatRateLimit, cfg.ChatRateWindow, log)
		}
	}
	chats := service.NewChatService(db, engine, cache, log)
	deps.Chats = chats

	var store service.ObjectStore
	if cfg.ExportEnabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		store = s3cfg
	}
	deps.Exports = service.NewExportService(chats, store, cfg.ExportExpiry)

	return server.New(cfg, log, deps).Run(ctx)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
