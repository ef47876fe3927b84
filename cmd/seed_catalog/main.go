// Command seed_catalog loads the meal catalog (built-in, or merged with
// CATALOG_PATH) into the searchable catalog_meals table.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/nutrichat/backend/config"
	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/database"
	"github.com/pageza/nutrichat/backend/internal/logger"
	"github.com/pageza/nutrichat/backend/internal/service"
)

func main() {
	log, err := logger.New(string(config.GetEnvironment()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("seeding failed", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
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
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}
	if err := database.RunMigrations(db, dir, log); err != nil {
		return err
	}

	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	n, err := service.NewMealSearchService(db).Seed(ctx, c)
	if err != nil {
		return err
	}
	log.Info("catalog seeded", zap.Int("meals", n), zap.String("source", sourceName(cfg.CatalogPath)))
	return nil
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
