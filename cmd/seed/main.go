package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/kv"
	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/notify"
	"github.com/rooming-app/rooming/internal/repository"
	"github.com/rooming-app/rooming/internal/seed"
	"github.com/rooming-app/rooming/internal/social"
)

func main() {
	envMissing := godotenv.Load() != nil

	if err := logger.Initialize(os.Getenv("LOG_LEVEL"), ""); err != nil {
		panic(err)
	}
	defer logger.Close()

	if envMissing {
		logger.Log.Warn(".env file not found, using system environment variables")
	}

	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if command != "dev" && command != "test" {
		fmt.Println("Usage: seed [dev|test]")
		fmt.Println("  dev   - Seed the store with realistic development data")
		fmt.Println("  test  - Seed the store with minimal fixture accounts")
		os.Exit(1)
	}

	store, err := kv.NewRedis(
		os.Getenv("REDIS_HOST"),
		os.Getenv("REDIS_PORT"),
		os.Getenv("REDIS_PASSWORD"),
		os.Getenv("REDIS_KEY_PREFIX"),
	)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	repo, err := repository.New(ctx, store)
	if err != nil {
		logger.Log.Fatal("Failed to load repository state", zap.Error(err))
	}

	graph := social.NewGraph(store)
	notifySvc := notify.NewService(store)
	seeder := seed.NewSeeder(repo, graph, notifySvc)

	switch command {
	case "dev":
		logger.Log.Info("Seeding development data...")
		err = seeder.SeedDev(ctx)
	case "test":
		logger.Log.Info("Seeding test fixtures...")
		err = seeder.SeedTest(ctx)
	}
	if err != nil {
		logger.Log.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Log.Info("Seeding complete", zap.String("mode", command))
}
