package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/ignite/newsletter-subscriber/internal/config"
	"github.com/ignite/newsletter-subscriber/internal/repository/postgres"
	"github.com/ignite/newsletter-subscriber/internal/storage"
)

func main() {
	wait := flag.Duration("wait", 2*time.Minute, "how long to wait for a new DynamoDB table to become ACTIVE")
	flag.Parse()

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = config.DefaultPath
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *wait+30*time.Second)
	defer cancel()

	switch cfg.Storage.Type {
	case config.StorageDynamoDB:
		store, err := storage.NewDynamoDBStore(ctx, cfg.Storage)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		created, err := store.EnsureTable(ctx, *wait)
		if err != nil {
			log.Fatalf("create table %s: %v", store.TableName(), err)
		}
		if created {
			log.Printf("Created DynamoDB table %s", store.TableName())
		} else {
			log.Printf("DynamoDB table %s already exists", store.TableName())
		}

	case config.StoragePostgres:
		repo, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer repo.Close()
		log.Println("Connected to database")

		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
		log.Println("Migrations complete")

	default:
		log.Printf("Storage type %q needs no migration", cfg.Storage.Type)
	}
}
