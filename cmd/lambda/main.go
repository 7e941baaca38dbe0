package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/ignite/newsletter-subscriber/internal/app"
	"github.com/ignite/newsletter-subscriber/internal/config"
	"github.com/ignite/newsletter-subscriber/internal/event"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = config.DefaultPath
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The store is built once per container and reused across invocations.
	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	lambda.Start(event.NewHandler(application.Service).Handle)
}
