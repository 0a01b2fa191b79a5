// Command lambda reconciles buckets as EventBridge reports their creation.
//
// Configuration comes from the environment like the CLI; RECONCILE_DRY_RUN
// and RECONCILE_RETENTION_DAYS tune the created rule. Credentials come from
// the function's execution role.
package main

import (
	"context"
	"log"

	"mpu-janitor/core/audit"
	"mpu-janitor/core/config"
	"mpu-janitor/core/logger"
	"mpu-janitor/core/reconcile"
	"mpu-janitor/core/storage"
	"mpu-janitor/feature/events"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	client, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	var obs reconcile.Observer
	if store := audit.Open(ctx, cfg.Database, logg); store != nil {
		obs = store.Observer()
	}

	opts, err := cfg.Reconcile.Options()
	if err != nil {
		logg.Fatal("Invalid reconcile configuration", zap.Error(err))
	}

	svc := events.NewService(reconcile.New(client, logg), opts, obs, logg)
	lambda.Start(newHandler(svc, logg).Handle)
}
