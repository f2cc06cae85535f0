package main

import (
	"context"
	"fmt"
	"log"
	"time"

	mongoMigration "bonzai/internal/migrations/mongo"
	"bonzai/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := mongoMigration.SeedRooms(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Room seeding failed: %v", err)
	}

	fmt.Println("Migration completed successfully.")
}
