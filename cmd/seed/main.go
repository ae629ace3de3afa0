package main

import (
	"context"
	"log"
	"time"

	"brainswap/internal/config"
	"brainswap/internal/docstore/postgres"
	"brainswap/internal/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	r := seeder.Runner{Seeders: []seeder.Seeder{seeder.UserSeeder{}}}
	if err := r.Run(ctx, store); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("seeding complete")
}
