package main

import (
	"context"
	"log"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/jeromemathew2004/rescue-nexus-hub/config"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/bootstrap"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/stats"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("Failed to open pgx pool: %v", err)
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		// The API degrades to uncached stats without Redis.
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var authClient *firebaseauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		log.Println("Firebase authentication enabled")
	} else {
		log.Println("Firebase not configured, running in development auth mode")
	}

	r, statsService := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "rescue-nexus-hub",
		Version:     cfg.App.Version,
		DB:          db,
		Pool:        pool,
		Redis:       rdb,
		AuthClient:  authClient,
		StatsTTL:    time.Duration(cfg.Stats.CacheTTLSeconds) * time.Second,
		RateRPS:     cfg.Server.RateLimitRPS,
		RateBurst:   cfg.Server.RateLimitBurst,
	})

	scheduler := stats.NewScheduler(statsService, cfg.Stats.WarmSpec)
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("Starting server on :%s (env %s)", cfg.Server.Port, cfg.App.Environment)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
