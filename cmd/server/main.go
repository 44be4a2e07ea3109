package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/config"
	"github.com/bloodlink/bloodlink-tn/internal/database"
	"github.com/bloodlink/bloodlink-tn/internal/handler"
	"github.com/bloodlink/bloodlink-tn/internal/middleware"
	"github.com/bloodlink/bloodlink-tn/internal/queue"
	"github.com/bloodlink/bloodlink-tn/internal/repository"
	"github.com/bloodlink/bloodlink-tn/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("database schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	donors := repository.NewDonorRepo(db)
	requests := repository.NewRequestRepo(db)
	hospitals := repository.NewHospitalRepo(db)

	// Redis is optional: without it the limiter and cache become no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response caching disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Donor:     handler.NewDonorHandler(donors),
		Request:   handler.NewRequestHandler(requests, donors),
		Hospital:  handler.NewHospitalHandler(hospitals),
		Notify:    handler.NewNotifyHandler(requests, donors, users),
		Dashboard: handler.NewDashboardHandler(donors, requests),
	}, cfg.JWTSecret, cache)

	// Expiry sweep is hygiene only: reads filter on expires_at themselves,
	// so a stalled sweeper never lets expired donors leak into results.
	go runSweeper(donors, cfg.SweepInterval)

	// Alert consumer delivers queued donor notifications; it reconnects on
	// its own and never takes the API down.
	go func() {
		if err := queue.StartAlertConsumer(); err != nil {
			log.Printf("alert-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func runSweeper(donors *repository.DonorRepo, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := donors.SweepExpired(ctx)
		cancel()
		if err != nil {
			log.Printf("donor-sweeper: sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("donor-sweeper: marked %d expired donors as unavailable", n)
		}
		<-ticker.C
	}
}
