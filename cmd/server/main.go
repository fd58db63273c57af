package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/alerts"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/api"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/config"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/database"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/kafka"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/market"
	"github.com/AnuzzKhatri/Crypto-Tracker/internal/payments"
	"github.com/AnuzzKhatri/Crypto-Tracker/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:  envOr("LOG_LEVEL", "info"),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Crypto Tracker API")

	cfg := config.Load()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	priceCache := market.NewCache(redisClient, cfg.Redis.PriceTTL)
	marketClient := market.NewClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout, priceCache, log)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()

	evaluator := alerts.NewEvaluator(db, marketClient, producer, log)
	paymentService := payments.New(db, producer, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, log)

	handler := api.NewHandler(db, marketClient, evaluator, paymentService, log)
	router := api.SetupRoutes(handler)

	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
