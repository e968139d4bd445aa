package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	delivery "github.com/vinylstore/backend/internal/delivery/http"
	"github.com/vinylstore/backend/internal/messaging/kafka"
	"github.com/vinylstore/backend/internal/repository/postgres"
	"github.com/vinylstore/backend/internal/service"
	"github.com/vinylstore/backend/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		slog.SetLogLoggerLevel(level)
	}

	// --- Database ---
	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	artistRepo := postgres.NewArtistRepository(db)
	labelRepo := postgres.NewLabelRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	cartRepo := postgres.NewCartRepository(db)

	// --- Kafka ---
	broker := kafka.NewBroker(strings.Split(cfg.KafkaBrokers, ","))
	defer broker.Close()

	// --- Services ---
	orderSvc := service.NewOrderService(orderRepo, userRepo, productRepo, artistRepo, labelRepo, broker)
	cartSvc := service.NewCartService(cartRepo, userRepo, broker)
	catalogSvc := service.NewCatalogService(artistRepo, labelRepo, productRepo)
	userSvc := service.NewUserService(userRepo)

	// --- HTTP ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(delivery.RequestID())
	router.Use(delivery.Logger())
	router.Use(delivery.CORS())

	handler := delivery.NewHandler(orderSvc, cartSvc, catalogSvc, userSvc)
	handler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		slog.Info("HTTP server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "err", err)
	}
}
