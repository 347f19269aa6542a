package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	"storefront-service/internal/api"
	"storefront-service/internal/broker"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront service")

	tp, err := util.InitTracer("storefront-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	var catalog store.Catalog
	switch cfg.Catalog.Source {
	case "postgres":
		sqlStore, err := store.NewSQLStore(cfg.Catalog.URL)
		if err != nil {
			log.Fatalf("Failed to connect to catalog database: %v", err)
		}
		defer sqlStore.Close()
		catalog = sqlStore
		log.Println("Catalog database connected")
	default:
		fileStore, err := store.NewFileStore(cfg.Catalog.DataDir)
		if err != nil {
			log.Fatalf("Failed to load catalog files: %v", err)
		}
		catalog = fileStore
		log.Printf("Catalog loaded from %s", cfg.Catalog.DataDir)
	}

	var redisClient *redisclient.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, continuing without catalog cache: %v", err)
		} else {
			defer redisClient.Close()
			log.Println("Redis connected")
		}
	}

	var eventPublisher *broker.EventPublisher
	var orderWorker *worker.OrderWorker

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
		defer producer.Close()
		eventPublisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")

		orderConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders, cfg.Kafka.ConsumerGroup)
		orderWorker = worker.NewOrderWorker(orderConsumer)
		go func() {
			if err := orderWorker.Start(workerCtx); err != nil {
				log.Printf("Order worker error: %v", err)
			}
		}()
	}

	catalogService := service.NewCatalogService(catalog, redisClient,
		time.Duration(cfg.Redis.CacheTTLSecs)*time.Second)
	if err := catalogService.InvalidateListing(context.Background()); err != nil {
		log.Printf("Failed to invalidate catalog cache: %v", err)
	}
	checkoutService := service.NewCheckoutService(eventPublisher,
		time.Duration(cfg.Checkout.DelayMillis)*time.Millisecond, cfg.Checkout.FailureRate)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(catalogService, checkoutService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if orderWorker != nil {
		orderWorker.Stop()
	}

	log.Println("Server exited")
}
