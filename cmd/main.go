package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/koimarket/auction-service/internal/cache"
	"gitlab.com/koimarket/auction-service/internal/db"
	"gitlab.com/koimarket/auction-service/internal/kafka"
	"gitlab.com/koimarket/auction-service/internal/logger"
	"gitlab.com/koimarket/auction-service/internal/repository/postgresql"
	"gitlab.com/koimarket/auction-service/internal/server"
	"gitlab.com/koimarket/auction-service/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zapLogger := logger.New()
	defer func() { _ = zapLogger.Sync() }()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}
	defer database.GetPool().Close()

	db.InitAdmin(database)

	auctionRepo := postgresql.NewAuctionRepo(database)
	koiRepo := postgresql.NewKoiRepo(database)
	bidRepo := postgresql.NewBidRepo(database)
	orderRepo := postgresql.NewOrderRepo(database)
	feedbackRepo := postgresql.NewFeedbackRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	auctionCache := cache.NewAuctionCache(auctionRepo)
	if err := auctionCache.LoadInitialData(ctx); err != nil {
		log.Printf("WARNING: failed to warm auction cache: %v", err)
	}

	stg := storage.NewMarketStorage(
		database,
		auctionRepo,
		koiRepo,
		bidRepo,
		orderRepo,
		feedbackRepo,
		historyRepo,
		outboxRepo,
		zapLogger,
	).WithAuctionCache(auctionCache)

	producer := newProducer()
	defer func() {
		if err := producer.Close(); err != nil {
			log.Printf("Error closing Kafka producer: %v", err)
		}
	}()

	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    10,
		MaxAttempts:  3,
	})

	srv := server.New(stg, userRepo)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "9000"
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return srv.Run(groupCtx, port)
	})

	group.Go(func() error {
		publisher.Run(groupCtx)
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		publisher.Shutdown()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Service exited with error: %v", err)
	}

	log.Println("Service gracefully stopped")
}

func newProducer() kafka.Producer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return kafka.NewConsoleProducer()
	}
	return kafka.NewWriterProducer(strings.Split(brokers, ","))
}
