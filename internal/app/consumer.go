package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"
	"github.com/Picancianmartin/UniformesCoachSite/internal/messaging/kafka/consumer"
	"github.com/Picancianmartin/UniformesCoachSite/internal/product"
	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/connection"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer drains order events from Kafka; today that means clearing
// the customer's cart after checkout commits.
func RunConsumer(logger *zap.Logger) error {
	logger = logger.Named("consumer")
	logger.Info("starting cart consumer")

	db, err := connection.ConnectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}
	defer db.Close()

	cartRepo := cart.NewRepository(db)
	productRepo := product.NewRepository(db)
	cartService := cart.NewService(db, cartRepo, productRepo)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   "order.events",
		GroupID: "cart-consumer-group",
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeMessages(ctx, reader, cartService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	logger.Info("stopped")
	return nil
}
