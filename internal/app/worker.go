package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Picancianmartin/UniformesCoachSite/internal/messaging/kafka/producer"
	"github.com/Picancianmartin/UniformesCoachSite/internal/outbox"
	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/connection"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker polls the outbox table and relays pending events to Kafka.
func RunWorker(logger *zap.Logger) error {
	logger = logger.Named("worker")
	logger.Info("starting outbox processor")

	db, err := connection.ConnectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}
	defer db.Close()

	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    "order.events",
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	outboxRepo := outbox.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	time.Sleep(1 * time.Second)
	logger.Info("stopped")
	return nil
}
