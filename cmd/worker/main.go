package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/feedloop/feedloop/internal/bootstrap"
	"github.com/feedloop/feedloop/internal/config"
	"github.com/feedloop/feedloop/internal/infra/queue"
	"github.com/feedloop/feedloop/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// The export worker consumes queued export jobs, renders the documents, and
// uploads them to object storage. It shares the server's container wiring.
func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	conn := do.MustInvoke[*amqp.Connection](inj)
	exports := do.MustInvoke[service.ExportService](inj)

	consumer, err := queue.NewConsumer(conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch, log)
	if err != nil {
		log.Sugar().Fatalw("create consumer", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Sugar().Info("shutting down export worker")
		cancel()
	}()

	log.Sugar().Infow("export worker started", "queue", cfg.RabbitMQ.Queue)

	err = consumer.Consume(ctx, func(ctx context.Context, body []byte) error {
		var msg service.ExportJobMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			log.Sugar().Errorw("malformed export message", "err", err)
			return nil // drop, nothing to retry
		}
		log.Sugar().Infow("processing export job", "job", msg.JobID)
		return exports.Process(ctx, msg.JobID)
	})
	if err != nil && err != context.Canceled {
		log.Sugar().Errorw("consumer stopped", "err", err)
	}
	log.Sugar().Info("export worker exited")
}
