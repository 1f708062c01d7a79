package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Bootstrap carries the wired dependencies of the server. Redis, RabbitMQ and
// Minio stay nil when their integration is disabled.
type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Minio          *minio.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// EventsClose if set will be called during Shutdown to close the publisher channel
	EventsClose func() error
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.EventsClose != nil {
		err := b.EventsClose()
		if err != nil {
			return err
		}
		log.Println("Successfully closing event publisher")
	}

	if b.Redis != nil {
		err := b.Redis.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.RabbitMQ != nil {
		err := b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	// Sync on stdout/stderr returns EINVAL on some platforms; not worth failing shutdown over.
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
