package database

import (
	"context"
	"log"
	"net"
	"patient-record-service/internal/app/config"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisClientName  = "patient-record-service"
	redisPingTimeout = 5 * time.Second
)

// NewRedisClient connects to the redis instance holding the collection lock.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	address := net.JoinHostPort(driverConfig.Redis.Host, driverConfig.Redis.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:       address,
		Password:   driverConfig.Redis.Password,
		DB:         driverConfig.Redis.DB,
		ClientName: redisClientName,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to redis at %s: %v", address, err)
	}

	log.Printf("Successfully connected to redis at %s (db %d)", address, driverConfig.Redis.DB)
	return rdb
}
