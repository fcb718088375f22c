package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultMongoDatabase   = "store"
	defaultShutdownTimeout = 10 * time.Second

	defaultMongoConnectTimeout = 10 * time.Second
	defaultMongoPingTimeout    = 5 * time.Second
	defaultReadHeaderTimeout   = 5 * time.Second
)

type Store struct {
	MongoURL            string
	MongoDatabase       string
	RabbitMQURL         string
	HTTPAddr            string
	ShutdownTimeout     time.Duration
	MongoConnectTimeout time.Duration
	MongoPingTimeout    time.Duration
	ReadHeaderTimeout   time.Duration
}

func LoadStore() (Store, error) {
	cfg := Store{
		MongoURL:            getEnv("MONGO_URL", ""),
		MongoDatabase:       getEnv("MONGO_DB", defaultMongoDatabase),
		RabbitMQURL:         getEnv("RABBITMQ_URL", ""),
		HTTPAddr:            getEnv("HTTP_ADDR", defaultHTTPAddr),
		ShutdownTimeout:     defaultShutdownTimeout,
		MongoConnectTimeout: defaultMongoConnectTimeout,
		MongoPingTimeout:    defaultMongoPingTimeout,
		ReadHeaderTimeout:   defaultReadHeaderTimeout,
	}

	if cfg.MongoURL == "" {
		return Store{}, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.RabbitMQURL == "" {
		return Store{}, fmt.Errorf("RABBITMQ_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
