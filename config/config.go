package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Config owns the process-wide resources: the Mongo client, the logger
// and the environment settings. It is constructed once in main and
// passed into every handler.
type Config struct {
	Port        string
	DBName      string
	MongoURI    string
	JWTSecret   string
	MongoClient *mongo.Client
	Logger      *zap.Logger
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		DBName:    os.Getenv("DB_NAME"),
		MongoURI:  os.Getenv("MONGO_URI"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.DBName == "" {
		cfg.DBName = "bloodify"
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// Connect dials Mongo and pings the primary so a bad URI fails at
// startup instead of on the first request.
func (cfg *Config) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	cfg.MongoClient = client
	return nil
}

// Disconnect releases the Mongo client at process shutdown.
func (cfg *Config) Disconnect(ctx context.Context) error {
	if cfg.MongoClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return cfg.MongoClient.Disconnect(ctx)
}

// Collection is a shorthand used by every controller.
func (cfg *Config) Collection(name string) *mongo.Collection {
	return cfg.MongoClient.Database(cfg.DBName).Collection(name)
}
