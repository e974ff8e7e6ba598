package database

import (
	"context"
	"fmt"
	"time"

	"rentwatch/config"
	"rentwatch/database/repository"
	"rentwatch/database/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the process-wide MongoDB client, reused across job invocations.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	zap.L().Info("Connected to MongoDB successfully")
	return nil
}

// OpenGateway returns the gateway selected by STORE_DRIVER.
func OpenGateway(ctx context.Context) (store.Gateway, error) {
	batch := config.AppConfig.StoreBatchSize

	switch config.AppConfig.StoreDriver {
	case "memory":
		zap.L().Warn("Using the in-memory store; data is lost on exit")
		return store.NewMemory(batch), nil
	case "mongo", "":
		if MongoClient == nil {
			if err := InitDB(ctx); err != nil {
				return nil, err
			}
		}
		db := MongoClient.Database(config.AppConfig.DatabaseName)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			zap.L().Warn("failed to create indexes", zap.Error(err))
		}
		return store.NewMongo(db, batch), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
	}
}

// Close disconnects the Mongo client if one was opened.
func Close(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		zap.L().Warn("failed to disconnect MongoDB", zap.Error(err))
	}
}
