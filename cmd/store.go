package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/International-Combat-Archery-Alliance/registration-payments/api"
	"github.com/International-Combat-Archery-Alliance/registration-payments/dynamo"
	"github.com/International-Combat-Archery-Alliance/registration-payments/mongodb"
	"github.com/International-Combat-Archery-Alliance/registration-payments/paypal"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type closeFunc func(ctx context.Context) error

func noopClose(ctx context.Context) error { return nil }

func createStore(ctx context.Context, cfg Config, awsCfg aws.Config, logger *slog.Logger) (api.DB, closeFunc, error) {
	switch cfg.StoreBackend {
	case storeBackendMongo:
		return createMongoStore(ctx, cfg, logger)
	default:
		db, err := createDynamoStore(ctx, cfg, awsCfg, logger)
		return db, noopClose, err
	}
}

func createDynamoStore(ctx context.Context, cfg Config, awsCfg aws.Config, logger *slog.Logger) (*dynamo.DB, error) {
	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})

	db := dynamo.NewDB(dynamoClient, cfg.DynamoTableName, dynamo.WithTimeout(cfg.StoreTimeout))

	// Production tables are provisioned outside the service
	if cfg.DynamoEndpoint != "" && cfg.Env == "local" {
		if err := db.CreateTable(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using local dynamo table", slog.String("endpoint", cfg.DynamoEndpoint), slog.String("table", cfg.DynamoTableName))
	}

	return db, nil
}

func createMongoStore(ctx context.Context, cfg Config, logger *slog.Logger) (*mongodb.DB, closeFunc, error) {
	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout*5)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to mongodb", slog.String("database", cfg.MongoDatabase), slog.String("collection", cfg.MongoCollection))

	coll := mongoClient.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)

	return mongodb.NewDB(coll, mongodb.WithTimeout(cfg.StoreTimeout)), mongoClient.Disconnect, nil
}

// createTokenCache shares PayPal tokens through redis when REDIS_URL is set, otherwise
// each instance keeps its own in memory.
func createTokenCache(ctx context.Context, cfg Config) (paypal.TokenCache, closeFunc, error) {
	if cfg.RedisURL == "" {
		return paypal.NewMemoryTokenCache(), noopClose, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return paypal.NewRedisTokenCache(rdb), func(ctx context.Context) error { return rdb.Close() }, nil
}
