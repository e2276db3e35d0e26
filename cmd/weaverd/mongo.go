package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"

	"github.com/drblury/opweaver/compose"
	"github.com/drblury/opweaver/internal/config"
)

// mongoClient holds the optional MongoDB client. Client is nil when no URI
// is configured.
type mongoClient struct {
	Client *mongo.Client
}

func newMongoClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (mongoClient, error) {
	if cfg.Mongo.URI == "" {
		return mongoClient{}, nil
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return mongoClient{}, fmt.Errorf("mongo connect: %w", err)
	}

	ping := func(ctx context.Context) (struct{}, error) {
		return struct{}{}, client.Ping(ctx, readpref.Primary())
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := compose.Retry(ctx, ping,
				compose.WithRetries(cfg.Mongo.ConnectRetries),
				compose.WithDelay(cfg.Mongo.RetryDelay),
				compose.WithRetryLogger(logger.With(slog.String("component", "mongo"))),
			)
			if err != nil {
				return fmt.Errorf("mongo ping: %w", err)
			}
			logger.Info("mongo connected")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return mongoClient{Client: client}, nil
}
