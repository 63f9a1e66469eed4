// internal/common/database/mongo.go
package database

import (
	"context"
	"time"

	"booking-sync/internal/common/config"
	commonerrors "booking-sync/internal/common/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient wraps the MongoDB client.
type MongoClient struct {
	Client *mongo.Client
}

// NewMongo creates a new MongoDB client.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, commonerrors.NewStoreConnectionFailedError(err)
	}

	return &MongoClient{Client: client}, nil
}

// Ping tests the MongoDB connection.
func (c *MongoClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Client.Ping(pingCtx, readpref.Primary()); err != nil {
		return commonerrors.NewStoreConnectionFailedError(err)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (c *MongoClient) Close(ctx context.Context) error {
	if c.Client != nil {
		return c.Client.Disconnect(ctx)
	}
	return nil
}
