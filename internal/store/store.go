package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/proxylink/proxylink-api/internal/config"
)

// Collection names owned by this service.
const (
	CollectionRequests    = "requests"
	CollectionRequestLogs = "requestLogs"
	CollectionTenants     = "tenants"
)

// Store wraps the document store client. It is constructed once by the
// process entry point and injected into DAOs; there is no lazy global.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logrus.Logger
}

// Connect establishes the document store connection and verifies it with a
// ping before returning.
func Connect(ctx context.Context, cfg *config.DocumentStoreConfig, logger *logrus.Logger) (*Store, error) {
	logger.WithFields(logrus.Fields{
		"database": cfg.Database,
	}).Info("Connecting to document store...")

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	logger.Info("Successfully connected to document store")

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// Collection returns a handle to a named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// HealthCheck verifies the store is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("document store health check failed: %w", err)
	}
	return nil
}

// Close disconnects from the document store.
func (s *Store) Close(ctx context.Context) error {
	s.logger.Info("Closing document store connection...")
	return s.client.Disconnect(ctx)
}
