package container

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	config "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Config"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

// Container manages dependencies and their lifecycle
type Container struct {
	config *config.Config
	logger *logger.Logger
	client *mongo.Client

	// Mutex for thread-safe access
	mu sync.RWMutex

	// Cleanup functions
	cleanupFuncs []func() error
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	log := logger.NewLogger(&cfg.Logging)

	return &Container{
		config: cfg,
		logger: log,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// ConnectStore dials the document store and keeps the client for the
// lifetime of the container.
func (c *Container) ConnectStore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}

	client, err := store.ConnectMongo(c.config.Mongo.URI, c.config.Mongo.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}
	c.client = client

	c.cleanupFuncs = append(c.cleanupFuncs, func() error {
		return client.Disconnect(context.Background())
	})
	return nil
}

// GetStore returns the shared store handle injected into every
// handler. ConnectStore must have succeeded first.
func (c *Container) GetStore() (*store.MongoStore, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.client == nil {
		return nil, fmt.Errorf("store not connected")
	}
	return store.NewMongoStore(c.client.Database(c.config.Mongo.Database)), nil
}

// Ping verifies store connectivity for readiness probes.
func (c *Container) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.client == nil {
		return fmt.Errorf("store not connected")
	}
	return c.client.Ping(ctx, readpref.Primary())
}

// Shutdown runs the registered cleanup functions in reverse order.
func (c *Container) Shutdown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			c.logger.ErrorWithError(err, "cleanup failed")
		}
	}
	c.cleanupFuncs = nil
	c.client = nil
}
