package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"campusguard/config"
	"campusguard/core/utils"
)

// Connection states reported by /health.
const (
	StateConnected     = "connected"
	StateDisconnected  = "disconnected"
	StateConnecting    = "connecting"
	StateDisconnecting = "disconnecting"
	StateUnknown       = "unknown"
)

// Connect establishes the process-wide Mongo client. Connection failures are
// retried with a fixed backoff until the context is cancelled.
func Connect(ctx context.Context, cfg *config.AppConfig, logger *utils.Logger) (*mongo.Client, error) {
	backoff := cfg.Store.RetryBackoff
	if backoff <= 0 {
		backoff = 5 * time.Second
	}
	for {
		client, err := tryConnect(ctx, cfg)
		if err == nil {
			if logger != nil {
				logger.Printf("mongo connected: %s/%s", cfg.Store.URI, cfg.Store.Database)
			}
			return client, nil
		}
		if logger != nil {
			logger.Errorf("mongo connect: %v (retrying in %s)", err, backoff)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func tryConnect(ctx context.Context, cfg *config.AppConfig) (*mongo.Client, error) {
	timeout := cfg.Store.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Store.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// ConnState probes the store with a short ping. The returned error means the
// probe itself could not run, not that the store is down.
func ConnState(ctx context.Context, client *mongo.Client, timeout time.Duration) (string, error) {
	if client == nil {
		return StateUnknown, errors.New("mongo client not initialized")
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return StateDisconnected, nil
	}
	return StateConnected, nil
}

func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
