package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

const defaultTimeout = 10 // seconds

// URI builds the connection string of cfg.
func URI(cfg settings.MongoDB) string {
	u := url.URL{Scheme: "mongodb", Host: cfg.Host}
	if cfg.Port > 0 {
		u.Host = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String()
}

// NewClient connects to cfg and pings the primary.
func NewClient(ctx context.Context, cfg settings.MongoDB) (*mongo.Client, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(URI(cfg)).
		SetConnectTimeout(time.Duration(timeout) * time.Second).
		SetServerSelectionTimeout(time.Duration(timeout) * time.Second)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(time.Duration(cfg.MaxConnIdleTime) * time.Second)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, apperr.Wrap(ErrConnectFailed, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperr.Wrap(ErrPingFailed, err)
	}
	return client, nil
}
