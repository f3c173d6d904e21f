package redis

import (
	"context"
	"fmt"
	"time"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 5
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis

	pingTimeout = 5 * time.Second
)

// NewConnection creates a Redis client for cfg and checks it with a ping.
func NewConnection(cfg settings.Redis) (*redisV9.Client, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}
	setDefaultConfig(&cfg)

	client := redisV9.NewClient(options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperr.Wrapf(ErrConnectionFailed, err, "ping %s", client.Options().Addr)
	}

	return client, nil
}

func options(cfg settings.Redis) *redisV9.Options {
	addr := cfg.Host
	if cfg.Port > 0 {
		addr = fmt.Sprintf("%s:%d", addr, cfg.Port)
	}

	return &redisV9.Options{
		Addr:            addr,
		Password:        cfg.Password,
		DB:              cfg.Database,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxRetries:      cfg.MaxRetries,
		DialTimeout:     seconds(cfg.DialTimeout),
		ReadTimeout:     seconds(cfg.ReadTimeout),
		WriteTimeout:    seconds(cfg.WriteTimeout),
		PoolTimeout:     seconds(cfg.PoolTimeout),
		MinRetryBackoff: millis(cfg.MinRetryBackoff),
		MaxRetryBackoff: millis(cfg.MaxRetryBackoff),
	}
}

// setDefaultConfig sets default values for Redis configuration
func setDefaultConfig(cfg *settings.Redis) {
	if cfg.PoolSize == 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.MinIdleConns == 0 {
		cfg.MinIdleConns = defaultMinIdleConns
	}
	if cfg.PoolTimeout == 0 {
		cfg.PoolTimeout = defaultPoolTimeout
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MinRetryBackoff == 0 {
		cfg.MinRetryBackoff = defaultMinRetryBackoff
	}
	if cfg.MaxRetryBackoff == 0 {
		cfg.MaxRetryBackoff = defaultMaxRetryBackoff
	}
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func millis(n int) time.Duration { return time.Duration(n) * time.Millisecond }
