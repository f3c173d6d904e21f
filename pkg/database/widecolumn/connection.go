package widecolumn

import (
	"time"

	"github.com/gocql/gocql"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

const (
	defaultPort        = 9042
	defaultTimeout     = 10
	defaultRetries     = 3
	defaultConsistency = "QUORUM"
)

// NewSession validates cfg and opens a session on the cluster.
func NewSession(cfg settings.WideColumn) (*gocql.Session, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}

	session, err := NewCluster(cfg).CreateSession()
	if err != nil {
		return nil, apperr.Wrap(ErrConnectFailed, err)
	}
	return session, nil
}

// NewCluster builds the cluster config for cfg with defaults applied.
func NewCluster(cfg settings.WideColumn) *gocql.ClusterConfig {
	setDefaultConfig(&cfg)

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Port = cfg.Port
	cluster.Keyspace = cfg.Keyspace
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	cluster.Timeout = time.Duration(cfg.Timeout) * time.Second
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: cfg.Retries}
	cluster.Consistency = gocql.ParseConsistency(cfg.Consistency)
	return cluster
}

func setDefaultConfig(cfg *settings.WideColumn) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}
	if cfg.Consistency == "" {
		cfg.Consistency = defaultConsistency
	}
}
