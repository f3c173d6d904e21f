package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

const (
	defaultTimeout      = 10 // seconds
	defaultMaxRetries   = 3
	defaultRetryBackoff = 100 // millis
)

// NewConfig translates cfg into a sarama config for a synchronous producer.
func NewConfig(cfg settings.Kafka) (*sarama.Config, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}

	sc := sarama.NewConfig()
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	sc.Net.DialTimeout = time.Duration(timeout) * time.Second
	sc.Producer.Timeout = time.Duration(timeout) * time.Second

	// SyncProducer requires both.
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = sarama.WaitForAll

	sc.Producer.Retry.Max = defaultMaxRetries
	if cfg.MaxRetries > 0 {
		sc.Producer.Retry.Max = cfg.MaxRetries
	}
	sc.Producer.Retry.Backoff = defaultRetryBackoff * time.Millisecond
	if cfg.RetryBackoff > 0 {
		sc.Producer.Retry.Backoff = time.Duration(cfg.RetryBackoff) * time.Millisecond
	}
	if cfg.MaxMessageBytes > 0 {
		sc.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	}

	if cfg.Idempotent {
		sc.Version = sarama.V2_1_0_0
		sc.Producer.Idempotent = true
		sc.Net.MaxOpenRequests = 1
	}

	if err := sc.Validate(); err != nil {
		return nil, errors.Wrap(err, "kafka: invalid producer config")
	}
	return sc, nil
}

// NewProducer dials the brokers of cfg.
func NewProducer(cfg settings.Kafka) (sarama.SyncProducer, error) {
	sc, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	p, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, apperr.Wrap(ErrConnectionFailed, err)
	}
	return p, nil
}
