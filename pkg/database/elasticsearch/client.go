package elasticsearch

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

var _ esapi.Transport = (*elasticsearch.Client)(nil)

// NewClient creates a client for cfg. The client doubles as the esapi.Transport of a Sink.
func NewClient(cfg settings.Elasticsearch) (*elasticsearch.Client, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, apperr.Wrap(ErrConnectionFailed, err)
	}
	return client, nil
}
