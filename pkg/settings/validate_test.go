package settings

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     any
		wantErr bool
	}{
		{
			name: "valid_kafka",
			cfg:  Kafka{Brokers: []string{"localhost:9092"}, Topic: "changes"},
		},
		{
			name:    "kafka_without_brokers",
			cfg:     Kafka{Topic: "changes"},
			wantErr: true,
		},
		{
			name:    "kafka_empty_broker",
			cfg:     &Kafka{Brokers: []string{""}, Topic: "changes"},
			wantErr: true,
		},
		{
			name: "valid_logger_defaults",
			cfg:  Logger{},
		},
		{
			name:    "logger_unknown_level",
			cfg:     Logger{LogLevel: "verbose"},
			wantErr: true,
		},
		{
			name: "valid_elasticsearch",
			cfg:  Elasticsearch{Addresses: []string{"http://localhost:9200"}, Index: "changes"},
		},
		{
			name:    "elasticsearch_bad_address",
			cfg:     Elasticsearch{Addresses: []string{"not a url"}, Index: "changes"},
			wantErr: true,
		},
		{
			name:    "redis_port_out_of_range",
			cfg:     Redis{Host: "localhost", Port: 70000},
			wantErr: true,
		},
		{
			name: "valid_widecolumn",
			cfg:  WideColumn{Hosts: []string{"127.0.0.1"}, Keyspace: "changes"},
		},
		{
			name:    "widecolumn_bad_consistency",
			cfg:     WideColumn{Hosts: []string{"127.0.0.1"}, Keyspace: "changes", Consistency: "TWO"},
			wantErr: true,
		},
		{
			name: "valid_database",
			cfg:  Database{Driver: "postgres", Host: "localhost", Database: "changes"},
		},
		{
			name:    "database_unknown_driver",
			cfg:     Database{Driver: "sqlite", Host: "localhost", Database: "changes"},
			wantErr: true,
		},
		{
			name:    "mongodb_missing_collection",
			cfg:     MongoDB{Host: "localhost", Database: "db"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "error should wrap ErrInvalidConfig: %v", err)
		})
	}
}

func TestValidate_NotAStructKeepsValidatorError(t *testing.T) {
	err := Validate(42)

	assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
	var invalid *validator.InvalidValidationError
	assert.True(t, errors.As(err, &invalid), "validator error lost: %v", err)
}
