package settings

// Config groups every section used by the observers and their adapters.
type Config struct {
	Logger        Logger        `mapstructure:"logger"`
	Redis         Redis         `mapstructure:"redis"`
	Kafka         Kafka         `mapstructure:"kafka"`
	Elasticsearch Elasticsearch `mapstructure:"elasticsearch"`
	MongoDB       MongoDB       `mapstructure:"mongodb"`
	WideColumn    WideColumn    `mapstructure:"widecolumn"`
	Database      Database      `mapstructure:"database"`
	SnowflakeNode SnowflakeNode `mapstructure:"snowflake_node"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress"`
}

// Redis is the configuration for Redis
type Redis struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Password        string `mapstructure:"password"`
	Database        int    `mapstructure:"database" validate:"gte=0"`
	PoolSize        int    `mapstructure:"pool_size" validate:"gte=0"`
	MinIdleConns    int    `mapstructure:"min_idle_conns" validate:"gte=0"`
	PoolTimeout     int    `mapstructure:"pool_timeout"`      // Seconds
	DialTimeout     int    `mapstructure:"dial_timeout"`      // Seconds
	ReadTimeout     int    `mapstructure:"read_timeout"`      // Seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`     // Seconds
	MaxRetries      int    `mapstructure:"max_retries"`       // Number of retries
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff"` // Milliseconds
	MinRetryBackoff int    `mapstructure:"min_retry_backoff"` // Milliseconds
}

// Kafka is the configuration for Kafka
type Kafka struct {
	Brokers         []string `mapstructure:"brokers" validate:"required,min=1,dive,required"`
	Topic           string   `mapstructure:"topic" validate:"required"`
	ClientID        string   `mapstructure:"client_id"`
	MaxMessageBytes int      `mapstructure:"max_message_bytes" validate:"gte=0"` // Bytes
	Timeout         int      `mapstructure:"timeout" validate:"gte=0"`           // Seconds
	MaxRetries      int      `mapstructure:"max_retries" validate:"gte=0"`       // Number of retries
	RetryBackoff    int      `mapstructure:"retry_backoff" validate:"gte=0"`     // Milliseconds
	Idempotent      bool     `mapstructure:"idempotent"`
}

// Elasticsearch is the configuration for Elasticsearch
type Elasticsearch struct {
	Addresses []string `mapstructure:"addresses" validate:"required,min=1,dive,url"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index" validate:"required"`
	Refresh   string   `mapstructure:"refresh" validate:"omitempty,oneof=true false wait_for"`
}

// MongoDB is the configuration for MongoDB
type MongoDB struct {
	Host            string `mapstructure:"host" validate:"required"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	Collection      string `mapstructure:"collection" validate:"required"`
	MaxPoolSize     uint64 `mapstructure:"max_pool_size"`
	MinPoolSize     uint64 `mapstructure:"min_pool_size"`
	MaxConnIdleTime uint64 `mapstructure:"max_conn_idle_time"` // Seconds
	Port            int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Timeout         int    `mapstructure:"timeout" validate:"gte=0"` // Seconds
}

// WideColumn is the configuration for Cassandra compatible stores
type WideColumn struct {
	Hosts       []string `mapstructure:"hosts" validate:"required,min=1,dive,required"`
	Keyspace    string   `mapstructure:"keyspace" validate:"required"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	Port        int      `mapstructure:"port" validate:"gte=0,lte=65535"`
	Timeout     int      `mapstructure:"timeout" validate:"gte=0"` // Seconds
	Retries     int      `mapstructure:"retries" validate:"gte=0"`
	Consistency string   `mapstructure:"consistency" validate:"omitempty,oneof=ONE QUORUM LOCAL_QUORUM ALL"`
}

// Database is the configuration for the SQL database
type Database struct {
	Driver          string `mapstructure:"driver" validate:"required,oneof=mysql postgres"`
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"gte=0"` // Seconds
}

type Snowflake struct {
	Epoch     int64 `mapstructure:"epoch" validate:"gte=0"`
	Node      uint8 `mapstructure:"node" validate:"lte=22"`
	Step      uint8 `mapstructure:"step" validate:"lte=22"`
	TotalBits uint8 `mapstructure:"total_bits" validate:"lte=63"`
}

type SnowflakeNode struct {
	Config   Snowflake `mapstructure:"config"`
	WorkerID int64     `mapstructure:"worker_id" validate:"gte=0"`
}
