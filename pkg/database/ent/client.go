package ent

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

// DSN builds the data source name for cfg.Driver.
func DSN(cfg settings.Database) (string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=True",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Database,
			cfg.Password,
		), nil
	default:
		return "", errors.Wrap(ErrUnsupportedDriver, cfg.Driver)
	}
}

// NewDriver opens, configures and pings the database, then wraps it in an Ent driver.
func NewDriver(ctx context.Context, cfg settings.Database) (*entsql.Driver, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, apperr.Wrap(ErrOpenFailed, err)
	}

	// Configure pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, apperr.Wrap(ErrPingFailed, err)
	}

	return entsql.OpenDB(cfg.Driver, db), nil
}
