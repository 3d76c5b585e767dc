package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ConnectConfig holds the settings needed to open the postgres connection pool.
type ConnectConfig struct {
	Driver          string
	Host            string
	Port            string
	UserName        string
	Password        string
	Name            string
	SSLMode         string
	RetryCount      int
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c ConnectConfig) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.UserName, c.Password, c.Name, c.SSLMode)
}

// Connect opens the connection pool and verifies it with a ping, retrying up
// to RetryCount times before giving up.
func Connect(ctx context.Context, logger ectologger.Logger, config ConnectConfig) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	attempts := config.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = sqlx.ConnectContext(ctx, config.Driver, config.dsn())
		if err == nil {
			break
		}

		logger.WithContext(ctx).WithError(err).Warnf("Failed to connect to database (attempt %d/%d)", attempt, attempts)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	logger.WithContext(ctx).WithFields(map[string]any{
		"host": config.Host,
		"port": config.Port,
		"name": config.Name,
	}).Info("Connected to database")

	return db, nil
}
