// Package database builds *sql.DB pools with sane pool limits and
// connection retries, configured through functional options.
package database

import (
	"database/sql"
	"fmt"
	"time"
)

type settings struct {
	driver          string
	dataSource      string
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	connMaxIdleTime time.Duration
	retryAttempts   int
	retryDelay      time.Duration
}

type Option func(*settings)

func WithDriver(driver string) Option {
	return func(s *settings) { s.driver = driver }
}

func WithDataSource(dsn string) Option {
	return func(s *settings) { s.dataSource = dsn }
}

func WithMaxOpenConns(n int) Option {
	return func(s *settings) { s.maxOpenConns = n }
}

func WithMaxIdleConns(n int) Option {
	return func(s *settings) { s.maxIdleConns = n }
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(s *settings) { s.connMaxLifetime = d }
}

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(s *settings) { s.connMaxIdleTime = d }
}

func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *settings) {
		s.retryAttempts = attempts
		s.retryDelay = delay
	}
}

// New opens a connection pool and verifies it with a ping. The open is
// retried with a linearly growing delay, which papers over a database
// that is still coming up when the process starts.
func New(opts ...Option) (*sql.DB, error) {
	cfg := &settings{
		driver:          "sqlite3",
		dataSource:      ":memory:",
		maxOpenConns:    25,
		maxIdleConns:    5,
		connMaxLifetime: 5 * time.Minute,
		connMaxIdleTime: 2 * time.Minute,
		retryAttempts:   3,
		retryDelay:      time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.driver == "" {
		return nil, fmt.Errorf("database driver cannot be empty")
	}
	if cfg.dataSource == "" {
		return nil, fmt.Errorf("database data source cannot be empty")
	}

	var lastErr error
	for attempt := 0; attempt < cfg.retryAttempts; attempt++ {
		db, err := sql.Open(cfg.driver, cfg.dataSource)
		if err == nil {
			db.SetMaxOpenConns(cfg.maxOpenConns)
			db.SetMaxIdleConns(cfg.maxIdleConns)
			db.SetConnMaxLifetime(cfg.connMaxLifetime)
			db.SetConnMaxIdleTime(cfg.connMaxIdleTime)

			if err = db.Ping(); err == nil {
				return db, nil
			}
			db.Close()
		}
		lastErr = err

		if attempt < cfg.retryAttempts-1 {
			time.Sleep(time.Duration(attempt+1) * cfg.retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.retryAttempts, lastErr)
}
