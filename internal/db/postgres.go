package db

import (
	"fmt"
	"time"

	"appfiy/backoffice/internal/logging"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	connectAttempts = 10
	connectBackoff  = 500 * time.Millisecond
)

// InitPostgres opens the sqlx pool behind the read paths and the health
// check. Postgres may still be starting, so the connect is retried.
func InitPostgres(dsn string) (*sqlx.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		conn, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			conn.SetMaxOpenConns(20)
			conn.SetMaxIdleConns(5)
			conn.SetConnMaxLifetime(30 * time.Minute)
			logging.Info("Connected to Postgres via sqlx", "attempt", attempt)
			return conn, nil
		}
		lastErr = err
		logging.Debug("Postgres not ready", "attempt", attempt, "error", err.Error())
		time.Sleep(connectBackoff)
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", connectAttempts, lastErr)
}
