package implementations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/logger"
)

// Open connects to Postgres and sizes the pool for one connection per
// in-flight transfer. Each unit of work pins a connection until commit.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxIdleConns(20)
	db.SetMaxOpenConns(30)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(15 * time.Minute)

	logger.Info("postgres connection pool ready", logger.Fields{
		"maxOpenConns": 30,
	})
	return db, nil
}
