package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"bookCatalog/package/logger"
)

const (
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

// Open connects to the database and pings it. For sqlite dsn is a file path.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var conn string
	switch driver {
	case SQLite:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		// Immediate transactions take the write lock up front, so concurrent
		// writers queue on busy_timeout instead of failing on upgrade.
		conn = fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_txlock=immediate", dsn)
		logger.Log.Info(fmt.Sprintf("Opening sqlite database file=%s", dsn))
	case Postgres:
		conn = dsn
		logger.Log.Info("Connecting to postgres database")
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == SQLite {
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	logger.Log.Info("Connected to database")
	return db, nil
}
