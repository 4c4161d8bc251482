package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goran-ethernal/ChainScanner/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// DSN builds the go-sqlite3 connection string for cfg.
// Pragmas travel in the DSN so every pooled connection is opened with them.
func DSN(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Set("_journal_mode", cfg.JournalMode)
	q.Set("_synchronous", cfg.Synchronous)
	q.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	q.Set("_cache_size", strconv.Itoa(cfg.CacheSize))

	return "file:" + cfg.Path + "?" + q.Encode()
}

// NewSQLiteDBFromConfig opens the SQLite database described by cfg and verifies the connection.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Path, err)
	}

	return db, nil
}
