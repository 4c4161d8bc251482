// Package sqlite implements the record store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goran-ethernal/ChainScanner/internal/common"
	"github.com/goran-ethernal/ChainScanner/internal/db"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/metrics"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgstore "github.com/goran-ethernal/ChainScanner/pkg/store"
	"github.com/mattn/go-sqlite3"
	"github.com/russross/meddler"
)

const (
	driverName = "sqlite"

	// keysPerQuery keeps IN lists well below SQLITE_MAX_VARIABLE_NUMBER.
	keysPerQuery = 500
)

//go:embed migrations/001_records.sql
var mig001 string

//go:embed migrations/002_scan_cursors.sql
var mig002 string

var _ pkgstore.Store = (*Store)(nil)

// Store persists records in SQLite, one table per record kind.
type Store struct {
	db  *sql.DB
	cfg config.DatabaseConfig
	log *logger.Logger
}

// New opens the database, applies migrations and returns a ready store.
func New(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithComponent(common.ComponentStore)

	sqlDB, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Infow("sqlite store ready", "path", cfg.Path, "journal_mode", cfg.JournalMode)

	return &Store{db: sqlDB, cfg: cfg, log: log}, nil
}

// RunMigrations applies the record and cursor migrations.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	return db.RunMigrationsDB(log, sqlDB, []db.Migration{
		{ID: "001_records.sql", SQL: mig001},
		{ID: "002_scan_cursors.sql", SQL: mig002},
	})
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FindMaxBlock returns the highest block persisted for the kind.
func (s *Store) FindMaxBlock(ctx context.Context, kind record.Kind) (uint64, bool, error) {
	table, err := tableOf(kind)
	if err != nil {
		return 0, false, err
	}

	defer observe("find_max_block", time.Now())

	query, args, err := sq.Select("MAX(block)").From(table).ToSql()
	if err != nil {
		return 0, false, err
	}

	var maxBlock sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&maxBlock); err != nil {
		metrics.DBErrorsInc(driverName, "find_max_block")
		return 0, false, fmt.Errorf("failed to find max block of %s: %w", table, err)
	}

	if !maxBlock.Valid {
		return 0, false, nil
	}

	return uint64(maxBlock.Int64), true, nil
}

// ExistingKeys returns the subset of keys already persisted for the kind.
func (s *Store) ExistingKeys(ctx context.Context, kind record.Kind, keys []string) (map[string]struct{}, error) {
	table, err := tableOf(kind)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{})
	if len(keys) == 0 {
		return existing, nil
	}

	defer observe("existing_keys", time.Now())

	for i := 0; i < len(keys); i += keysPerQuery {
		chunk := keys[i:min(i+keysPerQuery, len(keys))]

		query, args, err := sq.Select("log_id").From(table).Where(sq.Eq{"log_id": chunk}).ToSql()
		if err != nil {
			return nil, err
		}

		if err := s.collectKeys(ctx, existing, query, args); err != nil {
			metrics.DBErrorsInc(driverName, "existing_keys")
			return nil, fmt.Errorf("failed to query existing keys of %s: %w", table, err)
		}
	}

	return existing, nil
}

func (s *Store) collectKeys(ctx context.Context, into map[string]struct{}, query string, args []any) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return err
		}
		into[key] = struct{}{}
	}

	return rows.Err()
}

// InsertManyUnordered inserts every record on its own statement inside a single transaction.
// A unique violation on log_id counts as a conflict and leaves the transaction usable.
func (s *Store) InsertManyUnordered(
	ctx context.Context, kind record.Kind, records []record.Record,
) (pkgstore.WriteReport, error) {
	var report pkgstore.WriteReport

	table, err := tableOf(kind)
	if err != nil {
		return report, err
	}
	if len(records) == 0 {
		return report, nil
	}

	defer observe("insert_many", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.DBErrorsInc(driverName, "begin")
		return report, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, rec := range records {
		if rec.Kind() != kind {
			report.RecordError(fmt.Errorf("record of kind %s written to %s", rec.Kind(), kind))
			continue
		}

		err := insert(ctx, tx, table, rec)
		switch {
		case err == nil:
			report.Inserted++
		case isUniqueViolation(err):
			report.Conflicts++
		default:
			metrics.DBErrorsInc(driverName, "insert")
			report.RecordError(fmt.Errorf("insert %s into %s: %w", rec.GetKey(), table, err))
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.DBErrorsInc(driverName, "commit")
		return pkgstore.WriteReport{}, fmt.Errorf("failed to commit %d records into %s: %w", len(records), table, err)
	}

	return report, nil
}

func insert(ctx context.Context, tx *sql.Tx, table string, rec record.Record) error {
	cols, vals, err := db.Row(meddler.SQLite, rec)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert(table).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// LoadCursor returns the last completed block of the named scanner.
func (s *Store) LoadCursor(ctx context.Context, name string) (uint64, bool, error) {
	defer observe("load_cursor", time.Now())

	query, args, err := sq.Select("last_block").From("scan_cursors").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return 0, false, err
	}

	var block int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&block)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		metrics.DBErrorsInc(driverName, "load_cursor")
		return 0, false, fmt.Errorf("failed to load cursor %s: %w", name, err)
	}

	return uint64(block), true, nil
}

// SaveCursor records the last completed block of the named scanner. The cursor never moves back.
func (s *Store) SaveCursor(ctx context.Context, name string, block uint64) error {
	defer observe("save_cursor", time.Now())

	query, args, err := sq.Insert("scan_cursors").
		Columns("name", "last_block", "updated_at").
		Values(name, block, time.Now().UTC().Unix()).
		Suffix("ON CONFLICT(name) DO UPDATE SET last_block = MAX(last_block, excluded.last_block), updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		metrics.DBErrorsInc(driverName, "save_cursor")
		return fmt.Errorf("failed to save cursor %s: %w", name, err)
	}

	return nil
}

// Close checkpoints the WAL when configured and closes the database.
func (s *Store) Close() error {
	if s.cfg.WALCheckpointOnClose {
		if res, err := db.Checkpoint(s.db, s.log); err != nil {
			s.log.Warnw("WAL checkpoint on close failed", "error", err)
		} else {
			s.log.Debugw("WAL checkpoint on close", "log_frames", res.LogFrames, "checkpointed", res.Checkpointed)
		}
	}

	if size, err := db.DBTotalSize(s.cfg.Path); err == nil {
		s.log.Infow("closing sqlite store", "path", s.cfg.Path, "size_bytes", size)
	}

	return s.db.Close()
}

func tableOf(kind record.Kind) (string, error) {
	table := kind.Table()
	if table == "" {
		return "", fmt.Errorf("%w: %q", pkgstore.ErrUnknownKind, kind)
	}
	return table, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func observe(operation string, start time.Time) {
	metrics.DBQueryInc(driverName, operation)
	metrics.DBQueryDuration(driverName, operation, time.Since(start))
}
