// Package postgres implements the record store on PostgreSQL.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/goran-ethernal/ChainScanner/internal/common"
	"github.com/goran-ethernal/ChainScanner/internal/db"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/metrics"
	"github.com/goran-ethernal/ChainScanner/internal/record"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgstore "github.com/goran-ethernal/ChainScanner/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/russross/meddler"
)

const (
	driverName = "postgres"

	// PostgreSQL error codes
	pgErrUniqueViolation = "23505"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	_ pkgstore.Store = (*Store)(nil)

	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
)

// Store persists records in PostgreSQL, one table per record kind.
type Store struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// New connects to the database, applies migrations and returns a ready store.
func New(ctx context.Context, cfg config.PostgresConfig, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithComponent(common.ComponentStore)

	if err := RunMigrations(cfg.DSN); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Infow("postgres store ready", "host", poolCfg.ConnConfig.Host, "database", poolCfg.ConnConfig.Database)

	return &Store{pool: pool, log: log}, nil
}

// RunMigrations applies the embedded migrations to the database behind dsn.
func RunMigrations(dsn string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("can't connect to postgres database: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("can't apply postgres database migrations: %w", err)
	}

	return nil
}

// migrateURL rewrites a postgres DSN to the scheme of the pgx/v5 migrate driver.
func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// Pool exposes the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// FindMaxBlock returns the highest block persisted for the kind.
func (s *Store) FindMaxBlock(ctx context.Context, kind record.Kind) (uint64, bool, error) {
	table, err := tableOf(kind)
	if err != nil {
		return 0, false, err
	}

	defer observe("find_max_block", time.Now())

	query, args, err := psql.Select("MAX(block)").From(table).ToSql()
	if err != nil {
		return 0, false, err
	}

	var maxBlock *int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&maxBlock); err != nil {
		metrics.DBErrorsInc(driverName, "find_max_block")
		return 0, false, fmt.Errorf("failed to find max block of %s: %w", table, err)
	}

	if maxBlock == nil {
		return 0, false, nil
	}

	return uint64(*maxBlock), true, nil
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

	query, args, err := psql.Select("log_id").From(table).Where("log_id = ANY(?)", keys).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		metrics.DBErrorsInc(driverName, "existing_keys")
		return nil, fmt.Errorf("failed to query existing keys of %s: %w", table, err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		metrics.DBErrorsInc(driverName, "existing_keys")
		return nil, fmt.Errorf("failed to read existing keys of %s: %w", table, err)
	}

	for _, k := range found {
		existing[k] = struct{}{}
	}

	return existing, nil
}

// InsertManyUnordered inserts every record with its own statement.
// ON CONFLICT DO NOTHING turns duplicate keys into conflicts without aborting anything.
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

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if rec.Kind() != kind {
			report.RecordError(fmt.Errorf("record of kind %s written to %s", rec.Kind(), kind))
			continue
		}

		inserted, err := s.insert(ctx, table, rec)
		switch {
		case err == nil && inserted:
			report.Inserted++
		case err == nil, isDuplicateKeyError(err):
			report.Conflicts++
		default:
			metrics.DBErrorsInc(driverName, "insert")
			report.RecordError(fmt.Errorf("insert %s into %s: %w", rec.GetKey(), table, err))
		}
	}

	return report, nil
}

func (s *Store) insert(ctx context.Context, table string, rec record.Record) (bool, error) {
	cols, vals, err := db.Row(meddler.PostgreSQL, rec)
	if err != nil {
		return false, err
	}

	query, args, err := psql.Insert(table).
		Columns(cols...).
		Values(vals...).
		Suffix("ON CONFLICT (log_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// LoadCursor returns the last completed block of the named scanner.
func (s *Store) LoadCursor(ctx context.Context, name string) (uint64, bool, error) {
	defer observe("load_cursor", time.Now())

	query, args, err := psql.Select("last_block").From("scan_cursors").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return 0, false, err
	}

	var block int64
	err = s.pool.QueryRow(ctx, query, args...).Scan(&block)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
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

	query, args, err := psql.Insert("scan_cursors").
		Columns("name", "last_block", "updated_at").
		Values(name, int64(block), time.Now().UTC().Unix()).
		Suffix("ON CONFLICT (name) DO UPDATE SET last_block = GREATEST(scan_cursors.last_block, EXCLUDED.last_block), updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		metrics.DBErrorsInc(driverName, "save_cursor")
		return fmt.Errorf("failed to save cursor %s: %w", name, err)
	}

	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func tableOf(kind record.Kind) (string, error) {
	table := kind.Table()
	if table == "" {
		return "", fmt.Errorf("%w: %q", pkgstore.ErrUnknownKind, kind)
	}
	return table, nil
}

// isDuplicateKeyError checks if error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation
	}
	return false
}

func observe(operation string, start time.Time) {
	metrics.DBQueryInc(driverName, operation)
	metrics.DBQueryDuration(driverName, operation, time.Since(start))
}
