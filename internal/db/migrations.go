package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	UpDownSeparator   = "-- +migrate Up"
	DownMarker        = "-- +migrate Down"
	dbPrefixReplacer  = "/*dbprefix*/"
	NoLimitMigrations = 0 // indicate that there is no limit on the number of migrations to run

	migrationDirections = 2
)

// Migration is a single SQL migration. SQL holds the Down section followed by the Up section.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}

// RunMigrationsDB applies all pending migrations.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return RunMigrationsDBExtended(log, db, migrations, migrate.Up, NoLimitMigrations)
}

// RunMigrationsDBExtended is an extended version of RunMigrationsDB that allows
// dir: can be migrate.Up or migrate.Down
// maxMigrations: Will apply at most `max` migrations. Pass 0 for no limit
func RunMigrationsDBExtended(log *logger.Logger,
	db *sql.DB,
	migrations []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int) error {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}

	// In case of partial execution we ignore the base migrations
	if maxMigrations != NoLimitMigrations {
		migrate.SetIgnoreUnknown(true)
	}

	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		up, down, err := splitMigration(m)
		if err != nil {
			return err
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.Prefix + m.ID,
			Up:   []string{up},
			Down: []string{down},
		})
		ids = append(ids, m.Prefix+m.ID)
	}

	list := strings.Join(ids, ", ")

	log.Debugf("running migrations: (max %d/%d) migrations: %s", maxMigrations, len(ids), list)

	n, err := migrate.ExecMax(db, "sqlite3", source, dir, maxMigrations)
	if err != nil {
		return fmt.Errorf("error executing migration (max %d/%d) migrations: %s . Err: %w",
			maxMigrations, len(ids), list, err)
	}

	log.Infof("successfully ran %d migrations from migrations: %s", n, list)
	return nil
}

// splitMigration returns the Up and Down statements of a migration.
func splitMigration(m Migration) (up, down string, err error) {
	prefixed := strings.ReplaceAll(m.SQL, dbPrefixReplacer, m.Prefix)
	parts := strings.Split(prefixed, UpDownSeparator)

	if len(parts) < migrationDirections {
		return "", "", fmt.Errorf("migration %s missing '%s' separator", m.ID, UpDownSeparator)
	}

	down = parts[0]
	if idx := strings.Index(down, DownMarker); idx != -1 {
		down = down[idx+len(DownMarker):]
	}

	return strings.TrimSpace(parts[1]), strings.TrimSpace(down), nil
}
