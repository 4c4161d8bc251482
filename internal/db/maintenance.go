package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
)

// CheckpointResult is the outcome of a WAL checkpoint.
type CheckpointResult struct {
	Busy         int
	LogFrames    int
	Checkpointed int
}

// IsWALMode checks if the database is in WAL journal mode.
func IsWALMode(db *sql.DB) (bool, error) {
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return false, err
	}
	return strings.EqualFold(mode, "wal"), nil
}

// Checkpoint truncates the WAL file into the main database.
// It is a no-op for databases that are not in WAL mode.
func Checkpoint(db *sql.DB, log *logger.Logger) (CheckpointResult, error) {
	var res CheckpointResult

	isWAL, err := IsWALMode(db)
	if err != nil {
		return res, fmt.Errorf("failed to check journal mode: %w", err)
	}

	if !isWAL {
		log.Debug("database not in WAL mode, skipping WAL checkpoint")
		return res, nil
	}

	if err := db.QueryRow("PRAGMA wal_checkpoint(TRUNCATE)").
		Scan(&res.Busy, &res.LogFrames, &res.Checkpointed); err != nil {
		return res, fmt.Errorf("failed to execute WAL checkpoint: %w", err)
	}

	WALCheckpointInc("truncate")

	if res.Busy > 0 {
		log.Warnf("WAL checkpoint encountered %d busy pages (some pages not checkpointed)", res.Busy)
	}

	return res, nil
}

// DBTotalSize returns the combined size of the database file and its -wal and -shm companions.
// Missing files count as zero.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64

	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}

	DBSizeLog(total)

	return total, nil
}
