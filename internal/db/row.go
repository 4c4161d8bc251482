package db

import (
	"fmt"

	"github.com/russross/meddler"
)

// Row returns the column names and write values of a meddler-tagged struct, primary key excluded.
// Values pass through the registered meddlers so addresses and hashes are stored as hex strings.
func Row(dialect *meddler.Database, src any) ([]string, []any, error) {
	cols, err := dialect.Columns(src, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns of %T: %w", src, err)
	}

	vals, err := dialect.Values(src, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read values of %T: %w", src, err)
	}

	if len(cols) != len(vals) {
		return nil, nil, fmt.Errorf("column/value mismatch for %T: %d != %d", src, len(cols), len(vals))
	}

	return cols, vals, nil
}
