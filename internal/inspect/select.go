package inspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotReadOnly is returned for shell queries that are not SELECT or PRAGMA.
// The connection is already mode=ro; the guard exists so typos fail with a
// clear message instead of a driver error.
var ErrNotReadOnly = errors.New("only SELECT and PRAGMA statements are allowed")

// Select runs an ad-hoc read-only query and returns column names plus all rows
// rendered as strings. NULL values come back as the literal "NULL".
func (d *DB) Select(ctx context.Context, query string) ([]string, [][]string, error) {
	trimmed := strings.TrimSpace(query)

	first, _, _ := strings.Cut(trimmed, " ")
	switch strings.ToUpper(first) {
	case "SELECT", "PRAGMA":
	default:
		return nil, nil, ErrNotReadOnly
	}

	rows, err := d.sql.QueryContext(ctx, trimmed)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns: %w", err)
	}

	var result [][]string

	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if scanErr := rows.Scan(ptrs...); scanErr != nil {
			return nil, nil, fmt.Errorf("scan row: %w", scanErr)
		}

		row := make([]string, len(columns))

		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}

		result = append(result, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, nil, rowsErr
	}

	return columns, result, nil
}
