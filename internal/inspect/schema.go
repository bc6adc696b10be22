package inspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Column is one (name, declared type) pair from PRAGMA table_info.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table describes one table in the database catalog, columns in declaration order.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Tables walks the database catalog and returns every table with its columns.
// Catalog failures are fatal: if sqlite_master cannot be read the file is not
// a usable SQLite database and there is nothing to report.
func (d *DB) Tables(ctx context.Context) ([]Table, error) {
	if d == nil || d.sql == nil {
		return nil, errors.New("tables: database is not open")
	}

	rows, err := d.sql.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type='table'`)
	if err != nil {
		return nil, fmt.Errorf("query table catalog: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string

		if scanErr := rows.Scan(&name); scanErr != nil {
			return nil, fmt.Errorf("scan table name: %w", scanErr)
		}

		names = append(names, name)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("read table catalog: %w", rowsErr)
	}

	tables := make([]Table, 0, len(names))

	for _, name := range names {
		columns, colErr := d.columns(ctx, name)
		if colErr != nil {
			return nil, colErr
		}

		tables = append(tables, Table{Name: name, Columns: columns})
	}

	return tables, nil
}

// columns reads the column catalog for one table.
func (d *DB) columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := d.sql.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var columns []Column

	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)

		if scanErr := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); scanErr != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, scanErr)
		}

		columns = append(columns, Column{Name: name, Type: typ})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, rowsErr)
	}

	return columns, nil
}
