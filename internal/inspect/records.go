package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Project is one row of the Projects table. Timestamps stay as the raw text
// TaskMaster wrote; this tool reports, it does not interpret.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TaskCount   int64  `json:"task_count"`
	NextNumber  int64  `json:"next_number"`
	LastUpdated string `json:"last_updated"`
}

// TaskSpec is one row of the TaskSpecs table, associated with a Project via
// ProjectID. The association is not enforced by the schema.
type TaskSpec struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Number    int64  `json:"number"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Created   string `json:"created"`
}

// Projects reads all rows of the Projects table in table order.
func (d *DB) Projects(ctx context.Context) ([]Project, error) {
	start := time.Now()

	rows, err := d.sql.QueryContext(ctx,
		`SELECT Id, Name, TaskCount, NextNumber, LastUpdated FROM Projects`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project

	for rows.Next() {
		var p Project

		if scanErr := rows.Scan(&p.ID, &p.Name, &p.TaskCount, &p.NextNumber, &p.LastUpdated); scanErr != nil {
			return nil, fmt.Errorf("scan project: %w", scanErr)
		}

		projects = append(projects, p)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, rowsErr
	}

	slog.Debug("read projects", "rows", len(projects), "duration", time.Since(start))

	return projects, nil
}

// TaskSpecsOptions defines optional filters for TaskSpecs.
// The zero value means "all rows".
type TaskSpecsOptions struct {
	ProjectID int64 // ProjectID filters by exact project when > 0.
}

// TaskSpecs reads rows of the TaskSpecs table ordered by (ProjectId, Number).
func (d *DB) TaskSpecs(ctx context.Context, opts *TaskSpecsOptions) ([]TaskSpec, error) {
	options := TaskSpecsOptions{}
	if opts != nil {
		options = *opts
	}

	query := `SELECT Id, ProjectId, Number, Title, Type, Status, Created FROM TaskSpecs`

	var args []any

	if options.ProjectID > 0 {
		query += ` WHERE ProjectId = ?`
		args = append(args, options.ProjectID)
	}

	query += ` ORDER BY ProjectId, Number`

	start := time.Now()

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []TaskSpec

	for rows.Next() {
		var t TaskSpec

		if scanErr := rows.Scan(&t.ID, &t.ProjectID, &t.Number, &t.Title, &t.Type, &t.Status, &t.Created); scanErr != nil {
			return nil, fmt.Errorf("scan task spec: %w", scanErr)
		}

		tasks = append(tasks, t)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, rowsErr
	}

	slog.Debug("read task specs", "rows", len(tasks), "duration", time.Since(start))

	return tasks, nil
}

// Count returns the row count of a single table. Used by the interactive shell.
func (d *DB) Count(ctx context.Context, table string) (int64, error) {
	var count int64

	err := d.sql.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table)).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
