package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ProjectsSection holds the Projects dump. Exactly one of Err or Rows is
// meaningful: a query failure (typically a missing table or column) is
// captured here instead of aborting the report.
type ProjectsSection struct {
	Rows []Project `json:"rows"`
	Err  string    `json:"error,omitempty"`
}

// TasksSection holds the TaskSpecs dump with the same three-way contract as
// ProjectsSection: failed, empty, or populated.
type TasksSection struct {
	Rows []TaskSpec `json:"rows"`
	Err  string     `json:"error,omitempty"`
}

// Report is the structured result of one inspection run.
type Report struct {
	Path     string          `json:"path"`
	Tables   []Table         `json:"tables"`
	Projects ProjectsSection `json:"projects"`
	Tasks    TasksSection    `json:"task_specs"`
}

// Build runs the full inspection against an open database. Catalog failures
// abort the report; per-table query failures are recorded in their section and
// the remaining sections still run.
func Build(ctx context.Context, db *DB) (*Report, error) {
	tables, err := db.Tables(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Path: db.Path(), Tables: tables}

	projects, projErr := db.Projects(ctx)
	if projErr != nil {
		report.Projects.Err = projErr.Error()
	} else {
		report.Projects.Rows = projects
	}

	tasks, taskErr := db.TaskSpecs(ctx, nil)
	if taskErr != nil {
		report.Tasks.Err = taskErr.Error()
	} else {
		report.Tasks.Rows = tasks
	}

	return report, nil
}

// Orphans returns the TaskSpecs whose ProjectID matches no Project. The check
// only applies when both sections were read successfully; a failed section
// yields no orphans rather than a false positive.
func (r *Report) Orphans() []TaskSpec {
	if r.Projects.Err != "" || r.Tasks.Err != "" {
		return nil
	}

	known := make(map[int64]bool, len(r.Projects.Rows))
	for _, p := range r.Projects.Rows {
		known[p.ID] = true
	}

	var orphans []TaskSpec

	for _, t := range r.Tasks.Rows {
		if !known[t.ProjectID] {
			orphans = append(orphans, t)
		}
	}

	return orphans
}

// WriteJSON renders the report as indented JSON followed by a newline.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	data = append(data, '\n')

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
