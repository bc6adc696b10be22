package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column widths for the fixed-width dumps. These match the layout TaskMaster
// debug captures have always used.
const (
	projectNameWidth = 20
	taskTitleWidth   = 20
	taskTypeWidth    = 7
	taskStatusWidth  = 6
	createdDateLen   = 10 // date portion of an ISO timestamp
)

// WriteText renders the full report as the human-readable dump.
func (r *Report) WriteText(w io.Writer) {
	fprintln(w, "TaskMaster Database Debugger")
	fprintln(w, strings.Repeat("=", 40))
	fprintf(w, "Examining database: %s\n", r.Path)
	fprintln(w, strings.Repeat("=", 60))

	WriteSchema(w, r.Tables)
	WriteProjects(w, r.Projects)
	WriteTasks(w, r.Tasks)

	fprintln(w)
	fprintln(w, "Database examination complete!")
	fprintln(w)
	fprintln(w, "If you see issues:")
	fprintln(w, "1. No projects: Create a project in TaskMaster first")
	fprintln(w, "2. Missing NextNumber column: Database migration may have failed")
	fprintln(w, "3. No task specs: Try saving a spec and check again")
}

// WriteSchema renders the table catalog as an indented listing.
func WriteSchema(w io.Writer, tables []Table) {
	fprintln(w)
	fprintln(w, "DATABASE SCHEMA:")

	for _, table := range tables {
		fprintln(w)
		fprintf(w, "  Table: %s\n", table.Name)

		for _, col := range table.Columns {
			fprintf(w, "    - %s (%s)\n", col.Name, col.Type)
		}
	}
}

// WriteProjects renders the Projects section: error, empty, or aligned table.
func WriteProjects(w io.Writer, section ProjectsSection) {
	fprintln(w)
	fprintln(w, "PROJECTS:")

	if section.Err != "" {
		fprintf(w, "  Error reading projects: %s\n", section.Err)

		return
	}

	if len(section.Rows) == 0 {
		fprintln(w, "  No projects found.")

		return
	}

	fprintln(w, "  ID | Name                 | TaskCount | NextNumber | LastUpdated")
	fprintln(w, "  ---|----------------------|-----------|------------|-------------")

	for _, p := range section.Rows {
		fprintf(w, "  %2d | %s | %9d | %10d | %s\n",
			p.ID, cell(p.Name, projectNameWidth), p.TaskCount, p.NextNumber, p.LastUpdated)
	}
}

// WriteTasks renders the TaskSpecs section. The Created column is cut to its
// date portion.
func WriteTasks(w io.Writer, section TasksSection) {
	fprintln(w)
	fprintln(w, "TASK SPECS:")

	if section.Err != "" {
		fprintf(w, "  Error reading tasks: %s\n", section.Err)

		return
	}

	if len(section.Rows) == 0 {
		fprintln(w, "  No task specs found.")

		return
	}

	fprintln(w, "  ID | ProjID | Num | Title                | Type    | Status | Created")
	fprintln(w, "  ---|--------|-----|----------------------|---------|--------|----------")

	for _, t := range section.Rows {
		created := t.Created
		if len(created) > createdDateLen {
			created = created[:createdDateLen]
		}

		fprintf(w, "  %2d | %6d | %3d | %s | %s | %s | %s\n",
			t.ID, t.ProjectID, t.Number,
			cell(t.Title, taskTitleWidth), cell(t.Type, taskTypeWidth), cell(t.Status, taskStatusWidth),
			created)
	}
}

// cell truncates and pads s to exactly width display columns.
// Display width, not byte length: project names are user input and the
// alignment should survive non-ASCII.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func fprintf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format, a...)
}
