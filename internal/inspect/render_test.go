package inspect

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteProjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section ProjectsSection
		want    string
	}{
		{
			name:    "query error is inline",
			section: ProjectsSection{Err: "no such table: Projects"},
			want: "\nPROJECTS:\n" +
				"  Error reading projects: no such table: Projects\n",
		},
		{
			name:    "empty",
			section: ProjectsSection{},
			want: "\nPROJECTS:\n" +
				"  No projects found.\n",
		},
		{
			name: "rows align and long names truncate",
			section: ProjectsSection{Rows: []Project{
				{ID: 1, Name: "Demo", TaskCount: 3, NextNumber: 4, LastUpdated: "2024-01-01 10:00:00"},
				{ID: 12, Name: "A very long project name here", TaskCount: 100, NextNumber: 101, LastUpdated: "2024-06-30 23:59:59"},
			}},
			want: "\nPROJECTS:\n" +
				"  ID | Name                 | TaskCount | NextNumber | LastUpdated\n" +
				"  ---|----------------------|-----------|------------|-------------\n" +
				"   1 | Demo                 |         3 |          4 | 2024-01-01 10:00:00\n" +
				"  12 | A very long project  |       100 |        101 | 2024-06-30 23:59:59\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder

			WriteProjects(&buf, tt.section)

			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("rendered section mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section TasksSection
		want    string
	}{
		{
			name:    "query error is inline",
			section: TasksSection{Err: "no such table: TaskSpecs"},
			want: "\nTASK SPECS:\n" +
				"  Error reading tasks: no such table: TaskSpecs\n",
		},
		{
			name:    "empty",
			section: TasksSection{},
			want: "\nTASK SPECS:\n" +
				"  No task specs found.\n",
		},
		{
			name: "created column keeps only the date",
			section: TasksSection{Rows: []TaskSpec{
				{ID: 1, ProjectID: 1, Number: 1, Title: "Fix bug", Type: "bug", Status: "open", Created: "2024-01-01T00:00:00"},
				{ID: 2, ProjectID: 1, Number: 2, Title: "Short", Type: "chore", Status: "closed", Created: "2024-02-03"},
			}},
			want: "\nTASK SPECS:\n" +
				"  ID | ProjID | Num | Title                | Type    | Status | Created\n" +
				"  ---|--------|-----|----------------------|---------|--------|----------\n" +
				"   1 |      1 |   1 | Fix bug              | bug     | open   | 2024-01-01\n" +
				"   2 |      1 |   2 | Short                | chore   | closed | 2024-02-03\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder

			WriteTasks(&buf, tt.section)

			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("rendered section mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteSchema(t *testing.T) {
	t.Parallel()

	tables := []Table{
		{Name: "Projects", Columns: []Column{{Name: "Id", Type: "INTEGER"}, {Name: "Name", Type: "TEXT"}}},
		{Name: "Meta", Columns: nil},
	}

	var buf strings.Builder

	WriteSchema(&buf, tables)

	want := "\nDATABASE SCHEMA:\n" +
		"\n  Table: Projects\n" +
		"    - Id (INTEGER)\n" +
		"    - Name (TEXT)\n" +
		"\n  Table: Meta\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("rendered schema mismatch (-want +got):\n%s", diff)
	}
}

func TestCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 5, "abcde"},
		{"", 3, "   "},
		{"héllo", 6, "héllo "},
	}

	for _, tt := range tests {
		tt := tt
		if got := cell(tt.in, tt.width); got != tt.want {
			t.Errorf("cell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
