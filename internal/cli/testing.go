package cli

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver for fixtures
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "tmdbg" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tmdbg", "--cwd", r.Dir}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader
	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tmdbg", "--cwd", r.Dir}, args...)
	code := Run(inReader, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// DBPath returns the path of the working-directory database candidate.
func (r *CLI) DBPath() string {
	return filepath.Join(r.Dir, "taskmaster.db")
}

// CreateDB creates a SQLite database at path (relative paths resolve against
// the temp dir) and executes the given statements against it. Calling it for
// an existing database just runs the statements. Returns the absolute path.
func (r *CLI) CreateDB(path string, statements ...string) string {
	r.t.Helper()

	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		r.t.Fatalf("create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		r.t.Fatalf("open fixture database: %v", err)
	}
	defer db.Close()

	// Force the file header to be written even when no statements follow,
	// so an "empty database" fixture is still a valid SQLite file.
	all := append([]string{"CREATE TABLE __init__ (x INTEGER)", "DROP TABLE __init__"}, statements...)

	for _, stmt := range all {
		if _, execErr := db.Exec(stmt); execErr != nil {
			r.t.Fatalf("exec fixture statement %q: %v", stmt, execErr)
		}
	}

	return path
}

// SeedTaskMaster creates the canonical TaskMaster fixture in the working
// directory: one project and one task spec.
func (r *CLI) SeedTaskMaster() string {
	r.t.Helper()

	return r.CreateDB("taskmaster.db",
		`CREATE TABLE Projects (
			Id INTEGER PRIMARY KEY,
			Name TEXT NOT NULL,
			TaskCount INTEGER NOT NULL,
			NextNumber INTEGER NOT NULL,
			LastUpdated TEXT NOT NULL
		)`,
		`CREATE TABLE TaskSpecs (
			Id INTEGER PRIMARY KEY,
			ProjectId INTEGER NOT NULL,
			Number INTEGER NOT NULL,
			Title TEXT NOT NULL,
			Type TEXT NOT NULL,
			Status TEXT NOT NULL,
			Created TEXT NOT NULL
		)`,
		`INSERT INTO Projects VALUES (1, 'Demo', 3, 4, '2024-01-01 10:00:00')`,
		`INSERT INTO TaskSpecs VALUES (1, 1, 1, 'Fix bug', 'bug', 'open', '2024-01-01T00:00:00')`,
	)
}

// WriteConfig writes a project config file (.tmdbg.json) in the temp dir.
func (r *CLI) WriteConfig(content string) {
	r.t.Helper()

	err := os.WriteFile(filepath.Join(r.Dir, ".tmdbg.json"), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("write config: %v", err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
