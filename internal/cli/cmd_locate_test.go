package cli

import (
	"path/filepath"
	"testing"
)

func TestLocateCommand(t *testing.T) {
	t.Parallel()

	t.Run("finds database in working directory", func(t *testing.T) {
		t.Parallel()

		r := NewCLI(t)
		path := r.SeedTaskMaster()

		stdout := r.MustRun("locate")

		if stdout != path {
			t.Errorf("locate = %q, want %q", stdout, path)
		}
	})

	t.Run("not found lists all candidates", func(t *testing.T) {
		t.Parallel()

		r := NewCLI(t)
		r.Env["LOCALAPPDATA"] = filepath.Join(r.Dir, "appdata")

		stdout := r.MustRun("locate")

		AssertContains(t, stdout, "Could not find taskmaster.db database file.")
		AssertContains(t, stdout, filepath.Join(r.Dir, "appdata", "TaskMaster", "taskmaster.db"))
		AssertContains(t, stdout, filepath.Join(r.Dir, "taskmaster.db"))
	})

	t.Run("search paths from config are checked", func(t *testing.T) {
		t.Parallel()

		r := NewCLI(t)
		path := r.CreateDB(filepath.Join("data", "TaskMaster", "taskmaster.db"))

		r.WriteConfig(`{"search_paths": ["data"]}`)

		stdout := r.MustRun("locate")

		if stdout != path {
			t.Errorf("locate = %q, want %q", stdout, path)
		}
	})
}
