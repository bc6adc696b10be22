package taskmaster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("app data dir wins over working directory", func(t *testing.T) {
		t.Parallel()

		appData := t.TempDir()
		cwd := t.TempDir()

		appDB := touch(t, filepath.Join(appData, "TaskMaster", "taskmaster.db"))
		touch(t, filepath.Join(cwd, "taskmaster.db"))

		cfg := Config{EffectiveCwd: cwd}
		env := map[string]string{"LOCALAPPDATA": appData}

		got, err := Locate(cfg, env)
		if err != nil {
			t.Fatal(err)
		}

		if got != appDB {
			t.Errorf("Locate = %q, want %q", got, appDB)
		}
	})

	t.Run("falls back to working directory", func(t *testing.T) {
		t.Parallel()

		cwd := t.TempDir()
		cwdDB := touch(t, filepath.Join(cwd, "taskmaster.db"))

		got, err := Locate(Config{EffectiveCwd: cwd}, map[string]string{})
		if err != nil {
			t.Fatal(err)
		}

		if got != cwdDB {
			t.Errorf("Locate = %q, want %q", got, cwdDB)
		}
	})

	t.Run("unset LOCALAPPDATA is skipped silently", func(t *testing.T) {
		t.Parallel()

		cwd := t.TempDir()

		_, err := Locate(Config{EffectiveCwd: cwd}, map[string]string{})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("Locate error = %v, want ErrDatabaseNotFound", err)
		}
	})

	t.Run("explicit db_path must exist", func(t *testing.T) {
		t.Parallel()

		cwd := t.TempDir()
		cfg := Config{EffectiveCwd: cwd, DBPath: filepath.Join(cwd, "missing.db")}

		_, err := Locate(cfg, map[string]string{})
		if !errors.Is(err, ErrDBPathMissing) {
			t.Errorf("Locate error = %v, want ErrDBPathMissing", err)
		}
	})

	t.Run("explicit db_path skips candidates", func(t *testing.T) {
		t.Parallel()

		cwd := t.TempDir()
		touch(t, filepath.Join(cwd, "taskmaster.db"))
		explicit := touch(t, filepath.Join(cwd, "other.db"))

		got, err := Locate(Config{EffectiveCwd: cwd, DBPath: explicit}, map[string]string{})
		if err != nil {
			t.Fatal(err)
		}

		if got != explicit {
			t.Errorf("Locate = %q, want %q", got, explicit)
		}
	})

	t.Run("directory named like the database is not a match", func(t *testing.T) {
		t.Parallel()

		cwd := t.TempDir()

		if err := os.MkdirAll(filepath.Join(cwd, "taskmaster.db"), 0o700); err != nil {
			t.Fatal(err)
		}

		_, err := Locate(Config{EffectiveCwd: cwd}, map[string]string{})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("Locate error = %v, want ErrDatabaseNotFound", err)
		}
	})
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	cfg := Config{
		EffectiveCwd: "/work",
		SearchPaths:  []string{"/data", "rel"},
	}
	env := map[string]string{"LOCALAPPDATA": "/appdata"}

	got := Candidates(cfg, env)

	want := []string{
		filepath.Join("/appdata", "TaskMaster", "taskmaster.db"),
		filepath.Join("/data", "TaskMaster", "taskmaster.db"),
		filepath.Join("/work", "rel", "TaskMaster", "taskmaster.db"),
		filepath.Join("/work", "taskmaster.db"),
	}

	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
