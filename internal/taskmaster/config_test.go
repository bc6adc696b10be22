package taskmaster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults when no config files exist", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()

		cfg, err := LoadConfig(LoadConfigInput{WorkDirOverride: workDir, Env: map[string]string{}})
		if err != nil {
			t.Fatal(err)
		}

		if cfg.DBPath != "" || len(cfg.SearchPaths) != 0 {
			t.Errorf("expected zero config, got %+v", cfg)
		}

		if cfg.EffectiveCwd != workDir {
			t.Errorf("EffectiveCwd = %q, want %q", cfg.EffectiveCwd, workDir)
		}

		if cfg.Sources.Global != "" || cfg.Sources.Project != "" {
			t.Errorf("expected no sources, got %+v", cfg.Sources)
		}
	})

	t.Run("project config with comments and trailing commas", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		writeFile(t, filepath.Join(workDir, ConfigFileName), `{
			// where the CI job keeps its copy
			"db_path": "fixtures/ci.db",
			"search_paths": ["/srv/taskmaster",],
		}`)

		cfg, err := LoadConfig(LoadConfigInput{WorkDirOverride: workDir, Env: map[string]string{}})
		if err != nil {
			t.Fatal(err)
		}

		if want := filepath.Join(workDir, "fixtures", "ci.db"); cfg.DBPath != want {
			t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
		}

		if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "/srv/taskmaster" {
			t.Errorf("SearchPaths = %v", cfg.SearchPaths)
		}

		if cfg.Sources.Project == "" {
			t.Error("project source not recorded")
		}
	})

	t.Run("global config overridden by project config", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		xdg := t.TempDir()

		writeFile(t, filepath.Join(xdg, "tmdbg", "config.json"), `{"db_path": "/global.db"}`)
		writeFile(t, filepath.Join(workDir, ConfigFileName), `{"db_path": "/project.db"}`)

		cfg, err := LoadConfig(LoadConfigInput{
			WorkDirOverride: workDir,
			Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
		})
		if err != nil {
			t.Fatal(err)
		}

		if cfg.DBPath != "/project.db" {
			t.Errorf("DBPath = %q, want /project.db", cfg.DBPath)
		}

		if cfg.Sources.Global == "" || cfg.Sources.Project == "" {
			t.Errorf("both sources should be recorded, got %+v", cfg.Sources)
		}
	})

	t.Run("cli override wins over files", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		writeFile(t, filepath.Join(workDir, ConfigFileName), `{"db_path": "/project.db"}`)

		cfg, err := LoadConfig(LoadConfigInput{
			WorkDirOverride: workDir,
			DBPathOverride:  "/cli.db",
			Env:             map[string]string{},
		})
		if err != nil {
			t.Fatal(err)
		}

		if cfg.DBPath != "/cli.db" {
			t.Errorf("DBPath = %q, want /cli.db", cfg.DBPath)
		}
	})

	t.Run("explicit empty db_path is rejected", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		writeFile(t, filepath.Join(workDir, ConfigFileName), `{"db_path": ""}`)

		_, err := LoadConfig(LoadConfigInput{WorkDirOverride: workDir, Env: map[string]string{}})
		if !errors.Is(err, ErrDBPathEmpty) {
			t.Errorf("error = %v, want ErrDBPathEmpty", err)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()

		_, err := LoadConfig(LoadConfigInput{
			WorkDirOverride: workDir,
			ConfigPath:      "nope.json",
			Env:             map[string]string{},
		})
		if !errors.Is(err, ErrConfigFileNotFound) {
			t.Errorf("error = %v, want ErrConfigFileNotFound", err)
		}
	})

	t.Run("invalid JSONC is rejected", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		writeFile(t, filepath.Join(workDir, ConfigFileName), `{"db_path": `)

		_, err := LoadConfig(LoadConfigInput{WorkDirOverride: workDir, Env: map[string]string{}})
		if !errors.Is(err, ErrConfigInvalid) {
			t.Errorf("error = %v, want ErrConfigInvalid", err)
		}
	})
}
