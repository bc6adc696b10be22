package taskmaster

import (
	"fmt"
	"os"
	"path/filepath"
)

// Candidates returns the database locations the locator checks, in priority
// order. An explicit db_path (config or --db) is not a candidate - it is
// required to exist and short-circuits the search in Locate.
func Candidates(cfg Config, env map[string]string) []string {
	var paths []string

	// TaskMaster stores its database under the platform app-data directory.
	if appData := env["LOCALAPPDATA"]; appData != "" {
		paths = append(paths, filepath.Join(appData, AppDirName, DBFileName))
	}

	for _, dir := range cfg.SearchPaths {
		if dir == "" {
			continue
		}

		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.EffectiveCwd, dir)
		}

		paths = append(paths, filepath.Join(dir, AppDirName, DBFileName))
	}

	paths = append(paths, filepath.Join(cfg.EffectiveCwd, DBFileName))

	return paths
}

// Locate resolves the path to the TaskMaster database.
//
// An explicit db_path (from config or the --db flag) must exist; a missing
// explicit path is reported as [ErrDBPathMissing]. Otherwise the candidates
// are checked in order and the first existing file wins. When nothing exists
// the sentinel [ErrDatabaseNotFound] is returned so callers can print the
// candidate list as guidance instead of failing.
func Locate(cfg Config, env map[string]string) (string, error) {
	if cfg.DBPath != "" {
		exists, err := fileExists(cfg.DBPath)
		if err != nil {
			return "", err
		}

		if !exists {
			return "", fmt.Errorf("%w: %s", ErrDBPathMissing, cfg.DBPath)
		}

		return cfg.DBPath, nil
	}

	for _, path := range Candidates(cfg, env) {
		exists, err := fileExists(path)
		if err != nil {
			return "", err
		}

		if exists {
			return path, nil
		}
	}

	return "", ErrDatabaseNotFound
}

// fileExists reports whether path names an existing regular file.
// Stat failures other than not-exist propagate to the caller.
func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return !info.IsDir(), nil
}
