package cli

import (
	"context"
	"errors"

	"tmdbg/internal/inspect"
	"tmdbg/internal/taskmaster"
)

// openDB locates and opens the database for a single command. When the
// database is not found the guidance is printed and (nil, nil) is returned;
// callers treat a nil DB as "nothing to do".
func openDB(ctx context.Context, o *IO, cfg *taskmaster.Config, env map[string]string) (*inspect.DB, error) {
	path, err := taskmaster.Locate(*cfg, env)
	if err != nil {
		if errors.Is(err, taskmaster.ErrDatabaseNotFound) {
			printNotFound(o, *cfg, env)

			return nil, nil
		}

		return nil, err
	}

	return inspect.Open(ctx, path)
}
