package cli

import (
	"context"
	"errors"

	"tmdbg/internal/taskmaster"

	flag "github.com/spf13/pflag"
)

// LocateCmd returns the locate command.
func LocateCmd(cfg *taskmaster.Config, env map[string]string) *Command {
	return &Command{
		Flags: flag.NewFlagSet("locate", flag.ContinueOnError),
		Usage: "locate",
		Short: "Print the resolved database path",
		Long: "Resolve the TaskMaster database path without opening it.\n" +
			"Candidates are checked in order: $LOCALAPPDATA/TaskMaster/taskmaster.db,\n" +
			"configured search paths, then ./taskmaster.db.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			path, err := taskmaster.Locate(*cfg, env)
			if err != nil {
				if errors.Is(err, taskmaster.ErrDatabaseNotFound) {
					printNotFound(o, *cfg, env)

					return nil
				}

				return err
			}

			o.Println(path)

			return nil
		},
	}
}
