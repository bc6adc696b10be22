package cli

import (
	"context"
	"errors"

	"tmdbg/internal/inspect"
	"tmdbg/internal/taskmaster"

	flag "github.com/spf13/pflag"
)

// TasksCmd returns the tasks command.
func TasksCmd(cfg *taskmaster.Config, env map[string]string) *Command {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.Int64("project", 0, "Only task specs belonging to this project id")

	return &Command{
		Flags: fs,
		Usage: "tasks [flags]",
		Short: "Dump the TaskSpecs table",
		Long: "Dump the TaskSpecs table ordered by (ProjectId, Number).\n" +
			"A missing table is reported inline, not as a fatal error.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execTasks(ctx, o, cfg, env, fs)
		},
	}
}

func execTasks(ctx context.Context, o *IO, cfg *taskmaster.Config, env map[string]string, fs *flag.FlagSet) error {
	projectID, _ := fs.GetInt64("project")
	if fs.Changed("project") && projectID <= 0 {
		return errors.New("--project must be positive")
	}

	db, err := openDB(ctx, o, cfg, env)
	if err != nil || db == nil {
		return err
	}
	defer db.Close()

	var section inspect.TasksSection

	rows, queryErr := db.TaskSpecs(ctx, &inspect.TaskSpecsOptions{ProjectID: projectID})
	if queryErr != nil {
		section.Err = queryErr.Error()
	} else {
		section.Rows = rows
	}

	inspect.WriteTasks(o.Out(), section)

	return nil
}
