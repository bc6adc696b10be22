package cli

import (
	"context"

	"tmdbg/internal/inspect"
	"tmdbg/internal/taskmaster"

	flag "github.com/spf13/pflag"
)

// ProjectsCmd returns the projects command.
func ProjectsCmd(cfg *taskmaster.Config, env map[string]string) *Command {
	return &Command{
		Flags: flag.NewFlagSet("projects", flag.ContinueOnError),
		Usage: "projects",
		Short: "Dump the Projects table",
		Long: "Dump all rows of the Projects table in table order.\n" +
			"A missing table is reported inline, not as a fatal error.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			db, err := openDB(ctx, o, cfg, env)
			if err != nil || db == nil {
				return err
			}
			defer db.Close()

			var section inspect.ProjectsSection

			rows, queryErr := db.Projects(ctx)
			if queryErr != nil {
				section.Err = queryErr.Error()
			} else {
				section.Rows = rows
			}

			inspect.WriteProjects(o.Out(), section)

			return nil
		},
	}
}
