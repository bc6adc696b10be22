package cli

import (
	"context"
	"errors"
	"fmt"

	"tmdbg/internal/inspect"
	"tmdbg/internal/taskmaster"

	flag "github.com/spf13/pflag"
)

var errTableNotFound = errors.New("table not found")

// SchemaCmd returns the schema command.
func SchemaCmd(cfg *taskmaster.Config, env map[string]string) *Command {
	return &Command{
		Flags: flag.NewFlagSet("schema", flag.ContinueOnError),
		Usage: "schema [table]",
		Short: "Print the database schema",
		Long:  "Print every table with its columns, or a single table when named.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execSchema(ctx, o, cfg, env, args)
		},
	}
}

func execSchema(ctx context.Context, o *IO, cfg *taskmaster.Config, env map[string]string, args []string) error {
	db, err := openDB(ctx, o, cfg, env)
	if err != nil || db == nil {
		return err
	}
	defer db.Close()

	tables, err := db.Tables(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		name := args[0]

		for _, table := range tables {
			if table.Name == name {
				inspect.WriteSchema(o.Out(), []inspect.Table{table})

				return nil
			}
		}

		return fmt.Errorf("%w: %s", errTableNotFound, name)
	}

	inspect.WriteSchema(o.Out(), tables)

	return nil
}
