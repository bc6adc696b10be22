package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"tmdbg/internal/inspect"
	"tmdbg/internal/taskmaster"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
)

// InspectCmd returns the inspect command. It is also the default command when
// tmdbg runs without arguments.
func InspectCmd(cfg *taskmaster.Config, env map[string]string) *Command {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.Bool("json", false, "Emit the report as JSON instead of text")
	fs.String("out", "", "Write the report to a file instead of stdout")
	fs.Bool("check-orphans", false, "Warn about task specs referencing a missing project")

	return &Command{
		Flags: fs,
		Usage: "inspect [flags]",
		Short: "Locate the database and dump schema, projects, and task specs",
		Long: "Locate the TaskMaster database, print its schema, and dump the\n" +
			"Projects and TaskSpecs tables. Query failures for a single table are\n" +
			"reported inline and the remaining sections still run.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execInspect(ctx, o, cfg, env, fs)
		},
	}
}

func execInspect(ctx context.Context, o *IO, cfg *taskmaster.Config, env map[string]string, fs *flag.FlagSet) error {
	db, err := openDB(ctx, o, cfg, env)
	if err != nil || db == nil {
		return err
	}
	defer db.Close()

	report, err := inspect.Build(ctx, db)
	if err != nil {
		return err
	}

	if checkOrphans, _ := fs.GetBool("check-orphans"); checkOrphans {
		warnOrphans(o, report)
	}

	var buf bytes.Buffer

	if asJSON, _ := fs.GetBool("json"); asJSON {
		if jsonErr := report.WriteJSON(&buf); jsonErr != nil {
			return jsonErr
		}
	} else {
		report.WriteText(&buf)
	}

	outPath, _ := fs.GetString("out")
	if outPath == "" {
		o.Printf("%s", buf.String())

		return nil
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(cfg.EffectiveCwd, outPath)
	}

	if writeErr := atomic.WriteFile(outPath, &buf); writeErr != nil {
		return fmt.Errorf("write report: %w", writeErr)
	}

	o.Println("Report written to", outPath)

	return nil
}

func warnOrphans(o *IO, report *inspect.Report) {
	for _, orphan := range report.Orphans() {
		o.Warn(
			fmt.Sprintf("task spec %d (%s) references missing project %d", orphan.ID, orphan.Title, orphan.ProjectID),
			"the project row was deleted or never written; check the TaskMaster application logs",
		)
	}
}

// printNotFound prints the user guidance for a missing database.
// A missing database is a clean exit, not an error.
func printNotFound(o *IO, cfg taskmaster.Config, env map[string]string) {
	o.Println("Could not find taskmaster.db database file.")
	o.Println("Expected locations:")

	for _, candidate := range taskmaster.Candidates(cfg, env) {
		o.Println("  -", candidate)
	}
}
