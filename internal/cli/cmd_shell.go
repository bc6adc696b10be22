package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tmdbg/internal/inspect"
	"tmdbg/internal/taskmaster"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

// shellCommands is the completion and help list for the REPL.
var shellCommands = []string{"tables", "schema", "projects", "tasks", "count", "sql", "help", "exit"}

// ShellCmd returns the shell command, an interactive read-only REPL.
func ShellCmd(cfg *taskmaster.Config, env map[string]string, in io.Reader) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive read-only shell",
		Long: "Open an interactive shell against the database. Only SELECT and\n" +
			"PRAGMA statements are allowed; the connection is read-only either way.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execShell(ctx, o, cfg, env, in)
		},
	}
}

func execShell(ctx context.Context, o *IO, cfg *taskmaster.Config, env map[string]string, in io.Reader) error {
	db, err := openDB(ctx, o, cfg, env)
	if err != nil || db == nil {
		return err
	}
	defer db.Close()

	o.Printf("tmdbg shell - %s (read-only)\n", db.Path())
	o.Println("Type 'help' for available commands.")
	o.Println()

	if isTerminal(in) {
		return runLiner(ctx, o, db)
	}

	return runScripted(ctx, o, db, in)
}

// isTerminal reports whether in is an interactive terminal. Piped input runs
// the scripted loop so the shell stays usable in tests and one-liners.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".tmdbg_history")
}

// runLiner is the interactive loop with readline-style editing and history.
func runLiner(ctx context.Context, o *IO, db *inspect.DB) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string

		for _, cmd := range shellCommands {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				matches = append(matches, cmd)
			}
		}

		return matches
	})

	// Load history
	if f, err := os.Open(historyFile()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if path := historyFile(); path != "" {
			if f, err := os.Create(path); err == nil {
				_, _ = line.WriteHistory(f)
				f.Close()
			}
		}
	}()

	for {
		input, err := line.Prompt("tmdbg> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				o.Println("\nBye!")

				return nil
			}

			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if quit := dispatchShell(ctx, o, db, input); quit {
			return nil
		}
	}
}

// runScripted reads newline-separated shell commands from in.
func runScripted(ctx context.Context, o *IO, db *inspect.DB, in io.Reader) error {
	if in == nil {
		return nil
	}

	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if quit := dispatchShell(ctx, o, db, input); quit {
			return nil
		}
	}

	return scanner.Err()
}

// dispatchShell executes one shell line. Returns true when the session ends.
// Command errors are printed, not returned: a typo should not end the session.
func dispatchShell(ctx context.Context, o *IO, db *inspect.DB, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		o.Println("Bye!")

		return true

	case "help", "?":
		printShellHelp(o)

	case "tables":
		shellTables(ctx, o, db)

	case "schema":
		shellSchema(ctx, o, db, args)

	case "projects":
		shellSection(ctx, o, db, true)

	case "tasks":
		shellSection(ctx, o, db, false)

	case "count":
		shellCount(ctx, o, db, args)

	case "sql":
		shellSQL(ctx, o, db, strings.TrimSpace(strings.TrimPrefix(input, parts[0])))

	default:
		o.Println("unknown command:", cmd, "(try 'help')")
	}

	return false
}

func printShellHelp(o *IO) {
	o.Println(`Commands:
  tables             List tables
  schema [table]     Show schema for all tables or one table
  projects           Dump the Projects table
  tasks              Dump the TaskSpecs table
  count <table>      Count rows in a table
  sql <SELECT...>    Run a read-only query
  exit               Leave the shell`)
}

func shellTables(ctx context.Context, o *IO, db *inspect.DB) {
	tables, err := db.Tables(ctx)
	if err != nil {
		o.Println("error:", err)

		return
	}

	for _, table := range tables {
		o.Println(table.Name)
	}
}

func shellSchema(ctx context.Context, o *IO, db *inspect.DB, args []string) {
	tables, err := db.Tables(ctx)
	if err != nil {
		o.Println("error:", err)

		return
	}

	if len(args) > 0 {
		for _, table := range tables {
			if table.Name == args[0] {
				inspect.WriteSchema(o.Out(), []inspect.Table{table})

				return
			}
		}

		o.Println("unknown table:", args[0])

		return
	}

	inspect.WriteSchema(o.Out(), tables)
}

func shellSection(ctx context.Context, o *IO, db *inspect.DB, projects bool) {
	if projects {
		var section inspect.ProjectsSection

		rows, err := db.Projects(ctx)
		if err != nil {
			section.Err = err.Error()
		} else {
			section.Rows = rows
		}

		inspect.WriteProjects(o.Out(), section)

		return
	}

	var section inspect.TasksSection

	rows, err := db.TaskSpecs(ctx, nil)
	if err != nil {
		section.Err = err.Error()
	} else {
		section.Rows = rows
	}

	inspect.WriteTasks(o.Out(), section)
}

func shellCount(ctx context.Context, o *IO, db *inspect.DB, args []string) {
	if len(args) == 0 {
		o.Println("usage: count <table>")

		return
	}

	count, err := db.Count(ctx, args[0])
	if err != nil {
		o.Println("error:", err)

		return
	}

	o.Println(count)
}

func shellSQL(ctx context.Context, o *IO, db *inspect.DB, query string) {
	if query == "" {
		o.Println("usage: sql <SELECT...>")

		return
	}

	columns, rows, err := db.Select(ctx, query)
	if err != nil {
		o.Println("error:", err)

		return
	}

	o.Println(strings.Join(columns, " | "))

	for _, row := range rows {
		o.Println(strings.Join(row, " | "))
	}

	o.Printf("(%d rows)\n", len(rows))
}
