package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"tmdbg/internal/taskmaster"
)

const (
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			<-sigCh
			cancel()
		}()
	}

	if len(args) == 0 {
		args = []string{"tmdbg"}
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Load and validate config
	cfg, err := taskmaster.LoadConfig(taskmaster.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		DBPathOverride:  flags.dbPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	commands := []*Command{
		InspectCmd(&cfg, env),
		LocateCmd(&cfg, env),
		SchemaCmd(&cfg, env),
		ProjectsCmd(&cfg, env),
		TasksCmd(&cfg, env),
		ShellCmd(&cfg, env, in),
		PrintConfigCmd(&cfg),
	}

	ioCtx := NewIO(out, errOut)

	// Bare invocation runs the full inspection.
	if len(flags.remaining) == 0 {
		return commands[0].Run(ctx, ioCtx, nil)
	}

	cmdName := flags.remaining[0]

	// Handle help flags
	if cmdName == "-h" || cmdName == helpFlag {
		printUsage(out, commands)

		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() == cmdName {
			return cmd.Run(ctx, ioCtx, flags.remaining[1:])
		}
	}

	fprintln(errOut, "error: unknown command:", cmdName)
	printUsage(errOut, commands)

	return 1
}

type globalFlags struct {
	workDir    string
	configPath string
	dbPath     string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", taskmaster.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --db flag (explicit database path)
	if arg == "--db" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", taskmaster.ErrFlagRequiresArg, arg)
		}

		flags.dbPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--db="); ok {
		flags.dbPath = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", taskmaster.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer, commands []*Command) {
	fprintln(writer, `tmdbg - TaskMaster database debugger

Usage: tmdbg [options] [<command>] [args]

Running tmdbg without a command inspects the database: it locates
taskmaster.db, prints the schema, and dumps the Projects and TaskSpecs
tables. The database is only ever opened read-only.

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
      --db <path>    Inspect the database at <path>

Commands:`)

	for _, cmd := range commands {
		fprintln(writer, cmd.HelpLine())
	}
}
