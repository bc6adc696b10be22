package cli

import (
	"context"

	"tmdbg/internal/taskmaster"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *taskmaster.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Show the resolved configuration and which config files contributed to it.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			formatted, err := taskmaster.FormatConfig(*cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)

			// Print sources
			o.Println("")
			o.Println("# Sources:")

			if cfg.Sources.Global != "" {
				o.Println("#   global:", cfg.Sources.Global)
			}

			if cfg.Sources.Project != "" {
				o.Println("#   project:", cfg.Sources.Project)
			}

			if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
				o.Println("#   (using defaults only)")
			}

			return nil
		},
	}
}
