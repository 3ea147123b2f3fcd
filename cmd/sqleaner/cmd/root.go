package cmd

import (
	"context"
	"os"

	"github.com/sqleaner/sqleaner/pkg/config"
	"github.com/urfave/cli/v3"
)

var currentConfig = config.Default()

// Run creates and executes the main sqleaner CLI application with the given
// version and command-line arguments.
//
// The application looks for sqleaner.yaml in the current directory (or the
// file named by --config) and falls back to built-in defaults when it does
// not exist, so formatting works without any project setup.
//
// Example usage:
//
//	# Format files in place
//	err := Run(ctx, "v1.0.0", []string{"sqleaner", "fmt", "-w", "queries.sql"})
//
//	# Verify formatting in CI
//	err := Run(ctx, "v1.0.0", []string{"sqleaner", "fmt", "--check", "db/"})
func Run(ctx context.Context, version string, args []string) error {
	app := &cli.Command{
		Name:  "sqleaner",
		Usage: "An opinionated SQL formatter",
		Description: `sqleaner reformats SQL files into a single canonical style. Statements
are parsed through a chain of SQL grammars and re-printed with uniform
keyword casing, indentation, and clause layout, without changing what the
SQL means.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqleaner config file",
				Sources: cli.EnvVars("SQLEANER_CONFIG"),
				Value:   config.DefaultConfigFile,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			path := cmd.String("config")

			if _, err := os.Stat(path); os.IsNotExist(err) {
				return ctx, nil
			}

			cfg, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, err
			}
			currentConfig = cfg
			return ctx, nil
		},
		Commands: []*cli.Command{
			fmtCmd(),
		},
	}

	return app.Run(ctx, args)
}
