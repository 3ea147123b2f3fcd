package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sqleaner/sqleaner/pkg/consts"
	"github.com/sqleaner/sqleaner/pkg/sqlfmt"
	"github.com/urfave/cli/v3"
)

// fmtCmd returns the CLI command that formats SQL files or stdin.
//
// With no arguments and no configured paths, the command reads SQL from
// stdin and writes the formatted result to stdout, which is how editor
// integrations call it. File arguments (or directories, walked for *.sql
// files) print to stdout unless --write rewrites them in place.
//
// The --check flag makes the command a CI gate: nothing is written, and the
// exit status is non-zero when any file is not already formatted.
//
// Example usage:
//
//	# Format stdin to stdout
//	cat query.sql | sqleaner fmt
//
//	# Rewrite files in place
//	sqleaner fmt -w db/queries/
//
//	# Fail if anything is unformatted
//	sqleaner fmt --check db/
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files or stdin",
		ArgsUsage: "[files or directories]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "rewrite files in place instead of printing to stdout",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "exit non-zero if any file is not already formatted",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				paths = currentConfig.Paths
			}

			formatter := sqlfmt.New(currentConfig.FormatterOptions())

			if len(paths) == 0 {
				return formatStdin(cmd, formatter)
			}

			files, err := collectFiles(paths)
			if err != nil {
				return err
			}

			var unformatted []string
			for _, file := range files {
				changed, err := formatFile(cmd, formatter, file)
				if err != nil {
					return err
				}
				if changed {
					unformatted = append(unformatted, file)
				}
			}

			if cmd.Bool("check") && len(unformatted) > 0 {
				return cli.Exit(fmt.Sprintf("not formatted: %s", strings.Join(unformatted, ", ")), 1)
			}
			return nil
		},
	}
}

func formatStdin(cmd *cli.Command, formatter *sqlfmt.Formatter) error {
	raw, err := io.ReadAll(cmd.Reader)
	if err != nil {
		return errors.Wrap(err, "reading stdin")
	}

	formatted, err := formatter.Format(string(raw))
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.Writer, formatted)
	return err
}

// formatFile formats one file according to the command flags and reports
// whether the file's contents differed from the formatted output.
func formatFile(cmd *cli.Command, formatter *sqlfmt.Formatter, path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}

	formatted, err := formatter.Format(string(raw))
	if err != nil {
		return false, errors.Wrapf(err, "formatting %s", path)
	}
	changed := formatted != string(raw)

	switch {
	case cmd.Bool("check"):
		// Report only.
	case cmd.Bool("write"):
		if changed {
			if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
				return false, errors.Wrapf(err, "writing %s", path)
			}
		}
	default:
		if _, err := io.WriteString(cmd.Writer, formatted); err != nil {
			return false, err
		}
	}

	return changed, nil
}

// collectFiles expands the given paths into a list of SQL files, walking
// directories recursively.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", path)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".sql") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", path)
		}
	}
	return files, nil
}
