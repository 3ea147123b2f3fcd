// Package cmd provides CLI commands for the sqleaner tool.
//
// This package implements the command-line interface for sqleaner. Each
// command is implemented as a separate function that returns a *cli.Command,
// following the urfave/cli/v3 pattern.
//
// # Available Commands
//
//   - fmt: Format SQL files or stdin into the canonical style
//
// # Global Options
//
// All commands support global flags:
//   - --config, -c: Specify the configuration file (defaults to sqleaner.yaml)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	sqleaner fmt query.sql              # Print formatted SQL to stdout
//	sqleaner fmt -w db/                 # Rewrite all *.sql files in place
//	sqleaner fmt --check db/            # CI gate: fail on unformatted files
//	cat query.sql | sqleaner fmt        # Filter stdin to stdout
package cmd
