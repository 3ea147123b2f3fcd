// Package config loads project configuration for the formatter CLI. The
// core formatting rules are fixed; configuration covers only the variable
// surface (indent width, file discovery).
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sqleaner/sqleaner/pkg/format"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the conventional project configuration file name.
const DefaultConfigFile = "sqleaner.yaml"

type (
	// Formatter holds the configurable formatting knobs.
	Formatter struct {
		// Indent specifies the number of spaces per indent level
		Indent int `yaml:"indent,omitempty"`
	}

	// Config represents a project configuration for SQL formatting.
	Config struct {
		// Formatter contains formatting options
		Formatter Formatter `yaml:"formatter"`

		// Paths lists the SQL files or globs the fmt command formats when
		// no arguments are given
		Paths []string `yaml:"paths,omitempty"`
	}
)

// LoadConfig parses a configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data. Unset values fall
// back to the formatter defaults.
//
// Example:
//
//	yamlData := `
//	formatter:
//	  indent: 2
//	paths:
//	  - db/queries
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Indent: %d\n", cfg.Formatter.Indent)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Formatter.Indent <= 0 {
		cfg.Formatter.Indent = format.Defaults().IndentSize
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path. This is
// a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Formatter: Formatter{Indent: format.Defaults().IndentSize},
	}
}

// FormatterOptions converts the configuration into layout engine options.
func (c *Config) FormatterOptions() *format.FormatterOptions {
	return &format.FormatterOptions{IndentSize: c.Formatter.Indent}
}
