package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/sqleaner/sqleaner/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	yamlData := `
formatter:
  indent: 2
paths:
  - db/queries
  - reports/monthly.sql
`

	cfg, err := LoadConfig(strings.NewReader(yamlData))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Formatter.Indent)
	require.Equal(t, []string{"db/queries", "reports/monthly.sql"}, cfg.Paths)
}

func TestLoadConfig_defaultsIndent(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("paths:\n  - db\n"))
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Formatter.Indent)
}

func TestLoadConfig_invalidYAML(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("formatter: [not a map"))
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqleaner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("formatter:\n  indent: 8\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Formatter.Indent)
}

func TestLoadConfigFile_missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 4, cfg.Formatter.Indent)
	require.Empty(t, cfg.Paths)
}

func TestFormatterOptions(t *testing.T) {
	cfg := &Config{Formatter: Formatter{Indent: 2}}
	require.Equal(t, 2, cfg.FormatterOptions().IndentSize)
}
