package sqlfmt_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/sqleaner/sqleaner/pkg/sqlfmt"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestGoldenFiles(t *testing.T) {
	testdataDir := "testdata"

	// Find all *.in.sql files
	pattern := filepath.Join(testdataDir, "*.in.sql")
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		// Derive output filename: "example.in.sql" -> "example.sql"
		basename := filepath.Base(inputFile)
		outputName := strings.TrimSuffix(basename, ".in.sql") + ".sql"

		t.Run(outputName, func(t *testing.T) {
			inputSQL, err := os.ReadFile(inputFile)
			require.NoError(t, err, "Failed to read input file %s", inputFile)

			result, err := Format(string(inputSQL))
			require.NoError(t, err, "Failed to format SQL from %s", inputFile)

			// Compare against the golden file (use -update to regenerate)
			golden.Assert(t, result, outputName)
		})
	}
}

func TestGoldenFilesAreIdempotent(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.in.sql"))
	require.NoError(t, err)

	for _, inputFile := range matches {
		t.Run(filepath.Base(inputFile), func(t *testing.T) {
			inputSQL, err := os.ReadFile(inputFile)
			require.NoError(t, err)

			once, err := Format(string(inputSQL))
			require.NoError(t, err)

			twice, err := Format(once)
			require.NoError(t, err)
			require.Equal(t, once, twice)
		})
	}
}
