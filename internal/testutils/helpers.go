package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteMatrix writes a character table to a temporary directory and returns
// its absolute path. Each line is one CSV row.
// It fails the test immediately on error.
func WriteMatrix(t *testing.T, lines ...string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), "char_matrix.csv"))
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	content := strings.Join(lines, "\r\n") + "\r\n"
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644), "Failed to write matrix")

	return absPath
}

// TinyMatrix is the smallest usable table: "1", "(" and ")".
var TinyMatrix = []string{
	"3,1,(,)",
	"start,1,1,0",
	"end,1,0,1",
	"1,0,0,1",
	"(,1,1,0",
	"),0,0,1",
}
