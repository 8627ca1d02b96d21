package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command against the given database file,
// returning everything written to stdout/stderr. stdin feeds the
// confirmation prompts. The config flag points at a nonexistent file so
// the operator's real ~/.timbro.yaml never leaks into tests.
func execute(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--db", db,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func mustExecute(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := execute(t, db, "", args...)
	require.NoError(t, err, "command %v failed: %s", args, out)
	return out
}
