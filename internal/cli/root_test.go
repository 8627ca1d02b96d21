package cli

import (
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, testDB(t), "", "--format", "xml", "client", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"client", "project", "job", "report", "tags"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

func TestGetExitCode_BusyDatabase(t *testing.T) {
	busy := fmt.Errorf("log job: %w", sqlite3.Error{Code: sqlite3.ErrBusy})
	assert.Equal(t, ExitCommandError, GetExitCode(busy))

	locked := fmt.Errorf("open store: %w", sqlite3.Error{Code: sqlite3.ErrLocked})
	assert.Equal(t, ExitCommandError, GetExitCode(locked))
}
