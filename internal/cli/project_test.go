package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectAdd_AmbiguousClientListsCities(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "client", "add", "Acme", "--city", "Milan")

	_, err := execute(t, db, "", "project", "add", "Line1", "--client", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Milan, Rome")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// Disambiguated retry succeeds.
	out := mustExecute(t, db, "project", "add", "Line1", "--client", "Acme", "--city", "Rome")
	assert.Contains(t, out, "added")
}

func TestProjectAdd_UnknownClient(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "", "project", "add", "Line1", "--client", "Ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectList_ActiveFilter(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")
	mustExecute(t, db, "project", "add", "Line2", "--client", "Acme")
	mustExecute(t, db, "project", "deactivate", "Line2")

	out := mustExecute(t, db, "project", "list", "--active")
	assert.Contains(t, out, "Line1")
	assert.NotContains(t, out, "Line2")

	out = mustExecute(t, db, "project", "list")
	assert.Contains(t, out, "Line2")
	assert.Contains(t, out, "inactive")
}

func TestProjectRename(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")

	out := mustExecute(t, db, "project", "rename", "Line1", "Line A")
	assert.Contains(t, out, "renamed")

	_, err := execute(t, db, "", "project", "rename", "Ghost", "X")
	require.Error(t, err)
}

func TestProjectDelete_ReportsJobCount(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")
	mustExecute(t, db, "job", "log",
		"--day", "2025-01-10", "--project", "Line1",
		"--start", "2025-01-10T09:00:00", "--end", "2025-01-10T11:00:00")

	out, err := execute(t, db, "", "project", "delete", "Line1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted with 1 jobs")
}

func TestProjectDelete_Declined(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")

	out, err := execute(t, db, "\n", "project", "delete", "Line1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	out = mustExecute(t, db, "project", "list")
	assert.Contains(t, out, "Line1")
}
