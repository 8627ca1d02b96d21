package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAdd_AndList(t *testing.T) {
	db := testDB(t)

	out := mustExecute(t, db, "client", "add", "Acme", "--city", "Rome", "--nation", "IT")
	assert.Contains(t, out, "added")

	out = mustExecute(t, db, "client", "list")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Rome")
}

func TestClientAdd_DuplicateCityIsNoop(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	out := mustExecute(t, db, "client", "add", "Other", "--city", "Rome")
	assert.Contains(t, out, "already exists")
}

func TestClientDelete_DeclinedRunsNothing(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")

	out, err := execute(t, db, "n\n", "client", "delete", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	out = mustExecute(t, db, "client", "list")
	assert.Contains(t, out, "Acme", "declined delete must leave the client in place")
}

func TestClientDelete_Confirmed(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")

	out, err := execute(t, db, "y\n", "client", "delete", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted with 1 projects and 0 jobs")

	out = mustExecute(t, db, "client", "list")
	assert.NotContains(t, out, "Acme")
}

func TestClientDelete_YesSkipsPrompt(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")

	out, err := execute(t, db, "", "client", "delete", "Acme", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
}

func TestClientUpdate(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "client", "update", "Acme", "--city", "Rome", "--new-city", "Naples")

	out := mustExecute(t, db, "client", "list")
	assert.Contains(t, out, "Naples")
	assert.NotContains(t, out, "Rome")
}

func TestClientUpdate_Unmatched(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "", "client", "update", "Ghost", "--city", "Nowhere", "--new-city", "X")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
