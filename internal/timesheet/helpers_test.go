package timesheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"timbro/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func mustAddClient(t *testing.T, st *store.Store, name, city, nation string) {
	t.Helper()
	created, err := NewClients(st).Add(context.Background(), Client{
		Name: name, City: city, Nation: nation,
	})
	require.NoError(t, err)
	require.True(t, created, "client %s/%s should be freshly created", name, city)
}

func mustAddProject(t *testing.T, st *store.Store, clientName, city, project string) {
	t.Helper()
	created, err := NewProjects(st).Create(context.Background(), clientName, city, project, "")
	require.NoError(t, err)
	require.True(t, created, "project %s should be freshly created", project)
}

func countRows(t *testing.T, st *store.Store, table string) int {
	t.Helper()
	var n int
	err := st.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}
