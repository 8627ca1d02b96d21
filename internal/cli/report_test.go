package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestReport_EmptyDay(t *testing.T) {
	db := testDB(t)

	out := mustExecute(t, db, "report", "2025-01-10")
	assert.Contains(t, out, "No jobs logged on 2025-01-10")
}

// The table layout is locked by a golden file; run with -update to
// regenerate testdata/report_day.golden after an intentional change.
func TestReport_Golden(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome", "--nation", "IT")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")
	mustExecute(t, db, "job", "log",
		"--day", "2025-01-10", "--project", "Line1",
		"--start", "2025-01-10T09:00:00", "--end", "2025-01-10T11:30:00",
		"--type", "2", "--description", "commissioning line")
	mustExecute(t, db, "job", "log",
		"--day", "2025-01-10", "--project", "Line1",
		"--start", "2025-01-10T13:00:00", "--end", "2025-01-10T17:15:00",
		"--type", "2")

	out := mustExecute(t, db, "report", "2025-01-10")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_day", []byte(out))
}

func TestReport_TotalHours(t *testing.T) {
	db := testDB(t)

	mustExecute(t, db, "client", "add", "Acme", "--city", "Rome")
	mustExecute(t, db, "project", "add", "Line1", "--client", "Acme")
	mustExecute(t, db, "job", "log",
		"--day", "2025-01-10", "--project", "Line1",
		"--start", "2025-01-10T09:00:00", "--end", "2025-01-10T11:00:00")

	out := mustExecute(t, db, "report", "2025-01-10")
	assert.Contains(t, out, "Total: 2.00 hours")
	assert.Contains(t, out, "Rome", "place defaults to the client's city")
}

func TestTags_Catalogs(t *testing.T) {
	db := testDB(t)

	out := mustExecute(t, db, "tags")
	assert.Contains(t, out, "Fitting & Setting")
	assert.Contains(t, out, "Travel")

	out = mustExecute(t, db, "tags", "wait")
	assert.Contains(t, out, "Waiting For Supplier")

	_, err := execute(t, db, "", "tags", "bogus")
	assert.Error(t, err)
}
