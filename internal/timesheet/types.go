package timesheet

import "time"

// Layouts for the ISO strings persisted by the store. Dates and
// date-times are local, no timezone handling.
const (
	DayLayout  = "2006-01-02"
	TimeLayout = "2006-01-02T15:04:05"
)

// Client is one plant of a customer. Name alone is not unique: a
// multi-plant customer has one row per city, and city is globally
// unique in the store. (Name, City) is the practical identity used
// everywhere.
type Client struct {
	ID     int64
	Name   string
	City   string
	Nation string
	Notes  string
}

// Project belongs to exactly one client. (client, name) is unique;
// different clients may reuse project names.
type Project struct {
	ID     int64
	Name   string
	Client string
	Color  string
	Active bool
}

// JobParams carries everything needed to append one work entry.
// Place defaults to the owning client's city when empty.
type JobParams struct {
	Day         string
	Project     string
	StartAt     string
	EndAt       string
	Place       string
	WorkType    string
	Description string
}

// JobEntry is one logged unit of work, joined with its project name
// for reporting. Jobs are immutable once written.
type JobEntry struct {
	ID          int64
	Project     string
	StartAt     time.Time
	EndAt       time.Time
	Place       string
	WorkType    string
	Description string
	Hours       float64
}

// DayReport aggregates all jobs of one workday.
type DayReport struct {
	Day        string
	Jobs       []JobEntry
	TotalHours float64
}

// DeleteStats reports what a cascading client delete removed. The
// counts are captured inside the delete transaction, before the delete
// statement runs.
type DeleteStats struct {
	Clients  int64
	Projects int64
	Jobs     int64
}
