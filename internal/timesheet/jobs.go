package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"timbro/internal/store"
)

// Jobs is the append-only ledger of work entries.
type Jobs struct {
	st *store.Store
}

// NewJobs returns a ledger backed by st.
func NewJobs(st *store.Store) *Jobs {
	return &Jobs{st: st}
}

// Log appends one immutable work entry. In a single transaction it
// resolves the project, validates the time range, lazily creates the
// owning workday, denormalizes the place from the client's city when
// none is supplied, and inserts the job row.
//
// A failed validation leaves the store untouched: the transaction rolls
// back as a unit, so not even the workday row survives a bad entry.
func (j *Jobs) Log(ctx context.Context, p JobParams) error {
	return j.st.WithTx(ctx, func(tx *sql.Tx) error {
		var projectID int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM projects WHERE name = ? COLLATE foldcase",
			p.Project).Scan(&projectID)
		if errors.Is(err, sql.ErrNoRows) {
			return &ProjectNotFoundError{Name: p.Project}
		}
		if err != nil {
			return fmt.Errorf("log job: find project: %w", err)
		}

		start, end, err := parseRange(p.StartAt, p.EndAt)
		if err != nil {
			return err
		}
		if !end.After(start) {
			return &TimeRangeError{Start: p.StartAt, End: p.EndAt}
		}

		workdayID, err := ensureWorkday(ctx, tx, p.Day)
		if err != nil {
			return err
		}

		place := p.Place
		if place == "" {
			// Re-derived through the project->client join rather than
			// trusting the id from step 1; the join failing here means
			// the project vanished mid-operation.
			err := tx.QueryRowContext(ctx, `
				SELECT c.city
				FROM projects p
				JOIN clients c ON c.id = p.client_id
				WHERE p.name = ? COLLATE foldcase
				LIMIT 1
			`, p.Project).Scan(&place)
			if errors.Is(err, sql.ErrNoRows) {
				return &ProjectNotFoundError{Name: p.Project}
			}
			if err != nil {
				return fmt.Errorf("log job: denormalize place: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO jobs(workday_id, project_id, start_at, end_at, place, work_type, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, workdayID, projectID, p.StartAt, p.EndAt,
			nullable(place), nullable(p.WorkType), nullable(p.Description))
		if err != nil {
			return fmt.Errorf("log job: insert: %w", err)
		}
		return nil
	})
}

// ReportForDay returns every job logged on the given day, joined with
// its project name and ordered by start time, plus the total hours.
// Each entry's duration is rounded to 2 decimal places; the total is
// the rounded sum of those. Pure read, no side effects.
func (j *Jobs) ReportForDay(ctx context.Context, day string) (*DayReport, error) {
	rows, err := j.st.DB().QueryContext(ctx, `
		SELECT j.id, p.name, j.start_at, j.end_at,
		       COALESCE(j.place, ''), COALESCE(j.work_type, ''), COALESCE(j.description, '')
		FROM jobs j
		JOIN workdays w ON w.id = j.workday_id
		JOIN projects p ON p.id = j.project_id
		WHERE w.day = ?
		ORDER BY j.start_at
	`, day)
	if err != nil {
		return nil, fmt.Errorf("day report: %w", err)
	}
	defer rows.Close()

	report := &DayReport{Day: day}
	for rows.Next() {
		var e JobEntry
		var startAt, endAt string
		if err := rows.Scan(&e.ID, &e.Project, &startAt, &endAt, &e.Place, &e.WorkType, &e.Description); err != nil {
			return nil, fmt.Errorf("day report: scan: %w", err)
		}
		e.StartAt, e.EndAt, err = parseRange(startAt, endAt)
		if err != nil {
			return nil, fmt.Errorf("day report: stored range: %w", err)
		}
		e.Hours = round2(e.EndAt.Sub(e.StartAt).Hours())
		report.TotalHours += e.Hours
		report.Jobs = append(report.Jobs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("day report: %w", err)
	}
	report.TotalHours = round2(report.TotalHours)
	return report, nil
}

// ensureWorkday inserts the grouping row for day if absent and returns
// its id. Idempotent: a second job on the same day reuses the row.
func ensureWorkday(ctx context.Context, q store.Querier, day string) (int64, error) {
	if _, err := time.Parse(DayLayout, day); err != nil {
		return 0, fmt.Errorf("log job: day %q: %w", day, err)
	}

	if _, err := q.ExecContext(ctx,
		"INSERT INTO workdays(day) VALUES (?) ON CONFLICT(day) DO NOTHING", day); err != nil {
		return 0, fmt.Errorf("ensure workday: %w", err)
	}

	var id int64
	if err := q.QueryRowContext(ctx,
		"SELECT id FROM workdays WHERE day = ?", day).Scan(&id); err != nil {
		return 0, fmt.Errorf("ensure workday: %w", err)
	}
	return id, nil
}

func parseRange(startAt, endAt string) (start, end time.Time, err error) {
	start, err = time.Parse(TimeLayout, startAt)
	if err != nil {
		return time.Time{}, time.Time{}, &TimeRangeError{Start: startAt, End: endAt}
	}
	end, err = time.Parse(TimeLayout, endAt)
	if err != nil {
		return time.Time{}, time.Time{}, &TimeRangeError{Start: startAt, End: endAt}
	}
	return start, end, nil
}

func round2(h float64) float64 {
	return math.Round(h*100) / 100
}
