package timesheet

import (
	"context"
	"database/sql"
	"fmt"

	"timbro/internal/store"
)

// Projects is the registry of projects, scoped to resolved clients.
type Projects struct {
	st *store.Store
}

// NewProjects returns a registry backed by st.
func NewProjects(st *store.Store) *Projects {
	return &Projects{st: st}
}

// Create resolves the client and inserts the project in one
// transaction, so the resolved id cannot be invalidated by a concurrent
// client delete. A duplicate (client, name) pair is silently skipped;
// the returned flag reports whether a row was written.
//
// Resolution failures (ClientNotFoundError, PlantNotFoundError,
// MultiPlantError) come back unchanged for the boundary layer to drive
// recovery.
func (p *Projects) Create(ctx context.Context, clientName, city, projectName, color string) (created bool, err error) {
	err = p.st.WithTx(ctx, func(tx *sql.Tx) error {
		clientID, err := ResolveClient(ctx, tx, clientName, city)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO projects(client_id, name, color)
			VALUES (?, ?, ?)
			ON CONFLICT(client_id, name) DO NOTHING
		`, clientID, projectName, nullable(color))
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("create project: rows affected: %w", err)
		}
		created = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// SetActive flips the active flag by project name, case-insensitively.
// An unmatched name is a no-op; the returned count tells the caller
// whether anything changed.
func (p *Projects) SetActive(ctx context.Context, name string, active bool) (int64, error) {
	res, err := p.st.DB().ExecContext(ctx,
		"UPDATE projects SET active = ? WHERE name = ? COLLATE foldcase",
		boolInt(active), name)
	if err != nil {
		return 0, fmt.Errorf("set project state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set project state: rows affected: %w", err)
	}
	return n, nil
}

// Rename updates the project name matched case-insensitively on the old
// name. Returns the number of rows matched.
func (p *Projects) Rename(ctx context.Context, oldName, newName string) (int64, error) {
	res, err := p.st.DB().ExecContext(ctx,
		"UPDATE projects SET name = ? WHERE name = ? COLLATE foldcase",
		newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("rename project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rename project: rows affected: %w", err)
	}
	return n, nil
}

// ListAll returns every project joined with its client, ordered by
// (client, project).
func (p *Projects) ListAll(ctx context.Context) ([]Project, error) {
	return p.list(ctx, false)
}

// ListActive returns only active projects, same join and order as
// ListAll.
func (p *Projects) ListActive(ctx context.Context) ([]Project, error) {
	return p.list(ctx, true)
}

func (p *Projects) list(ctx context.Context, activeOnly bool) ([]Project, error) {
	query := `
		SELECT p.id, p.name, c.name, COALESCE(p.color, ''), p.active
		FROM projects p
		JOIN clients c ON c.id = p.client_id
	`
	if activeOnly {
		query += " WHERE p.active = 1"
	}
	query += " ORDER BY c.name, p.name"

	rows, err := p.st.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var pr Project
		var active int
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Client, &pr.Color, &active); err != nil {
			return nil, fmt.Errorf("list projects: scan: %w", err)
		}
		pr.Active = active != 0
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// ActiveNames returns the names of all currently active projects. The
// boundary layer uses it to resolve an implicit "current project" when
// the operator does not name one.
func (p *Projects) ActiveNames(ctx context.Context) ([]string, error) {
	rows, err := p.st.DB().QueryContext(ctx,
		"SELECT name FROM projects WHERE active = 1 ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("active projects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("active projects: scan: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("active projects: %w", err)
	}
	return names, nil
}

// DependentJobs returns the number of jobs that would be removed by
// deleting the named project. Read-only; feeds the confirmation prompt.
func (p *Projects) DependentJobs(ctx context.Context, name string) (int64, error) {
	return dependentJobs(ctx, p.st.DB(), name)
}

// Delete removes the named project; the cascade removes its jobs. The
// job count is captured first, inside the same transaction. An
// unmatched name deletes zero rows and is not an error.
func (p *Projects) Delete(ctx context.Context, name string) (jobs, deleted int64, err error) {
	err = p.st.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		jobs, err = dependentJobs(ctx, tx, name)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM projects WHERE name = ? COLLATE foldcase", name)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete project: rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return jobs, deleted, nil
}

func dependentJobs(ctx context.Context, q store.Querier, name string) (int64, error) {
	var n int64
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM jobs j
		JOIN projects p ON p.id = j.project_id
		WHERE p.name = ? COLLATE foldcase
	`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count dependent jobs: %w", err)
	}
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
