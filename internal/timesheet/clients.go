package timesheet

import (
	"context"
	"database/sql"
	"fmt"

	"timbro/internal/store"
)

// Clients is the registry of client/plant records.
type Clients struct {
	st *store.Store
}

// NewClients returns a registry backed by st.
func NewClients(st *store.Store) *Clients {
	return &Clients{st: st}
}

// Add inserts a new client row. City is globally unique: inserting a
// city that already exists is silently skipped, mirroring the
// idempotent-create contract. The returned flag reports whether a row
// was actually written, so callers can tell created from already-there
// without a follow-up existence check.
func (c *Clients) Add(ctx context.Context, cl Client) (created bool, err error) {
	res, err := c.st.DB().ExecContext(ctx, `
		INSERT INTO clients(name, city, nation, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(city) DO NOTHING
	`, cl.Name, cl.City, nullable(cl.Nation), nullable(cl.Notes))
	if err != nil {
		return false, fmt.Errorf("add client: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add client: rows affected: %w", err)
	}
	return n > 0, nil
}

// List returns all clients ordered by (name, city).
func (c *Clients) List(ctx context.Context) ([]Client, error) {
	rows, err := c.st.DB().QueryContext(ctx, `
		SELECT id, name, city, COALESCE(nation, ''), COALESCE(notes, '')
		FROM clients
		ORDER BY name, city
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var cl Client
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.City, &cl.Nation, &cl.Notes); err != nil {
			return nil, fmt.Errorf("list clients: scan: %w", err)
		}
		out = append(out, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

// Rename updates name, city and nation for the row matched by the old
// (name, city) pair, case-insensitively, in one statement. Returns the
// number of rows matched; zero means the old identity did not exist.
func (c *Clients) Rename(ctx context.Context, old, updated Client) (int64, error) {
	res, err := c.st.DB().ExecContext(ctx, `
		UPDATE clients SET name = ?, city = ?, nation = ?
		WHERE name = ? COLLATE foldcase AND city = ? COLLATE foldcase
	`, updated.Name, updated.City, nullable(updated.Nation), old.Name, old.City)
	if err != nil {
		return 0, fmt.Errorf("rename client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rename client: rows affected: %w", err)
	}
	return n, nil
}

// DependentCounts returns the number of projects and jobs that would be
// removed by deleting the named client. Read-only; used to feed the
// operator-facing confirmation prompt before Delete is ever called.
func (c *Clients) DependentCounts(ctx context.Context, name string) (projects, jobs int64, err error) {
	projects, jobs, err = dependentCounts(ctx, c.st.DB(), name)
	return
}

// Delete removes the named client; the storage layer cascades the
// delete to its projects and their jobs. Counts are captured first,
// inside the same transaction, so the reported numbers are exactly what
// the cascade removed. Deleting an unmatched name is not an error: the
// stats come back all zero.
//
// Callers must have obtained the operator's confirmation before calling;
// no prompt happens here.
func (c *Clients) Delete(ctx context.Context, name string) (DeleteStats, error) {
	var stats DeleteStats
	err := c.st.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		stats.Projects, stats.Jobs, err = dependentCounts(ctx, tx, name)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM clients WHERE name = ? COLLATE foldcase", name)
		if err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		stats.Clients, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete client: rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeleteStats{}, err
	}
	return stats, nil
}

func dependentCounts(ctx context.Context, q store.Querier, name string) (projects, jobs int64, err error) {
	err = q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		WHERE c.name = ? COLLATE foldcase
	`, name).Scan(&projects)
	if err != nil {
		return 0, 0, fmt.Errorf("count dependent projects: %w", err)
	}

	err = q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM jobs j
		JOIN projects p ON p.id = j.project_id
		JOIN clients c ON c.id = p.client_id
		WHERE c.name = ? COLLATE foldcase
	`, name).Scan(&jobs)
	if err != nil {
		return 0, 0, fmt.Errorf("count dependent jobs: %w", err)
	}
	return projects, jobs, nil
}

// nullable maps "" to NULL so optional columns stay NULL instead of
// collecting empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
