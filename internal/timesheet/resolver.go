package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"timbro/internal/store"
)

// ResolveClient maps an operator-supplied (name, city) pair to exactly
// one client id, or explains why it cannot.
//
// With a city: the (name, city) pair must match one row. If it does
// not, but the name has at least one plant registered, the failure is
// MultiPlantError listing the cities that do exist - the name is real
// and the city is what needs fixing. If the name has no plants at all,
// the failure is PlantNotFoundError.
//
// Without a city: zero rows is ClientNotFoundError, one row resolves,
// more than one is MultiPlantError - the caller must resupply a city.
//
// q is the caller's transaction when the resolved id feeds a subsequent
// write: resolution and insert must share one transaction so the id
// cannot go stale between them.
func ResolveClient(ctx context.Context, q store.Querier, name, city string) (int64, error) {
	if city != "" {
		var id int64
		err := q.QueryRowContext(ctx, `
			SELECT id FROM clients
			WHERE name = ? COLLATE foldcase AND city = ? COLLATE foldcase
		`, name, city).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("resolve client: %w", err)
		}

		cities, err := candidateCities(ctx, q, name)
		if err != nil {
			return 0, err
		}
		if len(cities) > 0 {
			return 0, &MultiPlantError{Name: name, Cities: cities}
		}
		return 0, &PlantNotFoundError{Name: name, City: city}
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, city FROM clients WHERE name = ? COLLATE foldcase
	`, name)
	if err != nil {
		return 0, fmt.Errorf("resolve client: %w", err)
	}
	defer rows.Close()

	var ids []int64
	var cities []string
	for rows.Next() {
		var id int64
		var c sql.NullString
		if err := rows.Scan(&id, &c); err != nil {
			return 0, fmt.Errorf("resolve client: scan: %w", err)
		}
		ids = append(ids, id)
		cities = append(cities, placeholderIfEmpty(c))
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("resolve client: %w", err)
	}

	switch len(ids) {
	case 0:
		return 0, &ClientNotFoundError{Name: name}
	case 1:
		return ids[0], nil
	default:
		return 0, &MultiPlantError{Name: name, Cities: dedupSorted(cities)}
	}
}

// candidateCities returns the distinct cities registered under name,
// sorted, with the placeholder for empty values.
func candidateCities(ctx context.Context, q store.Querier, name string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT city FROM clients WHERE name = ? COLLATE foldcase
	`, name)
	if err != nil {
		return nil, fmt.Errorf("candidate cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var c sql.NullString
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("candidate cities: scan: %w", err)
		}
		cities = append(cities, placeholderIfEmpty(c))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("candidate cities: %w", err)
	}
	return dedupSorted(cities), nil
}

// placeholder stands in for an absent city in candidate listings.
const placeholder = "—"

func placeholderIfEmpty(c sql.NullString) string {
	if !c.Valid || c.String == "" {
		return placeholder
	}
	return c.String
}

func dedupSorted(cities []string) []string {
	seen := make(map[string]struct{}, len(cities))
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
