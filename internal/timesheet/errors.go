package timesheet

import (
	"errors"
	"fmt"
	"strings"
)

// ClientNotFoundError reports that no client row matches the given name.
type ClientNotFoundError struct {
	Name string
}

func (e *ClientNotFoundError) Error() string {
	return fmt.Sprintf("client %q not found", e.Name)
}

// PlantNotFoundError reports that a client name matches nothing under
// the given city.
type PlantNotFoundError struct {
	Name string
	City string
}

func (e *PlantNotFoundError) Error() string {
	return fmt.Sprintf("no plant of %q in %q", e.Name, e.City)
}

// MultiPlantError reports an ambiguous client resolution: the name maps
// to more than one plant, or the supplied city does not match any of
// the plants registered under the name. Cities carries the candidate
// cities, sorted and deduplicated, with "—" standing in for an empty
// city value.
type MultiPlantError struct {
	Name   string
	Cities []string
}

func (e *MultiPlantError) Error() string {
	return fmt.Sprintf("client %q has plants in more than one city: %s",
		e.Name, strings.Join(e.Cities, ", "))
}

// ProjectNotFoundError reports that no project matches the given name.
// The boundary layer treats it as the trigger for "create this project
// now" recovery.
type ProjectNotFoundError struct {
	Name string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project %q not found", e.Name)
}

// TimeRangeError reports a job whose end is not strictly after its start.
type TimeRangeError struct {
	Start string
	End   string
}

func (e *TimeRangeError) Error() string {
	return fmt.Sprintf("end_at %q must be after start_at %q", e.End, e.Start)
}

// IsNotFound reports whether err is any of the not-found conditions
// (client, plant, or project). These are recoverable: the caller can
// create the missing entity and retry.
func IsNotFound(err error) bool {
	var cnf *ClientNotFoundError
	var pnf *PlantNotFoundError
	var prj *ProjectNotFoundError
	return errors.As(err, &cnf) || errors.As(err, &pnf) || errors.As(err, &prj)
}

// IsAmbiguous reports whether err is an ambiguous client resolution.
// The caller is expected to resupply a disambiguating city and retry.
func IsAmbiguous(err error) bool {
	var mp *MultiPlantError
	return errors.As(err, &mp)
}
