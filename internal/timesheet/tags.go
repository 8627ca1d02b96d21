package timesheet

import "fmt"

// TagKind selects one of the work-type catalogs a job entry's work_type
// can be drawn from.
type TagKind string

const (
	TagWork TagKind = "work"
	TagWait TagKind = "wait"
	TagOut  TagKind = "out"
)

// TagEntry pairs a catalog code with its label.
type TagEntry struct {
	Code  string
	Label string
}

var workTags = []TagEntry{
	{"1", "Fitting & Setting"},
	{"2", "Start Up"},
	{"3", "Commissioning"},
	{"4", "Warranty Work"},
	{"5", "Tech Assistance"},
	{"6", "Training - Demo"},
	{"7", "Test"},
	{"8", "Site Survey"},
	{"9", "Diagnostic Visit"},
	{"10", "Refurbishment"},
	{"11", "Option - Upgrade"},
	{"12", "Invoiced Work"},
	{"13", "Day Off On Job"},
	{"14", "Day Off At Home"},
	{"15", "Not Chargeable"},
	{"16", "Others"},
	{"T", "Travel"},
}

var waitTags = []TagEntry{
	{"A", "Waiting For End User"},
	{"B", "Waiting For Supplier"},
	{"C", "Waiting For Customer"},
}

var outOfRangeTags = []TagEntry{
	{"D", "Adjustments"},
	{"E", "Repair"},
	{"F", "Problem Research"},
	{"G", "Customer Request"},
	{"H", "On Site Final Touch"},
	{"I", "Work On Ancillary"},
	{"J", "Missing Parts"},
	{"K", "Others"},
}

// Catalog returns the tag entries of the given kind in catalog order.
func Catalog(kind TagKind) ([]TagEntry, error) {
	switch kind {
	case TagWork:
		return workTags, nil
	case TagWait:
		return waitTags, nil
	case TagOut:
		return outOfRangeTags, nil
	default:
		return nil, fmt.Errorf("unknown tag kind %q", kind)
	}
}

// TagLabel resolves a catalog code to its label. The second return is
// false when the code is not in the catalog; callers fall back to
// treating the value as free text.
func TagLabel(kind TagKind, code string) (string, bool) {
	entries, err := Catalog(kind)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.Code == code {
			return e.Label, true
		}
	}
	return "", false
}
