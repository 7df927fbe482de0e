package domain

import (
	"fmt"
	"strings"
)

// TrekOrder selects the column and direction for listing treks.
type TrekOrder struct {
	Field     string
	Ascending bool
}

// DefaultTrekOrder is ascending start date, the order the catalog is shown in.
var DefaultTrekOrder = TrekOrder{Field: "start_date", Ascending: true}

// sortableFields maps accepted field names to themselves; only these may be
// interpolated into SQL.
var sortableFields = map[string]bool{
	"start_date": true,
	"price":      true,
	"created_at": true,
	"title":      true,
}

// ParseTrekOrder parses "<field>.<asc|desc>". An empty string yields
// DefaultTrekOrder; a bare field defaults to ascending.
func ParseTrekOrder(s string) (TrekOrder, error) {
	if s == "" {
		return DefaultTrekOrder, nil
	}
	field, dir, _ := strings.Cut(s, ".")
	if !sortableFields[field] {
		return TrekOrder{}, fmt.Errorf("%w: cannot order by %q", ErrValidation, field)
	}
	switch dir {
	case "", "asc":
		return TrekOrder{Field: field, Ascending: true}, nil
	case "desc":
		return TrekOrder{Field: field, Ascending: false}, nil
	default:
		return TrekOrder{}, fmt.Errorf("%w: order direction must be asc or desc", ErrValidation)
	}
}

// Valid reports whether o names a sortable field.
func (o TrekOrder) Valid() bool {
	return sortableFields[o.Field]
}

// String renders o in the "<field>.<asc|desc>" query form.
func (o TrekOrder) String() string {
	if o.Ascending {
		return o.Field + ".asc"
	}
	return o.Field + ".desc"
}
