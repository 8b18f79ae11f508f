package leadview

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

// Field names a sortable lead column.
type Field string

// The supported sort fields.
const (
	FieldDateAdded  Field = "dateAdded"
	FieldName       Field = "name"
	FieldStage      Field = "stage"
	FieldChannel    Field = "channel"
	FieldAssignedTo Field = "assignedTo"
	FieldStatus     Field = "status"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Default sort on initial load: most recent first.
const (
	DefaultField     = FieldDateAdded
	DefaultDirection = Descending
)

// ValidField reports whether f is a supported sort field.
func ValidField(f Field) bool {
	switch f {
	case FieldDateAdded, FieldName, FieldStage, FieldChannel, FieldAssignedTo, FieldStatus:
		return true
	}
	return false
}

// NextSort implements the column-header toggle: clicking the active field
// flips the direction, clicking a different field resets to ascending.
func NextSort(field Field, direction Direction, clicked Field) (Field, Direction) {
	if clicked == field {
		if direction == Ascending {
			return field, Descending
		}
		return field, Ascending
	}
	return clicked, Ascending
}

// Comparator orders leads by exactly one field and direction. String
// fields use locale-aware collation; dateAdded compares the normalized
// instants numerically. Descending is the negation of ascending, not a
// separate algorithm.
type Comparator struct {
	field     Field
	direction Direction
	col       *collate.Collator
}

// NewComparator creates a comparator for the given field and direction.
func NewComparator(field Field, direction Direction) *Comparator {
	return &Comparator{
		field:     field,
		direction: direction,
		col:       collate.New(language.English),
	}
}

// Compare returns -1, 0 or 1 ordering a before/equal/after b.
func (c *Comparator) Compare(a, b models.Lead) int {
	result := c.ascending(a, b)
	if c.direction == Descending {
		result = -result
	}
	return result
}

func (c *Comparator) ascending(a, b models.Lead) int {
	switch c.field {
	case FieldDateAdded:
		switch {
		case a.DateAdded.Before(b.DateAdded):
			return -1
		case a.DateAdded.After(b.DateAdded):
			return 1
		default:
			return 0
		}
	case FieldName:
		return c.col.CompareString(a.Name(), b.Name())
	case FieldStage:
		return c.col.CompareString(a.Stage, b.Stage)
	case FieldChannel:
		return c.col.CompareString(a.Channel, b.Channel)
	case FieldAssignedTo:
		return c.col.CompareString(a.AssignedTo, b.AssignedTo)
	case FieldStatus:
		return c.col.CompareString(a.Status, b.Status)
	default:
		return 0
	}
}

// Sorted returns a sorted copy of leads. The input is never mutated; the
// sort is stable so ties keep their incoming order across re-renders.
func Sorted(leads []models.Lead, field Field, direction Direction) []models.Lead {
	out := make([]models.Lead, len(leads))
	copy(out, leads)
	cmp := NewComparator(field, direction)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp.Compare(out[i], out[j]) < 0
	})
	return out
}
