package leadview

import (
	"strings"
	"time"
	"unicode"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

// Category names a filterable lead field.
type Category string

// The canonical filter categories.
const (
	CategoryStage      Category = "stage"
	CategoryChannel    Category = "channel"
	CategoryStatus     Category = "status"
	CategoryAssignedTo Category = "assignedTo"
)

// FilterState is a snapshot of the active filters: an optional calendar
// date plus selected values per category. An absent or empty category
// imposes no constraint.
type FilterState struct {
	Date    *time.Time
	Filters map[Category][]string
}

// Empty reports whether the state imposes no constraint at all.
func (f FilterState) Empty() bool {
	if f.Date != nil {
		return false
	}
	for _, vals := range f.Filters {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Normalize lower-cases a filter token and collapses whitespace runs and
// hyphens into a single hyphen, so "Walk-ins", "walk ins" and "walk-ins"
// compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Include decides whether a lead belongs in the visible set for the given
// filter state. Pure; never returns an error. A lead whose date failed
// to parse is excluded whenever a date filter is active, and a missing
// field compares as the empty string.
func Include(lead models.Lead, state FilterState) bool {
	if state.Date != nil {
		if !lead.HasValidDate() {
			return false
		}
		if !sameCalendarDay(lead.DateAdded, *state.Date) {
			return false
		}
	}

	for category, selected := range state.Filters {
		if len(selected) == 0 {
			continue
		}
		value := Normalize(categoryValue(lead, category))
		match := false
		for _, s := range selected {
			if Normalize(s) == value {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	return true
}

// Filter returns the leads for which Include holds, in input order.
func Filter(leads []models.Lead, state FilterState) []models.Lead {
	filtered := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		if Include(l, state) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// sameCalendarDay compares year/month/day in local time, not instants.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func categoryValue(lead models.Lead, category Category) string {
	switch category {
	case CategoryStage:
		return lead.Stage
	case CategoryChannel:
		return lead.Channel
	case CategoryStatus:
		return lead.Status
	case CategoryAssignedTo:
		return lead.AssignedTo
	default:
		return ""
	}
}
