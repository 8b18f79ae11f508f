package leadview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

func testLead(channel, status, assignedTo, stage string, dateAdded time.Time) models.Lead {
	return models.Lead{
		FirstName:  "Test",
		LastName:   "Lead",
		Channel:    channel,
		Status:     status,
		AssignedTo: assignedTo,
		Stage:      stage,
		DateAdded:  dateAdded,
	}
}

func TestInclude_EmptyFilterIncludesEverything(t *testing.T) {
	leads := []models.Lead{
		testLead("Phone", "Active", "John Doe", "Intake", time.Now()),
		testLead("", "", "", "", time.Time{}),
		testLead("Walk-ins", "Inactive", "Unassigned", "Converted", time.Now().AddDate(0, 0, -3)),
	}

	state := FilterState{Filters: map[Category][]string{}}
	for _, l := range leads {
		assert.True(t, Include(l, state), "no-op filter must include every lead")
	}

	// A category with an empty selected set is vacuously true too.
	state = FilterState{Filters: map[Category][]string{CategoryChannel: {}}}
	for _, l := range leads {
		assert.True(t, Include(l, state))
	}
}

func TestInclude_SingleCategoryMatchesNormalizedEquality(t *testing.T) {
	lead := testLead("Walk-ins", "Active", "John Doe", "Intake", time.Now())

	state := FilterState{Filters: map[Category][]string{
		CategoryChannel: {"walk-ins"},
	}}
	assert.True(t, Include(lead, state), "hyphen/case normalization must match Walk-ins against walk-ins")

	state.Filters[CategoryChannel] = []string{"walk ins"}
	assert.True(t, Include(lead, state), "a space and a hyphen are equivalent tokens")

	state.Filters[CategoryChannel] = []string{"phone"}
	assert.False(t, Include(lead, state))
}

func TestInclude_CategoriesCombineWithAND(t *testing.T) {
	lead := testLead("Phone", "Active", "Jane Smith", "Qualified", time.Now())

	state := FilterState{Filters: map[Category][]string{
		CategoryChannel: {"Phone"},
		CategoryStatus:  {"Active"},
		CategoryStage:   {"Qualified"},
	}}
	assert.True(t, Include(lead, state))

	// One failing category excludes the lead even when the rest match.
	state.Filters[CategoryStatus] = []string{"Inactive"}
	assert.False(t, Include(lead, state))
}

func TestInclude_DateFilterMatchesCalendarDay(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	morning := time.Date(2025, 3, 14, 8, 30, 0, 0, time.Local)
	evening := time.Date(2025, 3, 14, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2025, 3, 15, 0, 0, 1, 0, time.Local)

	state := FilterState{Date: &day}

	assert.True(t, Include(testLead("Phone", "Active", "x", "Intake", morning), state))
	assert.True(t, Include(testLead("Phone", "Active", "x", "Intake", evening), state),
		"time of day must not matter, only year/month/day")
	assert.False(t, Include(testLead("Phone", "Active", "x", "Intake", nextDay), state))
}

func TestInclude_InvalidDateExcludedWhenDateFilterActive(t *testing.T) {
	invalid := testLead("Phone", "Active", "x", "Intake", models.ParseDate("not-a-date"))

	day := time.Now()
	state := FilterState{Date: &day}
	assert.False(t, Include(invalid, state), "unparseable dates are excluded, never a panic")

	// Without a date filter the same lead passes.
	assert.True(t, Include(invalid, FilterState{}))
}

func TestInclude_MissingFieldComparesAsEmptyString(t *testing.T) {
	lead := testLead("", "", "", "", time.Now())

	state := FilterState{Filters: map[Category][]string{
		CategoryAssignedTo: {"Unassigned"},
	}}
	assert.False(t, Include(lead, state))
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Channel: "Phone"},
		{ID: 2, Channel: "Website"},
		{ID: 3, Channel: "Phone"},
	}

	got := Filter(leads, FilterState{Filters: map[Category][]string{
		CategoryChannel: {"phone"},
	}})

	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Walk-ins":       "walk-ins",
		"walk ins":       "walk-ins",
		"Social media":   "social-media",
		"  Social media": "social-media",
		"PHONE":          "phone",
		"":               "",
		" - ":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}
