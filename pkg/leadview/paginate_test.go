package leadview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

func makeLeads(n int) []models.Lead {
	leads := make([]models.Lead, n)
	for i := range leads {
		leads[i] = models.Lead{ID: i + 1, DateAdded: time.Now().AddDate(0, 0, -i)}
	}
	return leads
}

func TestPaginate_EmptyCollection(t *testing.T) {
	page := Paginate(nil, DefaultPageSize, 1)

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages, "empty input yields totalPages 0, no controls")
	assert.Nil(t, page.PageNumbers)
}

func TestPaginate_SinglePartialPage(t *testing.T) {
	leads := makeLeads(7)

	page := Paginate(leads, DefaultPageSize, 1)

	assert.Len(t, page.Items, 7)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []int{1}, page.PageNumbers)
}

func TestPaginate_IdempotentOnSmallPage(t *testing.T) {
	leads := makeLeads(5)

	first := Paginate(leads, DefaultPageSize, 1)
	again := Paginate(first.Items, DefaultPageSize, 1)

	assert.Equal(t, first.Items, again.Items,
		"re-paginating an already-small page returns the same items unchanged")
}

func TestPaginate_SplitsExactBoundaries(t *testing.T) {
	leads := makeLeads(40)

	page1 := Paginate(leads, 20, 1)
	page2 := Paginate(leads, 20, 2)

	require.Len(t, page1.Items, 20)
	require.Len(t, page2.Items, 20)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.Items[0].ID)
	assert.Equal(t, 21, page2.Items[0].ID)
}

func TestPaginate_OutOfRangePageYieldsEmptySlice(t *testing.T) {
	leads := makeLeads(10)

	page := Paginate(leads, 20, 3)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPageNumbers_AllWhenFivePagesOrFewer(t *testing.T) {
	assert.Equal(t, []int{1}, PageNumbers(1, 1))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(3, 5))
	assert.Nil(t, PageNumbers(1, 0))
}

func TestPageNumbers_EllipsisWindows(t *testing.T) {
	// Near start: four leading numbers before the tail ellipsis.
	assert.Equal(t, []int{1, 2, 3, 4, Ellipsis, 10}, PageNumbers(1, 10))
	assert.Equal(t, []int{1, 2, 3, 4, Ellipsis, 10}, PageNumbers(3, 10))

	// Middle: head and tail ellipses around the current window.
	assert.Equal(t, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}, PageNumbers(5, 10))

	// Near end: four trailing numbers after the head ellipsis.
	assert.Equal(t, []int{1, Ellipsis, 7, 8, 9, 10}, PageNumbers(8, 10))
	assert.Equal(t, []int{1, Ellipsis, 7, 8, 9, 10}, PageNumbers(10, 10))
}

func TestPageNumbers_BoundaryBetweenWindows(t *testing.T) {
	// Page 4 of 10 is the first "middle" page; page 3 still uses the
	// leading window. The off-by-one boundaries are deliberate.
	assert.Equal(t, []int{1, Ellipsis, 3, 4, 5, Ellipsis, 10}, PageNumbers(4, 10))
	// Page 7 of 10 is the last "middle" page; page 8 switches to the
	// trailing window.
	assert.Equal(t, []int{1, Ellipsis, 6, 7, 8, Ellipsis, 10}, PageNumbers(7, 10))
}

func TestApply_EndToEnd25Leads(t *testing.T) {
	// 25 leads, page size 20, default sort dateAdded descending: page 1
	// holds the 20 most recent in descending order, page 2 the rest.
	leads := makeLeads(25)

	state := DefaultViewState()
	page1, total := Apply(leads, state)
	require.Equal(t, 25, total)
	require.Len(t, page1.Items, 20)
	assert.Equal(t, 2, page1.TotalPages)
	for i := 1; i < len(page1.Items); i++ {
		assert.False(t, page1.Items[i-1].DateAdded.Before(page1.Items[i].DateAdded),
			"page 1 must be in descending date order")
	}

	state.Page = 2
	page2, _ := Apply(leads, state)
	assert.Len(t, page2.Items, 5)
}

func TestApply_FallsBackToDefaultsOnBadState(t *testing.T) {
	leads := makeLeads(3)

	page, total := Apply(leads, ViewState{SortField: "bogus", SortDirection: "sideways"})

	assert.Equal(t, 3, total)
	require.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.Items[0].ID, "falls back to dateAdded descending")
}
