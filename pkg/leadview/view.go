// Package leadview implements the in-memory transformation from a raw
// lead collection to a rendered table page: filter predicates combined by
// AND, a single-key locale-aware sort, and fixed-size pagination with
// ellipsis-compressed page controls. Every function is pure; the source
// collection is treated as read-only input.
package leadview

import "github.com/Keerthan22-sys/Instigar/pkg/models"

// ViewState is the caller-held view state the pipeline is recomputed
// from on every change.
type ViewState struct {
	Filter        FilterState
	SortField     Field
	SortDirection Direction
	Page          int
	PageSize      int
}

// DefaultViewState returns the initial table state: no filters, most
// recent first, first page.
func DefaultViewState() ViewState {
	return ViewState{
		SortField:     DefaultField,
		SortDirection: DefaultDirection,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

// Apply runs the full pipeline: filter, stable sort, paginate. It also
// returns the size of the filtered set so callers can report totals.
func Apply(leads []models.Lead, state ViewState) (Page, int) {
	field := state.SortField
	if !ValidField(field) {
		field = DefaultField
	}
	direction := state.SortDirection
	if direction != Ascending && direction != Descending {
		direction = DefaultDirection
	}
	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := state.Page
	if page <= 0 {
		page = 1
	}

	filtered := Filter(leads, state.Filter)
	sorted := Sorted(filtered, field, direction)
	return Paginate(sorted, pageSize, page), len(filtered)
}
