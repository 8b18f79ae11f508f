package leadview

import "github.com/Keerthan22-sys/Instigar/pkg/models"

// DefaultPageSize is the fixed lead-table page size.
const DefaultPageSize = 20

// Ellipsis marks a compressed gap in a page-number sequence.
const Ellipsis = -1

// Page is the result of paginating a filtered, sorted collection.
type Page struct {
	Items       []models.Lead
	TotalPages  int
	PageNumbers []int
}

// Paginate slices items into the page identified by currentPage (1-based).
// An empty collection yields TotalPages 0 and no page numbers. The
// function does not clamp currentPage: next/previous navigation must stay
// within [1, TotalPages] at the caller, and an out-of-range page simply
// yields an empty slice.
func Paginate(items []models.Lead, pageSize, currentPage int) Page {
	if len(items) == 0 || pageSize <= 0 {
		return Page{Items: []models.Lead{}}
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start < 0 || start >= len(items) {
		return Page{
			Items:       []models.Lead{},
			TotalPages:  totalPages,
			PageNumbers: PageNumbers(currentPage, totalPages),
		}
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:       items[start:end],
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(currentPage, totalPages),
	}
}

// PageNumbers produces the page-control sequence with ellipsis
// compression. The windows are deliberately asymmetric: near the start
// four leading numbers precede the tail ellipsis, near the end four
// trailing numbers follow the head ellipsis.
func PageNumbers(currentPage, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	if totalPages <= 5 {
		seq := make([]int, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			seq = append(seq, p)
		}
		return seq
	}

	if currentPage <= 3 {
		return []int{1, 2, 3, 4, Ellipsis, totalPages}
	}

	if currentPage >= totalPages-2 {
		return []int{1, Ellipsis, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	}

	return []int{1, Ellipsis, currentPage - 1, currentPage, currentPage + 1, Ellipsis, totalPages}
}
