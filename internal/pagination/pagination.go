// Package pagination holds the shared paging math for list endpoints
// and the compressed page-range sequence rendered by the client.
package pagination

import "strconv"

const (
	// MaxPageSize bounds pageSize on every paginated endpoint.
	MaxPageSize = 100
	// Ellipsis marks a collapsed gap in a page range.
	Ellipsis = "..."
)

// Params is a normalized page/pageSize pair.
type Params struct {
	Page     int
	PageSize int
}

// NewParams clamps raw query values: page >= 1, pageSize within
// 1..MaxPageSize, falling back to defaultSize when unset or invalid.
func NewParams(page, pageSize, defaultSize int) Params {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(total/pageSize), never less than 1 so an
// empty listing still renders page 1 of 1.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}

// PageRange produces the compressed sequence of page labels around
// current: always the first and last page, a window of one page either
// side of current, and an Ellipsis marker wherever pages were skipped.
func PageRange(current, total int) []string {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	const delta = 1
	left := max(2, current-delta)
	right := min(total-1, current+delta)

	out := []string{"1"}
	if left > 2 {
		out = append(out, Ellipsis)
	}
	for p := left; p <= right; p++ {
		out = append(out, strconv.Itoa(p))
	}
	if right < total-1 {
		out = append(out, Ellipsis)
	}
	if total > 1 {
		out = append(out, strconv.Itoa(total))
	}
	return out
}
