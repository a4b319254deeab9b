// Package pager keeps a selection cursor and a page number consistent over a
// list that is split into fixed-size pages.
//
// Pages are 1-indexed, selections are 0-indexed into the full list. A
// selection of -1 means the list is empty and nothing can be selected.
package pager

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 5

// TotalPages returns ceil(total/perPage), never less than 1.
func TotalPages(total, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ChangePage returns page+direction when that lands inside
// [1, totalPages], otherwise page unchanged.
func ChangePage(page, totalPages, direction int) int {
	next := page + direction
	if next < 1 || next > totalPages {
		return page
	}
	return next
}

// Bounds returns the half-open index range [start, end) shown on page.
func Bounds(page, perPage, total int) (start, end int) {
	start = (page - 1) * perPage
	end = min(page*perPage, total)
	if start > end {
		start = end
	}
	return start, end
}

// Move steps the selection by direction (-1 or +1). Stepping past either
// edge of the current page turns the page when possible; at the first or
// last item the selection stops instead of wrapping.
func Move(selected, page, perPage, total, direction int) (int, int) {
	if total <= 0 {
		return -1, 1
	}

	start, end := Bounds(page, perPage, total)
	candidate := selected + direction
	totalPages := TotalPages(total, perPage)

	switch {
	case candidate >= end:
		if next := ChangePage(page, totalPages, 1); next != page {
			return (next - 1) * perPage, next
		}
		return total - 1, page
	case candidate < start:
		if prev := ChangePage(page, totalPages, -1); prev != page {
			return min(total-1, prev*perPage-1), prev
		}
		return 0, page
	default:
		return candidate, page
	}
}

// ClampToPage pulls selected into the index range of page.
func ClampToPage(selected, page, perPage, total int) int {
	if total <= 0 {
		return -1
	}
	start, end := Bounds(page, perPage, total)
	if selected < start {
		return start
	}
	if selected >= end {
		return end - 1
	}
	return selected
}

// Refresh reconciles a selection with a freshly fetched list of total items.
// The selection is clamped into the list and the page is re-derived from it,
// so a list that shrank by more than a page never leaves page past the end.
func Refresh(selected, perPage, total int) (int, int) {
	if total <= 0 {
		return -1, 1
	}
	if selected >= total {
		selected = total - 1
	}
	if selected < 0 {
		selected = 0
	}
	return selected, selected/perPage + 1
}

// State bundles the page, the selection and the list length they refer to.
type State struct {
	PerPage  int
	Page     int
	Selected int
	Total    int
}

// New returns the state for an empty list.
func New(perPage int) State {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return State{PerPage: perPage, Page: 1, Selected: -1}
}

func (s State) TotalPages() int {
	return TotalPages(s.Total, s.PerPage)
}

// Bounds returns the index range of the current page.
func (s State) Bounds() (int, int) {
	return Bounds(s.Page, s.PerPage, s.Total)
}

// HasSelection reports whether Selected points at an item.
func (s State) HasSelection() bool {
	return s.Total > 0 && s.Selected >= 0 && s.Selected < s.Total
}

// Move steps the selection, turning pages at the edges.
func (s *State) Move(direction int) {
	if s.Total <= 0 {
		return
	}
	s.Selected, s.Page = Move(s.Selected, s.Page, s.PerPage, s.Total, direction)
}

// ChangePage turns the page and pulls the selection onto it.
func (s *State) ChangePage(direction int) {
	if s.Total <= 0 {
		return
	}
	s.Page = ChangePage(s.Page, s.TotalPages(), direction)
	s.Selected = ClampToPage(s.Selected, s.Page, s.PerPage, s.Total)
}

// Resize applies a refreshed list length.
func (s *State) Resize(total int) {
	s.Total = max(total, 0)
	s.Selected, s.Page = Refresh(s.Selected, s.PerPage, s.Total)
}
