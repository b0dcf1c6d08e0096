package booking

import "strings"

// Page is one window of a paginated list. Items is a sub-slice of the
// source list (no copy), so callers must not append to it.
type Page[T any] struct {
	Items      []T
	Current    int
	TotalPages int
	TotalItems int
}

// Paginate slices items into page-sized windows and returns the window
// for the requested 1-indexed page. totalPages is ceil(N/P); the page
// index is clamped into [1, totalPages], so page 0 yields the first
// page and an overshoot yields the last. A non-positive size falls
// back to a single page holding everything.
func Paginate[T any](items []T, page, size int) Page[T] {
	n := len(items)
	if size <= 0 {
		size = n
		if size == 0 {
			size = 1
		}
	}
	total := (n + size - 1) / size
	if total == 0 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	lo := (page - 1) * size
	hi := lo + size
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return Page[T]{Items: items[lo:hi], Current: page, TotalPages: total, TotalItems: n}
}

// Pager tracks the current page across successive re-filterings of a
// list. The page is retained while it stays in range for the new
// filtered size and resets to 1 only when it would fall out of range.
type Pager struct {
	Current int
	Size    int
}

// NewPager starts on page 1 with the given page size.
func NewPager(size int) *Pager { return &Pager{Current: 1, Size: size} }

// Apply paginates the (already filtered) items at the tracked page,
// applying the retain-or-reset rule first.
func Apply[T any](p *Pager, items []T) Page[T] {
	size := p.Size
	if size <= 0 {
		size = 1
	}
	total := (len(items) + size - 1) / size
	if total == 0 {
		total = 1
	}
	if p.Current < 1 || p.Current > total {
		p.Current = 1
	}
	return Paginate(items, p.Current, p.Size)
}

// SetPage moves the pager to the requested page; Paginate clamps it on
// the next Apply.
func (p *Pager) SetPage(page int) { p.Current = page }

// MatchText reports whether query is a case-insensitive substring of
// at least one of the fields. An empty query matches everything, so a
// blank search box is a pass-through filter.
func MatchText(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter keeps the items matching every predicate (logical AND),
// preserving source order. Filtering always precedes pagination.
func Filter[T any](items []T, preds ...func(T) bool) []T {
	if len(preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}
