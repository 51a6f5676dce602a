// Package pagination windows ordered collections into fixed-size pages and
// keeps the current page across restarts.
package pagination

// DefaultPageSize is the number of recipes per page.
const DefaultPageSize = 10

// PageCount is ceil(total/size). A non-positive size counts as 1.
func PageCount(total, size int) int {
	if total <= 0 {
		return 0
	}
	if size <= 0 {
		size = 1
	}
	return (total + size - 1) / size
}

// Clamp moves page into [1, max(PageCount, 1)].
func Clamp(page, total, size int) int {
	last := max(PageCount(total, size), 1)
	return min(max(page, 1), last)
}

// Window returns the slice of items shown on page, after clamping page.
// The result aliases items.
func Window[T any](items []T, size, page int) []T {
	if size <= 0 {
		size = 1
	}
	p := Clamp(page, len(items), size)
	start := (p - 1) * size
	if start >= len(items) {
		return items[:0:0]
	}
	return items[start:min(p*size, len(items))]
}
