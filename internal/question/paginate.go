package question

import "strconv"

// DefaultPageSize is the number of questions per page.
const DefaultPageSize = 10

// ParsePage reads a 1-based page number, falling back to 1 when raw is
// missing, non-numeric or below 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns the page-th window of size items. Out-of-range pages yield
// an empty slice rather than an error.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if page-1 > len(items)/size {
		return items[len(items):]
	}
	start := (page - 1) * size
	if start >= len(items) {
		return items[len(items):]
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
