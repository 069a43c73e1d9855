package service

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps page inputs and converts them to limit/offset.
func normalizePage(page, limit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// totalPages computes the page count for a result set.
func totalPages(count int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}
