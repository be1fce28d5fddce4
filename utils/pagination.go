package utils

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page and limit and returns the row offset.
func NormalizePage(page, limit, max int) (int, int, int) {
	if max <= 0 {
		max = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > max {
		limit = max
	}
	return page, limit, (page - 1) * limit
}
