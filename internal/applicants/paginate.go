package applicants

import "math"

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Offset is the number of rows skipped before page. It saturates at
// math.MaxInt instead of overflowing.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Paginate computes page metadata; page and limit must be positive.
func Paginate(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page >= 1 && page < totalPages,
		HasPrev:    page > 1,
	}
}

// Page slices an already filtered and sorted set.
func Page[T any](items []T, page, limit int) ([]T, Pagination) {
	p := Paginate(len(items), page, limit)

	start := Offset(page, limit)
	if start < 0 || start >= len(items) {
		return []T{}, p
	}
	end := start + limit
	if end > len(items) || end < start {
		end = len(items)
	}
	return items[start:end], p
}
