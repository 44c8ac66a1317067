package services

// MaxPageSize caps the number of rows a single list call may return.
const MaxPageSize = 100

// Pagination carries normalized page/limit values for list queries.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps raw page/limit input to sane values. Non-positive
// values fall back to page 1 and defaultLimit; limit is capped at
// MaxPageSize.
func NewPagination(page, limit, defaultLimit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes one page of a list result.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// BuildMeta computes totalPages and hasMore from a row count.
func BuildMeta(total int64, p Pagination) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasMore:    int64(p.Page)*int64(p.Limit) < total,
	}
}
