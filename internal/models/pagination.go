package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NewPagination derives the page count from the totals.
func NewPagination(page, size, total int) *Pagination {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total, TotalPages: pages}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage applies the default page and page size bounds.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}
