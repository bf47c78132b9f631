package domain

// Paged is the result envelope every listing returns: one page of items
// plus enough metadata to render pagination. Metadata is always populated,
// including for empty result sets.
type Paged[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

func NewPaged[T any](items []T, total, page, perPage int) Paged[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Paged[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}

// ClampPage normalizes a requested page number; pages start at 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizePerPage falls back to def when the requested size is out of range.
func NormalizePerPage(perPage, def int) int {
	if perPage <= 0 || perPage > 100 {
		return def
	}
	return perPage
}
