package services

import "agencydash/dto"

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Paginate returns the requested page of items. Out-of-range pages are
// empty rather than an error.
func Paginate[T any](items []T, page, pageSize int) ([]T, dto.Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(items)
	p := dto.Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page-1 >= p.TotalPages {
		return []T{}, p
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], p
}
