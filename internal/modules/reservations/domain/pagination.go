package domain

import "reservationsClient/internal/shared/normalization"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination describes the last fetched page.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Page is a normalized list response.
type Page struct {
	Items      []Reservation `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// NormalizePage builds a Page from a decoded envelope. Explicit pagination metadata wins; when the
// backend sends none it is synthesized from the item count and the requested page.
func NormalizePage(env Envelope, page, pageSize int) Page {
	items := env.Reservations()
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	pagination := Pagination{
		Total:    len(items),
		Page:     page,
		PageSize: pageSize,
	}

	meta := env.Meta
	if nested, ok := normalization.Lookup(meta, "pagination", "meta"); ok {
		if nestedMap, ok := nested.(map[string]any); ok {
			meta = nestedMap
		}
	}
	if normalization.HasField(meta, "total", "totalCount") {
		pagination.Total = normalization.IntField(meta, "total", "totalCount")
	}
	if value := normalization.IntField(meta, "page", "pageNumber"); value > 0 {
		pagination.Page = value
	}
	if value := normalization.IntField(meta, "pageSize", "limit"); value > 0 {
		pagination.PageSize = value
	}
	if normalization.HasField(meta, "totalPages") {
		pagination.TotalPages = normalization.IntField(meta, "totalPages")
	} else {
		pagination.TotalPages = totalPages(pagination.Total, pagination.PageSize)
	}

	return Page{Items: items, Pagination: pagination}
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
