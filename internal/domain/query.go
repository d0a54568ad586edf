package domain

import "strings"

// DefaultPerPage is the page size of the roster screens.
const DefaultPerPage = 10

// MaxPerPage caps the page size a client may ask for.
const MaxPerPage = 100

// ListQuery is a free-text search plus paging over a list view.
type ListQuery struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"perPage"`
}

// Page is one slice of a filtered list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate cuts items into the requested page. Out-of-range pages are empty.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	// Compared before multiplying so huge page numbers cannot overflow.
	if page-1 >= p.TotalPages {
		return p
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	p.Items = append(p.Items, items[start:end]...)
	return p
}

// MatchesAny reports whether any field contains search, ignoring case.
// An empty search matches everything.
func MatchesAny(search string, fields ...string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	needle := Fold(search)
	for _, f := range fields {
		if strings.Contains(Fold(f), needle) {
			return true
		}
	}
	return false
}
