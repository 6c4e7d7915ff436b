package domain

// PageRequest is a 1-based page selection.
type PageRequest struct {
	Page     int
	PageSize int
}

type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

func (p Page[T]) HasNext() bool {
	return p.Page*p.PageSize < p.Total
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}
