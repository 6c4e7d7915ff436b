package api

import (
	"strconv"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
)

type pageResponse[T any] struct {
	Count    int  `json:"count"`
	Next     *int `json:"next"`
	Previous *int `json:"previous"`
	Results  []T  `json:"results"`
}

func parsePage(c *gin.Context, cfg config.PaginationConfig) (domain.PageRequest, error) {
	req := domain.PageRequest{Page: 1, PageSize: cfg.PageSize}
	fields := domain.FieldErrors{}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields["page"] = "invalid page"
		}
		req.Page = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields["page_size"] = "invalid page size"
		}
		req.PageSize = min(n, cfg.MaxPageSize)
	}
	if len(fields) > 0 {
		return domain.PageRequest{}, fields
	}
	return req, nil
}

func newPageResponse[S, T any](page domain.Page[S], convert func(S) T) pageResponse[T] {
	resp := pageResponse[T]{Count: page.Total, Results: make([]T, 0, len(page.Items))}
	for _, item := range page.Items {
		resp.Results = append(resp.Results, convert(item))
	}
	if page.HasNext() {
		next := page.Page + 1
		resp.Next = &next
	}
	if page.HasPrevious() {
		prev := page.Page - 1
		resp.Previous = &prev
	}
	return resp
}
