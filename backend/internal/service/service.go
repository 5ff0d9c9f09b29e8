package service

import (
	"github.com/yamdb-dev/yamdb/shared/domain"
)

const defaultPageSize = 10

// pagination turns a 1-based page number from the request into a page request
func pagination(page, size int) domain.Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	return domain.Pagination{Page: page, Size: size}
}

func newPage[T any](results []T, count int, p domain.Pagination) domain.Page[T] {
	if results == nil {
		results = make([]T, 0)
	}
	return domain.Page[T]{Count: count, Page: p.Page, Results: results}
}
