package domain

import "math"

type (
	UserId    = int64
	Username  = string
	Email     = string
	TitleId   = int64
	ReviewId  = int64
	CommentId = int64
	Slug      = string
	Score     = int
)

const (
	MinScore = 1
	MaxScore = 10
)

// Pagination is a 1-based page request
type Pagination struct {
	Page int
	Size int
}

func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	if p.Size > 0 && p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

type Page[T any] struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	Results []T `json:"results"`
}
