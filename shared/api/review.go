package api

type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required,notblank"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// UpdateReviewRequest can't move a review to another title or author
type UpdateReviewRequest struct {
	Text  *string `json:"text" validate:"omitempty,notblank"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}
