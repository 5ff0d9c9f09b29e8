package service

import (
	"context"

	"github.com/yamdb-dev/yamdb/backend/internal/service/utils"
	"github.com/yamdb-dev/yamdb/shared/access"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
)

type CommentService interface {
	List(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, page int) (domain.Page[domain.Comment], error)
	Get(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error)
	Create(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, text string) (domain.Comment, error)
	Update(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId, text string) (domain.Comment, error)
	Delete(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) error
}

type CommentStorage interface {
	Review(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error)
	SaveComment(ctx context.Context, titleId domain.TitleId, data domain.CommentCreationData) (domain.Comment, error)
	Comment(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error)
	Comments(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, p domain.Pagination) ([]domain.Comment, int, error)
	UpdateComment(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId, text string) (domain.Comment, error)
	DeleteComment(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) error
}

type Comment struct {
	storage  CommentStorage
	pageSize int
}

func NewComment(storage CommentStorage, pageSize int) *Comment {
	return &Comment{storage: storage, pageSize: pageSize}
}

// List returns NotFound unless the review exists under titleId
func (c *Comment) List(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, page int) (domain.Page[domain.Comment], error) {
	if _, err := c.storage.Review(ctx, titleId, reviewId); err != nil {
		return domain.Page[domain.Comment]{}, err
	}
	p := pagination(page, c.pageSize)
	comments, count, err := c.storage.Comments(ctx, titleId, reviewId, p)
	if err != nil {
		return domain.Page[domain.Comment]{}, err
	}
	return newPage(comments, count, p), nil
}

func (c *Comment) Get(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error) {
	return c.storage.Comment(ctx, titleId, reviewId, id)
}

func (c *Comment) Create(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, text string) (domain.Comment, error) {
	if err := access.Require(actor, false, access.Create); err != nil {
		return domain.Comment{}, err
	}
	text = utils.CleanText(text)
	if text == "" {
		return domain.Comment{}, errors.Validation("text: may not be blank")
	}
	return c.storage.SaveComment(ctx, titleId, domain.CommentCreationData{ReviewId: reviewId, AuthorId: actor.Id, Text: text})
}

func (c *Comment) Update(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId, text string) (domain.Comment, error) {
	comment, err := c.storage.Comment(ctx, titleId, reviewId, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := access.RequireOnResource(actor, comment.AuthorId, access.Update); err != nil {
		return domain.Comment{}, err
	}
	text = utils.CleanText(text)
	if text == "" {
		return domain.Comment{}, errors.Validation("text: may not be blank")
	}
	return c.storage.UpdateComment(ctx, titleId, reviewId, id, text)
}

func (c *Comment) Delete(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) error {
	comment, err := c.storage.Comment(ctx, titleId, reviewId, id)
	if err != nil {
		return err
	}
	if err := access.RequireOnResource(actor, comment.AuthorId, access.Delete); err != nil {
		return err
	}
	return c.storage.DeleteComment(ctx, titleId, reviewId, id)
}
