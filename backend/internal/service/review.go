package service

import (
	"context"

	"github.com/yamdb-dev/yamdb/backend/internal/service/utils"
	"github.com/yamdb-dev/yamdb/shared/access"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
	"github.com/yamdb-dev/yamdb/shared/logger"
	"github.com/yamdb-dev/yamdb/shared/middleware/metrics"
)

type ReviewService interface {
	List(ctx context.Context, titleId domain.TitleId, page int) (domain.Page[domain.Review], error)
	Get(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error)
	Create(ctx context.Context, actor domain.Actor, titleId domain.TitleId, score domain.Score, text string) (domain.Review, error)
	Update(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error)
	Delete(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId) error
}

type ReviewStorage interface {
	TitleExists(ctx context.Context, id domain.TitleId) error
	SaveReview(ctx context.Context, data domain.ReviewCreationData) (domain.Review, error)
	Review(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error)
	Reviews(ctx context.Context, titleId domain.TitleId, p domain.Pagination) ([]domain.Review, int, error)
	UpdateReview(ctx context.Context, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error)
	DeleteReview(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) error
}

type Review struct {
	storage  ReviewStorage
	pageSize int
}

func NewReview(storage ReviewStorage, pageSize int) *Review {
	return &Review{storage: storage, pageSize: pageSize}
}

func (r *Review) List(ctx context.Context, titleId domain.TitleId, page int) (domain.Page[domain.Review], error) {
	if err := r.storage.TitleExists(ctx, titleId); err != nil {
		return domain.Page[domain.Review]{}, err
	}
	p := pagination(page, r.pageSize)
	reviews, count, err := r.storage.Reviews(ctx, titleId, p)
	if err != nil {
		return domain.Page[domain.Review]{}, err
	}
	return newPage(reviews, count, p), nil
}

func (r *Review) Get(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error) {
	return r.storage.Review(ctx, titleId, id)
}

// Create writes the review in one insert; the (title, author) unique
// constraint decides between concurrent attempts. The loser gets Conflict and
// is never retried.
func (r *Review) Create(ctx context.Context, actor domain.Actor, titleId domain.TitleId, score domain.Score, text string) (domain.Review, error) {
	if err := access.Require(actor, false, access.Create); err != nil {
		return domain.Review{}, err
	}
	text = utils.CleanText(text)
	if err := validateReview(&score, &text); err != nil {
		return domain.Review{}, err
	}

	review, err := r.storage.SaveReview(ctx, domain.ReviewCreationData{
		TitleId:  titleId,
		AuthorId: actor.Id,
		Score:    score,
		Text:     text,
	})
	if err != nil {
		if errors.IsConflict(err) {
			metrics.ReviewConflict()
			logger.Log.Info("duplicate review rejected", "title_id", titleId, "author_id", actor.Id)
		}
		return domain.Review{}, err
	}
	return review, nil
}

func (r *Review) Update(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error) {
	review, err := r.storage.Review(ctx, titleId, id)
	if err != nil {
		return domain.Review{}, err
	}
	if err := access.RequireOnResource(actor, review.AuthorId, access.Update); err != nil {
		return domain.Review{}, err
	}
	upd.Text = utils.CleanTextPtr(upd.Text)
	if err := validateReview(upd.Score, upd.Text); err != nil {
		return domain.Review{}, err
	}
	if upd.Score == nil && upd.Text == nil {
		return review, nil
	}
	return r.storage.UpdateReview(ctx, titleId, id, upd)
}

func (r *Review) Delete(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId) error {
	review, err := r.storage.Review(ctx, titleId, id)
	if err != nil {
		return err
	}
	if err := access.RequireOnResource(actor, review.AuthorId, access.Delete); err != nil {
		return err
	}
	return r.storage.DeleteReview(ctx, titleId, id)
}

// validateReview checks the fields that are present
func validateReview(score *domain.Score, text *string) error {
	if score != nil && (*score < domain.MinScore || *score > domain.MaxScore) {
		return errors.Validation("score: must be an integer from 1 to 10")
	}
	if text != nil && *text == "" {
		return errors.Validation("text: may not be blank")
	}
	return nil
}
