package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	shared_pg "github.com/yamdb-dev/yamdb/shared/storage/pg"
)

const reviewSelect = `
	SELECT r.id, r.title_id, r.author_id, u.username, r.score, r.text, r.pub_date
	FROM reviews r JOIN users u ON u.id = r.author_id`

var ErrDuplicateReview = internal_errors.Conflict("You have already reviewed this title")

// =========================================================================
// Public Methods (satisfy the service.ReviewStorage interface)
// =========================================================================

// SaveReview is a single INSERT guarded by reviews_title_author_key. Two
// concurrent calls for the same (title, author) end with one row and one
// ErrDuplicateReview; nothing is read before writing.
func (s *Storage) SaveReview(ctx context.Context, data domain.ReviewCreationData) (domain.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	review := domain.Review{
		TitleId:  data.TitleId,
		AuthorId: data.AuthorId,
		Score:    data.Score,
		Text:     data.Text,
	}
	err := s.db.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO reviews(title_id, author_id, score, text)
			VALUES($1, $2, $3, $4)
			RETURNING id, pub_date, author_id
		)
		SELECT i.id, i.pub_date, u.username FROM inserted i JOIN users u ON u.id = i.author_id`,
		data.TitleId, data.AuthorId, data.Score, data.Text,
	).Scan(&review.Id, &review.PubDate, &review.Author)
	if err != nil {
		switch {
		case shared_pg.IsUniqueViolation(err):
			return domain.Review{}, ErrDuplicateReview
		case shared_pg.IsForeignKeyViolation(err):
			if shared_pg.ConstraintName(err) == "reviews_author_id_fkey" {
				return domain.Review{}, internal_errors.NotFound("User not found")
			}
			return domain.Review{}, internal_errors.NotFound("Title not found")
		case errors.Is(err, sql.ErrNoRows):
			// author vanished between insert and join
			return domain.Review{}, internal_errors.NotFound("User not found")
		}
		return domain.Review{}, fmt.Errorf("failed to insert review: %w", err)
	}
	return review, nil
}

// Review returns NotFound unless the review belongs to titleId
func (s *Storage) Review(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.review(ctx, s.db, titleId, id)
}

func (s *Storage) Reviews(ctx context.Context, titleId domain.TitleId, p domain.Pagination) ([]domain.Review, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews WHERE title_id = $1", titleId).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, reviewSelect+" WHERE r.title_id = $1 ORDER BY r.pub_date DESC, r.id DESC LIMIT $2 OFFSET $3",
		titleId, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.Id, &r.TitleId, &r.AuthorId, &r.Author, &r.Score, &r.Text, &r.PubDate); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return reviews, count, nil
}

// UpdateReview changes score and/or text; title and author are fixed
func (s *Storage) UpdateReview(ctx context.Context, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var review domain.Review
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE reviews SET score = COALESCE($1, score), text = COALESCE($2, text) WHERE id = $3 AND title_id = $4",
			upd.Score, upd.Text, id, titleId)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		if err := requireAffected(result, "Review not found"); err != nil {
			return err
		}
		review, err = s.review(ctx, tx, titleId, id)
		return err
	})
	return review, err
}

// DeleteReview cascades to its comments
func (s *Storage) DeleteReview(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1 AND title_id = $2", id, titleId)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return requireAffected(result, "Review not found")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) review(ctx context.Context, q shared_pg.Querier, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error) {
	var r domain.Review
	err := q.QueryRowContext(ctx, reviewSelect+" WHERE r.id = $1 AND r.title_id = $2", id, titleId).
		Scan(&r.Id, &r.TitleId, &r.AuthorId, &r.Author, &r.Score, &r.Text, &r.PubDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, internal_errors.NotFound("Review not found")
		}
		return domain.Review{}, fmt.Errorf("failed to query review: %w", err)
	}
	return r, nil
}
