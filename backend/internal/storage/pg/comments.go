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

// comments are always addressed through their title and review
const commentSelect = `
	SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
	FROM comments c
	JOIN reviews r ON r.id = c.review_id
	JOIN users u ON u.id = c.author_id`

// SaveComment inserts only if the review belongs to titleId
func (s *Storage) SaveComment(ctx context.Context, titleId domain.TitleId, data domain.CommentCreationData) (domain.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	comment := domain.Comment{ReviewId: data.ReviewId, AuthorId: data.AuthorId, Text: data.Text}
	err := s.db.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO comments(review_id, author_id, text)
			SELECT r.id, $2, $3 FROM reviews r WHERE r.id = $1 AND r.title_id = $4
			RETURNING id, pub_date, author_id
		)
		SELECT i.id, i.pub_date, u.username FROM inserted i JOIN users u ON u.id = i.author_id`,
		data.ReviewId, data.AuthorId, data.Text, titleId,
	).Scan(&comment.Id, &comment.PubDate, &comment.Author)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NotFound("Review not found")
		}
		if shared_pg.IsForeignKeyViolation(err) {
			return domain.Comment{}, internal_errors.NotFound("User not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}

func (s *Storage) Comment(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.comment(ctx, s.db, titleId, reviewId, id)
}

func (s *Storage) Comments(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, p domain.Pagination) ([]domain.Comment, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM comments c JOIN reviews r ON r.id = c.review_id
		WHERE c.review_id = $1 AND r.title_id = $2`, reviewId, titleId).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		commentSelect+" WHERE c.review_id = $1 AND r.title_id = $2 ORDER BY c.pub_date, c.id LIMIT $3 OFFSET $4",
		reviewId, titleId, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.ReviewId, &c.AuthorId, &c.Author, &c.Text, &c.PubDate); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return comments, count, nil
}

func (s *Storage) UpdateComment(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId, text string) (domain.Comment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var comment domain.Comment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE comments c SET text = $1
			FROM reviews r
			WHERE c.id = $2 AND c.review_id = $3 AND r.id = c.review_id AND r.title_id = $4`,
			text, id, reviewId, titleId)
		if err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}
		if err := requireAffected(result, "Comment not found"); err != nil {
			return err
		}
		comment, err = s.comment(ctx, tx, titleId, reviewId, id)
		return err
	})
	return comment, err
}

func (s *Storage) DeleteComment(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM comments c USING reviews r
		WHERE c.id = $1 AND c.review_id = $2 AND r.id = c.review_id AND r.title_id = $3`,
		id, reviewId, titleId)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireAffected(result, "Comment not found")
}

func (s *Storage) comment(ctx context.Context, q shared_pg.Querier, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error) {
	var c domain.Comment
	err := q.QueryRowContext(ctx, commentSelect+" WHERE c.id = $1 AND c.review_id = $2 AND r.title_id = $3", id, reviewId, titleId).
		Scan(&c.Id, &c.ReviewId, &c.AuthorId, &c.Author, &c.Text, &c.PubDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NotFound("Comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}
