package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	shared_pg "github.com/yamdb-dev/yamdb/shared/storage/pg"
)

// rating is the rounded mean score, NULL while a title has no reviews
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, c.name, c.slug,
		(SELECT ROUND(AVG(r.score))::int FROM reviews r WHERE r.title_id = t.id)
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id`

// =========================================================================
// Public Methods (satisfy the service.TitleStorage interface)
// =========================================================================

func (s *Storage) SaveTitle(ctx context.Context, data domain.TitleCreationData) (domain.Title, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var title domain.Title
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		categoryId, err := s.categoryId(ctx, tx, data.Category)
		if err != nil {
			return err
		}
		var id domain.TitleId
		err = tx.QueryRowContext(ctx,
			"INSERT INTO titles(name, year, description, category_id) VALUES($1, $2, $3, $4) RETURNING id",
			data.Name, data.Year, data.Description, categoryId).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert title: %w", err)
		}
		if err := s.setTitleGenres(ctx, tx, id, data.Genres); err != nil {
			return err
		}
		title, err = s.title(ctx, tx, id)
		return err
	})
	return title, err
}

func (s *Storage) Title(ctx context.Context, id domain.TitleId) (domain.Title, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.title(ctx, s.db, id)
}

// TitleExists returns NotFound for an unknown id
func (s *Storage) TitleExists(ctx context.Context, id domain.TitleId) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM titles WHERE id = $1)", id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if !exists {
		return internal_errors.NotFound("Title not found")
	}
	return nil
}

func (s *Storage) Titles(ctx context.Context, filter domain.TitleFilter, p domain.Pagination) ([]domain.Title, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	where, args := titleFilterClause(filter)

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM titles t LEFT JOIN categories c ON c.id = t.category_id"+where, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY t.id LIMIT $%d OFFSET $%d", titleSelect, where, len(args)+1, len(args)+2)
	args = append(args, p.Size, p.Offset())
	titles, err := s.scanTitles(ctx, s.db, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return titles, count, nil
}

func (s *Storage) UpdateTitle(ctx context.Context, id domain.TitleId, upd domain.TitleUpdate) (domain.Title, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var title domain.Title
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var (
			name, description string
			year              int
			categoryId        sql.NullInt64
		)
		err := tx.QueryRowContext(ctx,
			"SELECT name, year, description, category_id FROM titles WHERE id = $1 FOR UPDATE", id).
			Scan(&name, &year, &description, &categoryId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Title not found")
			}
			return fmt.Errorf("failed to lock title: %w", err)
		}

		if upd.Name != nil {
			name = *upd.Name
		}
		if upd.Year != nil {
			year = *upd.Year
		}
		if upd.Description != nil {
			description = *upd.Description
		}
		if upd.Category != nil {
			if categoryId, err = s.categoryId(ctx, tx, *upd.Category); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4 WHERE id = $5",
			name, year, description, categoryId, id); err != nil {
			return fmt.Errorf("failed to update title: %w", err)
		}
		if upd.Genres != nil {
			if err := s.setTitleGenres(ctx, tx, id, *upd.Genres); err != nil {
				return err
			}
		}
		title, err = s.title(ctx, tx, id)
		return err
	})
	return title, err
}

// DeleteTitle cascades to reviews and their comments
func (s *Storage) DeleteTitle(ctx context.Context, id domain.TitleId) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	return requireAffected(result, "Title not found")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func titleFilterClause(f domain.TitleFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("c.slug = $%d", f.Category)
	}
	if f.Genre != "" {
		add(`EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, f.Genre)
	}
	if f.Name != "" {
		add("t.name ILIKE $%d", "%"+escapeLike(f.Name)+"%")
	}
	if f.Year != 0 {
		add("t.year = $%d", f.Year)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Storage) title(ctx context.Context, q shared_pg.Querier, id domain.TitleId) (domain.Title, error) {
	titles, err := s.scanTitles(ctx, q, titleSelect+" WHERE t.id = $1", id)
	if err != nil {
		return domain.Title{}, err
	}
	if len(titles) == 0 {
		return domain.Title{}, internal_errors.NotFound("Title not found")
	}
	return titles[0], nil
}

func (s *Storage) scanTitles(ctx context.Context, q shared_pg.Querier, query string, args ...any) ([]domain.Title, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer rows.Close()

	titles := make([]domain.Title, 0)
	for rows.Next() {
		var (
			t                          domain.Title
			categoryName, categorySlug sql.NullString
			rating                     sql.NullInt64
		)
		if err := rows.Scan(&t.Id, &t.Name, &t.Year, &t.Description, &categoryName, &categorySlug, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		if categorySlug.Valid {
			t.Category = &domain.Category{Name: categoryName.String, Slug: categorySlug.String}
		}
		if rating.Valid {
			r := int(rating.Int64)
			t.Rating = &r
		}
		t.Genres = make([]domain.Genre, 0)
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	if len(titles) == 0 {
		return titles, nil
	}
	if err := s.attachGenres(ctx, q, titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// attachGenres fills Genres of every title with a single query
func (s *Storage) attachGenres(ctx context.Context, q shared_pg.Querier, titles []domain.Title) error {
	ids := make([]int64, len(titles))
	index := make(map[domain.TitleId]int, len(titles))
	for i, t := range titles {
		ids[i] = t.Id
		index[t.Id] = i
	}

	rows, err := q.QueryContext(ctx, `
		SELECT tg.title_id, g.name, g.slug
		FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name, g.slug`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleId domain.TitleId
			g       domain.Genre
		)
		if err := rows.Scan(&titleId, &g.Name, &g.Slug); err != nil {
			return fmt.Errorf("failed to scan title genre: %w", err)
		}
		if i, ok := index[titleId]; ok {
			titles[i].Genres = append(titles[i].Genres, g)
		}
	}
	return rows.Err()
}

// categoryId resolves a slug; empty slug means no category
func (s *Storage) categoryId(ctx context.Context, q shared_pg.Querier, slug domain.Slug) (sql.NullInt64, error) {
	if slug == "" {
		return sql.NullInt64{}, nil
	}
	var id int64
	err := q.QueryRowContext(ctx, "SELECT id FROM categories WHERE slug = $1", slug).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.NullInt64{}, internal_errors.Validation(fmt.Sprintf("category: %q does not exist", slug))
		}
		return sql.NullInt64{}, fmt.Errorf("failed to resolve category: %w", err)
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// setTitleGenres replaces the genre links of a title
func (s *Storage) setTitleGenres(ctx context.Context, q shared_pg.Querier, id domain.TitleId, slugs []domain.Slug) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM title_genres WHERE title_id = $1", id); err != nil {
		return fmt.Errorf("failed to clear title genres: %w", err)
	}
	unique := dedupe(slugs)
	if len(unique) == 0 {
		return nil
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO title_genres(title_id, genre_id)
		SELECT $1, id FROM genres WHERE slug = ANY($2)`, id, pq.Array(unique))
	if err != nil {
		return fmt.Errorf("failed to link title genres: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if int(n) != len(unique) {
		return internal_errors.Validation("genre: one or more genres do not exist")
	}
	return nil
}

func dedupe(slugs []domain.Slug) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
