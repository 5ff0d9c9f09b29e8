package pg

import (
	"context"
	"fmt"

	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	shared_pg "github.com/yamdb-dev/yamdb/shared/storage/pg"
)

// categories and genres share one shape and differ only by table
type taxonomy struct {
	table    string
	notFound string
	conflict string
}

var (
	categoriesTable = taxonomy{"categories", "Category not found", "A category with this slug already exists"}
	genresTable     = taxonomy{"genres", "Genre not found", "A genre with this slug already exists"}
)

func (s *Storage) SaveCategory(ctx context.Context, c domain.Category) error {
	return s.saveTaxon(ctx, categoriesTable, c.Name, c.Slug)
}

func (s *Storage) Categories(ctx context.Context, search string, p domain.Pagination) ([]domain.Category, int, error) {
	items, count, err := s.taxa(ctx, categoriesTable, search, p)
	if err != nil {
		return nil, 0, err
	}
	result := make([]domain.Category, len(items))
	for i, it := range items {
		result[i] = domain.Category(it)
	}
	return result, count, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, slug domain.Slug) error {
	return s.deleteTaxon(ctx, categoriesTable, slug)
}

func (s *Storage) SaveGenre(ctx context.Context, g domain.Genre) error {
	return s.saveTaxon(ctx, genresTable, g.Name, g.Slug)
}

func (s *Storage) Genres(ctx context.Context, search string, p domain.Pagination) ([]domain.Genre, int, error) {
	items, count, err := s.taxa(ctx, genresTable, search, p)
	if err != nil {
		return nil, 0, err
	}
	result := make([]domain.Genre, len(items))
	for i, it := range items {
		result[i] = domain.Genre(it)
	}
	return result, count, nil
}

func (s *Storage) DeleteGenre(ctx context.Context, slug domain.Slug) error {
	return s.deleteTaxon(ctx, genresTable, slug)
}

type taxon struct {
	Name string
	Slug domain.Slug
}

func (s *Storage) saveTaxon(ctx context.Context, t taxonomy, name string, slug domain.Slug) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, "INSERT INTO "+t.table+"(name, slug) VALUES($1, $2)", name, slug)
	if err != nil {
		if shared_pg.IsUniqueViolation(err) {
			return internal_errors.Conflict(t.conflict)
		}
		return fmt.Errorf("failed to insert into %s: %w", t.table, err)
	}
	return nil
}

// taxa lists entries ordered by name; search matches a name substring, case-insensitively
func (s *Storage) taxa(ctx context.Context, t taxonomy, search string, p domain.Pagination) ([]taxon, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pattern := "%" + escapeLike(search) + "%"
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+t.table+" WHERE name ILIKE $1", pattern).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", t.table, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, slug FROM "+t.table+" WHERE name ILIKE $1 ORDER BY name, slug LIMIT $2 OFFSET $3",
		pattern, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", t.table, err)
	}
	defer rows.Close()

	items := make([]taxon, 0)
	for rows.Next() {
		var it taxon
		if err := rows.Scan(&it.Name, &it.Slug); err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s row: %w", t.table, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, count, nil
}

// deleteTaxon removes an entry. Titles keep existing: categories are set to
// NULL and genre links are dropped by the schema.
func (s *Storage) deleteTaxon(ctx context.Context, t taxonomy, slug domain.Slug) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM "+t.table+" WHERE slug = $1", slug)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.table, err)
	}
	return requireAffected(result, t.notFound)
}
