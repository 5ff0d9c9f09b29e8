package service

import (
	"context"
	"strings"

	"github.com/yamdb-dev/yamdb/backend/internal/service/utils"
	"github.com/yamdb-dev/yamdb/shared/access"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
	shared_utils "github.com/yamdb-dev/yamdb/shared/utils"
)

type CatalogService interface {
	Categories(ctx context.Context, search string, page int) (domain.Page[domain.Category], error)
	CreateCategory(ctx context.Context, actor domain.Actor, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, actor domain.Actor, slug domain.Slug) error

	Genres(ctx context.Context, search string, page int) (domain.Page[domain.Genre], error)
	CreateGenre(ctx context.Context, actor domain.Actor, g domain.Genre) (domain.Genre, error)
	DeleteGenre(ctx context.Context, actor domain.Actor, slug domain.Slug) error
}

type CatalogStorage interface {
	SaveCategory(ctx context.Context, c domain.Category) error
	Categories(ctx context.Context, search string, p domain.Pagination) ([]domain.Category, int, error)
	DeleteCategory(ctx context.Context, slug domain.Slug) error
	SaveGenre(ctx context.Context, g domain.Genre) error
	Genres(ctx context.Context, search string, p domain.Pagination) ([]domain.Genre, int, error)
	DeleteGenre(ctx context.Context, slug domain.Slug) error
}

type Catalog struct {
	storage  CatalogStorage
	pageSize int
}

func NewCatalog(storage CatalogStorage, pageSize int) *Catalog {
	return &Catalog{storage: storage, pageSize: pageSize}
}

func (c *Catalog) Categories(ctx context.Context, search string, page int) (domain.Page[domain.Category], error) {
	p := pagination(page, c.pageSize)
	items, count, err := c.storage.Categories(ctx, strings.TrimSpace(search), p)
	if err != nil {
		return domain.Page[domain.Category]{}, err
	}
	return newPage(items, count, p), nil
}

func (c *Catalog) CreateCategory(ctx context.Context, actor domain.Actor, category domain.Category) (domain.Category, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.Category{}, err
	}
	name, err := validateTaxon(category.Name, category.Slug)
	if err != nil {
		return domain.Category{}, err
	}
	category.Name = name
	if err := c.storage.SaveCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, actor domain.Actor, slug domain.Slug) error {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return err
	}
	return c.storage.DeleteCategory(ctx, slug)
}

func (c *Catalog) Genres(ctx context.Context, search string, page int) (domain.Page[domain.Genre], error) {
	p := pagination(page, c.pageSize)
	items, count, err := c.storage.Genres(ctx, strings.TrimSpace(search), p)
	if err != nil {
		return domain.Page[domain.Genre]{}, err
	}
	return newPage(items, count, p), nil
}

func (c *Catalog) CreateGenre(ctx context.Context, actor domain.Actor, genre domain.Genre) (domain.Genre, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.Genre{}, err
	}
	name, err := validateTaxon(genre.Name, genre.Slug)
	if err != nil {
		return domain.Genre{}, err
	}
	genre.Name = name
	if err := c.storage.SaveGenre(ctx, genre); err != nil {
		return domain.Genre{}, err
	}
	return genre, nil
}

func (c *Catalog) DeleteGenre(ctx context.Context, actor domain.Actor, slug domain.Slug) error {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return err
	}
	return c.storage.DeleteGenre(ctx, slug)
}

// validateTaxon returns the cleaned name
func validateTaxon(name string, slug domain.Slug) (string, error) {
	name = utils.CleanText(name)
	if name == "" || len([]rune(name)) > 256 {
		return "", errors.Validation("name: required, at most 256 characters")
	}
	if len(slug) == 0 || len(slug) > 50 || !shared_utils.ValidSlug(slug) {
		return "", errors.Validation("slug: letters, digits, hyphens and underscores only, at most 50 characters")
	}
	return name, nil
}
