package service

import (
	"context"
	"time"

	"github.com/yamdb-dev/yamdb/backend/internal/service/utils"
	"github.com/yamdb-dev/yamdb/shared/access"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
)

type TitleService interface {
	List(ctx context.Context, filter domain.TitleFilter, page int) (domain.Page[domain.Title], error)
	Get(ctx context.Context, id domain.TitleId) (domain.Title, error)
	Create(ctx context.Context, actor domain.Actor, data domain.TitleCreationData) (domain.Title, error)
	Update(ctx context.Context, actor domain.Actor, id domain.TitleId, upd domain.TitleUpdate) (domain.Title, error)
	Delete(ctx context.Context, actor domain.Actor, id domain.TitleId) error
}

type TitleStorage interface {
	SaveTitle(ctx context.Context, data domain.TitleCreationData) (domain.Title, error)
	Title(ctx context.Context, id domain.TitleId) (domain.Title, error)
	Titles(ctx context.Context, filter domain.TitleFilter, p domain.Pagination) ([]domain.Title, int, error)
	UpdateTitle(ctx context.Context, id domain.TitleId, upd domain.TitleUpdate) (domain.Title, error)
	DeleteTitle(ctx context.Context, id domain.TitleId) error
}

type Title struct {
	storage  TitleStorage
	pageSize int
	now      func() time.Time
}

func NewTitle(storage TitleStorage, pageSize int) *Title {
	return &Title{storage: storage, pageSize: pageSize, now: time.Now}
}

func (t *Title) List(ctx context.Context, filter domain.TitleFilter, page int) (domain.Page[domain.Title], error) {
	p := pagination(page, t.pageSize)
	titles, count, err := t.storage.Titles(ctx, filter, p)
	if err != nil {
		return domain.Page[domain.Title]{}, err
	}
	return newPage(titles, count, p), nil
}

func (t *Title) Get(ctx context.Context, id domain.TitleId) (domain.Title, error) {
	return t.storage.Title(ctx, id)
}

func (t *Title) Create(ctx context.Context, actor domain.Actor, data domain.TitleCreationData) (domain.Title, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.Title{}, err
	}
	data.Name = utils.CleanText(data.Name)
	data.Description = utils.CleanText(data.Description)
	if data.Year == 0 {
		return domain.Title{}, errors.Validation("year: this field is required")
	}
	if err := t.validate(data.Name, data.Year); err != nil {
		return domain.Title{}, err
	}
	return t.storage.SaveTitle(ctx, data)
}

func (t *Title) Update(ctx context.Context, actor domain.Actor, id domain.TitleId, upd domain.TitleUpdate) (domain.Title, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.Title{}, err
	}
	upd.Name = utils.CleanTextPtr(upd.Name)
	upd.Description = utils.CleanTextPtr(upd.Description)
	if upd.Name != nil {
		if err := t.validate(*upd.Name, 0); err != nil {
			return domain.Title{}, err
		}
	}
	if upd.Year != nil {
		if err := t.validate("-", *upd.Year); err != nil {
			return domain.Title{}, err
		}
	}
	return t.storage.UpdateTitle(ctx, id, upd)
}

func (t *Title) Delete(ctx context.Context, actor domain.Actor, id domain.TitleId) error {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return err
	}
	return t.storage.DeleteTitle(ctx, id)
}

// validate checks name, and year when non-zero
func (t *Title) validate(name string, year int) error {
	if name == "" || len([]rune(name)) > 256 {
		return errors.Validation("name: required, at most 256 characters")
	}
	if year != 0 && year > t.now().Year() {
		return errors.Validation("year: can't be later than the current year")
	}
	return nil
}
