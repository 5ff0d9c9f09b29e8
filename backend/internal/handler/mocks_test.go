package handler

import (
	"context"

	"github.com/yamdb-dev/yamdb/shared/domain"
)

type MockAuthService struct {
	SignupFunc func(ctx context.Context, username domain.Username, email domain.Email) (domain.User, error)
	TokenFunc  func(ctx context.Context, username domain.Username, confirmationCode string) (string, error)
}

func (m *MockAuthService) Signup(ctx context.Context, username domain.Username, email domain.Email) (domain.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, username, email)
	}
	return domain.User{Username: username, Email: email}, nil
}

func (m *MockAuthService) Token(ctx context.Context, username domain.Username, confirmationCode string) (string, error) {
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx, username, confirmationCode)
	}
	return "token", nil
}

type MockUserService struct {
	GetOrCreateFunc    func(ctx context.Context, username domain.Username, email domain.Email) (domain.User, bool, error)
	FindByUsernameFunc func(ctx context.Context, username domain.Username) (domain.User, error)
	SetRoleFunc        func(ctx context.Context, actor domain.Actor, target domain.Username, role domain.Role) (domain.User, error)
	ListFunc           func(ctx context.Context, actor domain.Actor, search string, page int) (domain.Page[domain.User], error)
	CreateFunc         func(ctx context.Context, actor domain.Actor, data domain.UserCreationData) (domain.User, error)
	GetFunc            func(ctx context.Context, actor domain.Actor, username domain.Username) (domain.User, error)
	UpdateFunc         func(ctx context.Context, actor domain.Actor, username domain.Username, upd domain.UserUpdate) (domain.User, error)
	DeleteFunc         func(ctx context.Context, actor domain.Actor, username domain.Username) error
	MeFunc             func(ctx context.Context, actor domain.Actor) (domain.User, error)
	UpdateMeFunc       func(ctx context.Context, actor domain.Actor, upd domain.UserUpdate) (domain.User, error)
}

func (m *MockUserService) GetOrCreate(ctx context.Context, username domain.Username, email domain.Email) (domain.User, bool, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, username, email)
	}
	return domain.User{}, false, nil
}

func (m *MockUserService) FindByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return domain.User{}, nil
}

func (m *MockUserService) SetRole(ctx context.Context, actor domain.Actor, target domain.Username, role domain.Role) (domain.User, error) {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, actor, target, role)
	}
	return domain.User{}, nil
}

func (m *MockUserService) List(ctx context.Context, actor domain.Actor, search string, page int) (domain.Page[domain.User], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, search, page)
	}
	return domain.Page[domain.User]{Page: page, Results: []domain.User{}}, nil
}

func (m *MockUserService) Create(ctx context.Context, actor domain.Actor, data domain.UserCreationData) (domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, data)
	}
	return domain.User{Username: data.Username, Email: data.Email, Role: data.Role}, nil
}

func (m *MockUserService) Get(ctx context.Context, actor domain.Actor, username domain.Username) (domain.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, username)
	}
	return domain.User{Username: username}, nil
}

func (m *MockUserService) Update(ctx context.Context, actor domain.Actor, username domain.Username, upd domain.UserUpdate) (domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, username, upd)
	}
	return upd.Apply(domain.User{Username: username}), nil
}

func (m *MockUserService) Delete(ctx context.Context, actor domain.Actor, username domain.Username) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, username)
	}
	return nil
}

func (m *MockUserService) Me(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, actor)
	}
	return domain.User{Id: actor.Id, Username: actor.Username, Role: actor.Role}, nil
}

func (m *MockUserService) UpdateMe(ctx context.Context, actor domain.Actor, upd domain.UserUpdate) (domain.User, error) {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, actor, upd)
	}
	return upd.Apply(domain.User{Id: actor.Id, Username: actor.Username, Role: actor.Role}), nil
}

type MockCatalogService struct {
	CategoriesFunc     func(ctx context.Context, search string, page int) (domain.Page[domain.Category], error)
	CreateCategoryFunc func(ctx context.Context, actor domain.Actor, c domain.Category) (domain.Category, error)
	DeleteCategoryFunc func(ctx context.Context, actor domain.Actor, slug domain.Slug) error
	GenresFunc         func(ctx context.Context, search string, page int) (domain.Page[domain.Genre], error)
	CreateGenreFunc    func(ctx context.Context, actor domain.Actor, g domain.Genre) (domain.Genre, error)
	DeleteGenreFunc    func(ctx context.Context, actor domain.Actor, slug domain.Slug) error
}

func (m *MockCatalogService) Categories(ctx context.Context, search string, page int) (domain.Page[domain.Category], error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx, search, page)
	}
	return domain.Page[domain.Category]{Page: page, Results: []domain.Category{}}, nil
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, actor domain.Actor, c domain.Category) (domain.Category, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, actor, c)
	}
	return c, nil
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, actor domain.Actor, slug domain.Slug) error {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, actor, slug)
	}
	return nil
}

func (m *MockCatalogService) Genres(ctx context.Context, search string, page int) (domain.Page[domain.Genre], error) {
	if m.GenresFunc != nil {
		return m.GenresFunc(ctx, search, page)
	}
	return domain.Page[domain.Genre]{Page: page, Results: []domain.Genre{}}, nil
}

func (m *MockCatalogService) CreateGenre(ctx context.Context, actor domain.Actor, g domain.Genre) (domain.Genre, error) {
	if m.CreateGenreFunc != nil {
		return m.CreateGenreFunc(ctx, actor, g)
	}
	return g, nil
}

func (m *MockCatalogService) DeleteGenre(ctx context.Context, actor domain.Actor, slug domain.Slug) error {
	if m.DeleteGenreFunc != nil {
		return m.DeleteGenreFunc(ctx, actor, slug)
	}
	return nil
}

type MockTitleService struct {
	ListFunc   func(ctx context.Context, filter domain.TitleFilter, page int) (domain.Page[domain.Title], error)
	GetFunc    func(ctx context.Context, id domain.TitleId) (domain.Title, error)
	CreateFunc func(ctx context.Context, actor domain.Actor, data domain.TitleCreationData) (domain.Title, error)
	UpdateFunc func(ctx context.Context, actor domain.Actor, id domain.TitleId, upd domain.TitleUpdate) (domain.Title, error)
	DeleteFunc func(ctx context.Context, actor domain.Actor, id domain.TitleId) error
}

func (m *MockTitleService) List(ctx context.Context, filter domain.TitleFilter, page int) (domain.Page[domain.Title], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page)
	}
	return domain.Page[domain.Title]{Page: page, Results: []domain.Title{}}, nil
}

func (m *MockTitleService) Get(ctx context.Context, id domain.TitleId) (domain.Title, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.Title{Id: id}, nil
}

func (m *MockTitleService) Create(ctx context.Context, actor domain.Actor, data domain.TitleCreationData) (domain.Title, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, data)
	}
	return domain.Title{Id: 1, Name: data.Name, Year: data.Year}, nil
}

func (m *MockTitleService) Update(ctx context.Context, actor domain.Actor, id domain.TitleId, upd domain.TitleUpdate) (domain.Title, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, upd)
	}
	return domain.Title{Id: id}, nil
}

func (m *MockTitleService) Delete(ctx context.Context, actor domain.Actor, id domain.TitleId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

type MockReviewService struct {
	ListFunc   func(ctx context.Context, titleId domain.TitleId, page int) (domain.Page[domain.Review], error)
	GetFunc    func(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error)
	CreateFunc func(ctx context.Context, actor domain.Actor, titleId domain.TitleId, score domain.Score, text string) (domain.Review, error)
	UpdateFunc func(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error)
	DeleteFunc func(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId) error
}

func (m *MockReviewService) List(ctx context.Context, titleId domain.TitleId, page int) (domain.Page[domain.Review], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, titleId, page)
	}
	return domain.Page[domain.Review]{Page: page, Results: []domain.Review{}}, nil
}

func (m *MockReviewService) Get(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, titleId, id)
	}
	return domain.Review{Id: id, TitleId: titleId}, nil
}

func (m *MockReviewService) Create(ctx context.Context, actor domain.Actor, titleId domain.TitleId, score domain.Score, text string) (domain.Review, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, titleId, score, text)
	}
	return domain.Review{Id: 1, TitleId: titleId, Author: actor.Username, Score: score, Text: text}, nil
}

func (m *MockReviewService) Update(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, titleId, id, upd)
	}
	return domain.Review{Id: id, TitleId: titleId}, nil
}

func (m *MockReviewService) Delete(ctx context.Context, actor domain.Actor, titleId domain.TitleId, id domain.ReviewId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, titleId, id)
	}
	return nil
}

type MockCommentService struct {
	ListFunc   func(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, page int) (domain.Page[domain.Comment], error)
	GetFunc    func(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error)
	CreateFunc func(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, text string) (domain.Comment, error)
	UpdateFunc func(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId, text string) (domain.Comment, error)
	DeleteFunc func(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) error
}

func (m *MockCommentService) List(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, page int) (domain.Page[domain.Comment], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, titleId, reviewId, page)
	}
	return domain.Page[domain.Comment]{Page: page, Results: []domain.Comment{}}, nil
}

func (m *MockCommentService) Get(ctx context.Context, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) (domain.Comment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, titleId, reviewId, id)
	}
	return domain.Comment{Id: id, ReviewId: reviewId}, nil
}

func (m *MockCommentService) Create(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, text string) (domain.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, titleId, reviewId, text)
	}
	return domain.Comment{Id: 1, ReviewId: reviewId, Author: actor.Username, Text: text}, nil
}

func (m *MockCommentService) Update(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId, text string) (domain.Comment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, titleId, reviewId, id, text)
	}
	return domain.Comment{Id: id, ReviewId: reviewId, Text: text}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, actor domain.Actor, titleId domain.TitleId, reviewId domain.ReviewId, id domain.CommentId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, titleId, reviewId, id)
	}
	return nil
}

type MockHealth struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
