package service

import (
	"context"
	"sync"
	"time"

	"github.com/yamdb-dev/yamdb/backend/internal/utils/email"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
)

// --- Mocks ---

type MockUserStorage struct {
	SaveUserFunc       func(ctx context.Context, data domain.UserCreationData, stateHash string) (domain.User, error)
	UserByIdFunc       func(ctx context.Context, id domain.UserId) (domain.User, error)
	UserByUsernameFunc func(ctx context.Context, username domain.Username) (domain.User, error)
	UserByEmailFunc    func(ctx context.Context, email domain.Email) (domain.User, error)
	UsersFunc          func(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int, error)
	UpdateUserFunc     func(ctx context.Context, user domain.User) (domain.User, error)
	DeleteUserFunc     func(ctx context.Context, id domain.UserId) error
}

func (m *MockUserStorage) SaveUser(ctx context.Context, data domain.UserCreationData, stateHash string) (domain.User, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(ctx, data, stateHash)
	}
	return domain.User{Id: 1, Username: data.Username, Email: data.Email, Role: data.Role, StateHash: stateHash}, nil
}

func (m *MockUserStorage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.UserByIdFunc != nil {
		return m.UserByIdFunc(ctx, id)
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (m *MockUserStorage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	if m.UserByUsernameFunc != nil {
		return m.UserByUsernameFunc(ctx, username)
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (m *MockUserStorage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(ctx, email)
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (m *MockUserStorage) Users(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(ctx, search, p)
	}
	return nil, 0, nil
}

func (m *MockUserStorage) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, user)
	}
	return user, nil
}

func (m *MockUserStorage) DeleteUser(ctx context.Context, id domain.UserId) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

type MockMailer struct {
	mu       sync.Mutex
	Messages []email.Message
	Accept   bool
}

func (m *MockMailer) Enqueue(msg email.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
	return m.Accept
}

type MockCodeIssuer struct {
	IssueFunc  func(user domain.User) string
	VerifyFunc func(user domain.User, code string) bool
}

func (m *MockCodeIssuer) Issue(user domain.User) string {
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	return "CODE"
}

func (m *MockCodeIssuer) Verify(user domain.User, code string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(user, code)
	}
	return code == "CODE"
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token", nil
}

// memStore keeps users, titles and reviews in memory. Inserts check uniqueness
// under the lock, like a database constraint would.
type memStore struct {
	mu      sync.Mutex
	nextId  int64
	users   map[domain.UserId]domain.User
	titles  map[domain.TitleId]bool
	reviews map[domain.ReviewId]domain.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[domain.UserId]domain.User),
		titles:  make(map[domain.TitleId]bool),
		reviews: make(map[domain.ReviewId]domain.Review),
	}
}

func (s *memStore) addTitle(id domain.TitleId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles[id] = true
}

func (s *memStore) SaveUser(ctx context.Context, data domain.UserCreationData, stateHash string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == data.Username {
			return domain.User{}, errors.Conflict("A user with that username already exists")
		}
		if u.Email == data.Email {
			return domain.User{}, errors.Conflict("A user with that email already exists")
		}
	}
	s.nextId++
	user := domain.User{Id: s.nextId, Username: data.Username, Email: data.Email, Role: data.Role, StateHash: stateHash}
	s.users[user.Id] = user
	return user, nil
}

func (s *memStore) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (s *memStore) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (s *memStore) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (s *memStore) Users(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int, error) {
	return nil, 0, nil
}

func (s *memStore) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Id]; !ok {
		return domain.User{}, errors.NotFound("User not found")
	}
	s.users[user.Id] = user
	return user, nil
}

func (s *memStore) DeleteUser(ctx context.Context, id domain.UserId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *memStore) TitleExists(ctx context.Context, id domain.TitleId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.titles[id] {
		return errors.NotFound("Title not found")
	}
	return nil
}

func (s *memStore) SaveReview(ctx context.Context, data domain.ReviewCreationData) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.titles[data.TitleId] {
		return domain.Review{}, errors.NotFound("Title not found")
	}
	for _, r := range s.reviews {
		if r.TitleId == data.TitleId && r.AuthorId == data.AuthorId {
			return domain.Review{}, errors.Conflict("You have already reviewed this title")
		}
	}
	s.nextId++
	review := domain.Review{
		Id:       s.nextId,
		TitleId:  data.TitleId,
		AuthorId: data.AuthorId,
		Author:   s.users[data.AuthorId].Username,
		Score:    data.Score,
		Text:     data.Text,
		PubDate:  time.Now(),
	}
	s.reviews[review.Id] = review
	return review, nil
}

func (s *memStore) Review(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reviews[id]; ok && r.TitleId == titleId {
		return r, nil
	}
	return domain.Review{}, errors.NotFound("Review not found")
}

func (s *memStore) Reviews(ctx context.Context, titleId domain.TitleId, p domain.Pagination) ([]domain.Review, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Review
	for _, r := range s.reviews {
		if r.TitleId == titleId {
			result = append(result, r)
		}
	}
	return result, len(result), nil
}

func (s *memStore) UpdateReview(ctx context.Context, titleId domain.TitleId, id domain.ReviewId, upd domain.ReviewUpdate) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok || r.TitleId != titleId {
		return domain.Review{}, errors.NotFound("Review not found")
	}
	if upd.Score != nil {
		r.Score = *upd.Score
	}
	if upd.Text != nil {
		r.Text = *upd.Text
	}
	s.reviews[id] = r
	return r, nil
}

func (s *memStore) DeleteReview(ctx context.Context, titleId domain.TitleId, id domain.ReviewId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reviews[id]; !ok || r.TitleId != titleId {
		return errors.NotFound("Review not found")
	}
	delete(s.reviews, id)
	return nil
}
