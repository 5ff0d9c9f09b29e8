package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	jwt_internal "github.com/yamdb-dev/yamdb/shared/jwt"
)

type mockResolver struct {
	ActorFunc func(ctx context.Context, id domain.UserId) (domain.Actor, error)
}

func (m *mockResolver) Actor(ctx context.Context, id domain.UserId) (domain.Actor, error) {
	return m.ActorFunc(ctx, id)
}

// captureActor records the actor seen by the wrapped handler
func captureActor(seen *domain.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = GetActorFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	admin := domain.User{Id: 1, Username: "root", Role: domain.RoleAdmin}
	tokenAdmin, err := jwtService.NewToken(admin)
	require.NoError(t, err)
	user := domain.User{Id: 2, Username: "ann", Role: domain.RoleUser}
	token, err := jwtService.NewToken(user)
	require.NoError(t, err)
	expired, err := jwt_internal.New("test_secret", time.Minute).
		WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).
		NewToken(user)
	require.NoError(t, err)

	tests := []struct {
		name           string
		adminOnly      bool
		header         string
		expectedStatus int
		expectedActor  domain.Actor
	}{
		{
			name:           "Valid token - Admin",
			adminOnly:      true,
			header:         "Bearer " + tokenAdmin,
			expectedStatus: http.StatusOK,
			expectedActor:  domain.Actor{Id: 1, Role: domain.RoleAdmin},
		},
		{
			name:           "Valid token - User",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectedActor:  domain.Actor{Id: 2, Role: domain.RoleUser},
		},
		{
			name:           "Lowercase scheme",
			header:         "bearer " + token,
			expectedStatus: http.StatusOK,
			expectedActor:  domain.Actor{Id: 2, Role: domain.RoleUser},
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			header:         "Basic " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			header:         "Bearer invalid_token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired token",
			header:         "Bearer " + expired,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "User accessing admin route",
			adminOnly:      true,
			header:         "Bearer " + token,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Anonymous accessing admin route",
			adminOnly:      true,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			authMw := NewAuth(jwtService, nil)
			middleware := authMw.NeedAuth()
			if tt.adminOnly {
				middleware = authMw.AdminOnly()
			}

			var seen domain.Actor
			middleware(captureActor(&seen)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedActor, seen)
			if tt.expectedStatus != http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"error"`)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	token, err := jwtService.NewToken(domain.User{Id: 7, Role: domain.RoleModerator})
	require.NoError(t, err)
	mw := NewAuth(jwtService, nil).OptionalAuth()

	t.Run("no token is anonymous", func(t *testing.T) {
		var seen domain.Actor
		rr := httptest.NewRecorder()
		mw(captureActor(&seen)).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, seen.IsAnonymous())
	})

	t.Run("valid token", func(t *testing.T) {
		var seen domain.Actor
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		mw(captureActor(&seen)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.Actor{Id: 7, Role: domain.RoleModerator}, seen)
	})

	t.Run("bad token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		var seen domain.Actor
		mw(captureActor(&seen)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuth_RoleResolver(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	// token still says admin
	token, err := jwtService.NewToken(domain.User{Id: 3, Role: domain.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name           string
		resolve        func(ctx context.Context, id domain.UserId) (domain.Actor, error)
		expectedStatus int
	}{
		{
			name: "demoted admin is forbidden",
			resolve: func(ctx context.Context, id domain.UserId) (domain.Actor, error) {
				return domain.Actor{Id: id, Username: "bob", Role: domain.RoleUser}, nil
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "still admin",
			resolve: func(ctx context.Context, id domain.UserId) (domain.Actor, error) {
				return domain.Actor{Id: id, Username: "bob", Role: domain.RoleAdmin}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "deleted user",
			resolve: func(ctx context.Context, id domain.UserId) (domain.Actor, error) {
				return domain.Actor{}, internal_errors.NotFound("User not found")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "storage failure",
			resolve: func(ctx context.Context, id domain.UserId) (domain.Actor, error) {
				return domain.Actor{}, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotId domain.UserId
			resolver := &mockResolver{ActorFunc: func(ctx context.Context, id domain.UserId) (domain.Actor, error) {
				gotId = id
				return tt.resolve(ctx, id)
			}}
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			var seen domain.Actor

			NewAuth(jwtService, resolver).AdminOnly()(captureActor(&seen)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, domain.UserId(3), gotId)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "bob", seen.Username)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	SecurityHeaders(false)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))

	rr = httptest.NewRecorder()
	SecurityHeaders(true)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
}
