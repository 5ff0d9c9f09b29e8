package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb-dev/yamdb/backend/internal/handler"
	"github.com/yamdb-dev/yamdb/backend/internal/setup"
	"github.com/yamdb-dev/yamdb/shared/config"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/jwt"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
)

type pinger struct{}

func (pinger) Ping(ctx context.Context) error { return nil }

// The requests below are all rejected or answered before any service is
// reached, so the handler is built without services.
func newTestDeps() (*setup.Dependencies, *jwt.Jwt) {
	tokens := jwt.New("test-key", time.Hour)
	cfg := &config.Config{Public: config.Public{CorsOrigins: []string{"http://localhost:3000"}, SecureHeadersHSTS: true}}
	return &setup.Dependencies{
		Config:         cfg,
		Handler:        handler.New(nil, nil, nil, nil, nil, nil, pinger{}),
		AuthMiddleware: mw.NewAuth(tokens, nil),
		Jwt:            tokens,
	}, tokens
}

func do(t *testing.T, h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterAuthGates(t *testing.T) {
	deps, tokens := newTestDeps()
	r := New(deps)

	userToken, err := tokens.NewToken(domain.User{Id: 7, Username: "ann", Role: domain.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"me needs a token", http.MethodGet, "/users/me", "", http.StatusUnauthorized},
		{"user list needs a token", http.MethodGet, "/users", "", http.StatusUnauthorized},
		{"user list is admin only", http.MethodGet, "/users", userToken, http.StatusForbidden},
		{"user detail is admin only", http.MethodDelete, "/users/bob", userToken, http.StatusForbidden},
		{"category create is admin only", http.MethodPost, "/categories", userToken, http.StatusForbidden},
		{"title delete is admin only", http.MethodDelete, "/titles/1", userToken, http.StatusForbidden},
		{"review create needs a token", http.MethodPost, "/titles/1/reviews", "", http.StatusUnauthorized},
		{"comment delete needs a token", http.MethodDelete, "/titles/1/reviews/2/comments/3", "", http.StatusUnauthorized},
		{"bad token on a public read", http.MethodGet, "/titles", "garbage", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, r, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestRouterHeaders(t *testing.T) {
	deps, _ := newTestDeps()
	r := New(deps)

	rr := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodOptions, "/titles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight := httptest.NewRecorder()
	r.ServeHTTP(preflight, req)
	assert.Equal(t, "http://localhost:3000", preflight.Header().Get("Access-Control-Allow-Origin"))
}
