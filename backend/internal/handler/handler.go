package handler

import (
	"context"

	"github.com/yamdb-dev/yamdb/backend/internal/service"
)

// HealthChecker reports whether the storage is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	users    service.UserService
	catalog  service.CatalogService
	titles   service.TitleService
	reviews  service.ReviewService
	comments service.CommentService
	health   HealthChecker
}

func New(
	auth service.AuthService,
	users service.UserService,
	catalog service.CatalogService,
	titles service.TitleService,
	reviews service.ReviewService,
	comments service.CommentService,
	health HealthChecker,
) *Handler {
	return &Handler{
		auth:     auth,
		users:    users,
		catalog:  catalog,
		titles:   titles,
		reviews:  reviews,
		comments: comments,
		health:   health,
	}
}
