package setup

import (
	"context"

	"github.com/yamdb-dev/yamdb/backend/internal/handler"
	"github.com/yamdb-dev/yamdb/backend/internal/service"
	"github.com/yamdb-dev/yamdb/backend/internal/storage/pg"
	"github.com/yamdb-dev/yamdb/backend/internal/utils/email"
	"github.com/yamdb-dev/yamdb/shared/config"
	"github.com/yamdb-dev/yamdb/shared/confirmation"
	"github.com/yamdb-dev/yamdb/shared/jwt"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
	Mailer         *email.Dispatcher
}

// SetupDependencies connects to the database, applies migrations and wires
// the services. The email dispatcher is returned unstarted.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(ctx); err != nil {
		storage.Cleanup()
		return nil, err
	}
	return Wire(cfg, storage), nil
}

// Wire builds everything on top of an open storage
func Wire(cfg *config.Config, storage *pg.Storage) *Dependencies {
	sender := email.New(&cfg.Private.Email)
	mailer := email.NewDispatcher(sender, cfg.Public.EmailWorkers, cfg.Public.EmailQueueSize, cfg.Public.EmailMaxRetries)
	tokens := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	codes := confirmation.New(cfg.ConfirmationSecret(), cfg.Public.ConfirmationWindow)

	pageSize := cfg.Public.PageSize
	users := service.NewUsers(storage, pageSize)
	auth := service.NewAuth(users, codes, tokens, mailer)
	catalog := service.NewCatalog(storage, pageSize)
	titles := service.NewTitle(storage, pageSize)
	reviews := service.NewReview(storage, pageSize)
	comments := service.NewComment(storage, pageSize)

	var resolver mw.RoleResolver
	if cfg.Public.ResolveRolePerRequest {
		resolver = storage
	}

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        handler.New(auth, users, catalog, titles, reviews, comments, storage),
		AuthMiddleware: mw.NewAuth(tokens, resolver),
		Jwt:            tokens,
		Mailer:         mailer,
	}
}
