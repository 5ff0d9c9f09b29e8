package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yamdb-dev/yamdb/shared/access"
	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	jwt_internal "github.com/yamdb-dev/yamdb/shared/jwt"
	"github.com/yamdb-dev/yamdb/shared/logger"
	"github.com/yamdb-dev/yamdb/shared/utils"
)

// RoleResolver looks up the current state of a token holder. When configured,
// the stored role wins over the one in the token, so demotions and deletions
// apply before the token expires.
type RoleResolver interface {
	Actor(ctx context.Context, id domain.UserId) (domain.Actor, error)
}

// Key to store the actor in the request context
type key int

const ActorKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt_internal.JwtService
	resolver   RoleResolver
}

// NewAuth creates the middleware. resolver may be nil, then token claims are trusted as-is.
func NewAuth(jwtService jwt_internal.JwtService, resolver RoleResolver) *Auth {
	return &Auth{
		jwtService: jwtService,
		resolver:   resolver,
	}
}

// NeedAuth rejects requests without a valid bearer token
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(nil)
}

// AdminOnly requires a token whose holder may perform admin management
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(func(actor domain.Actor) error {
		return access.Require(actor, false, access.AdminManage)
	})
}

// OptionalAuth stores the actor when a token is present. A missing token means
// an anonymous actor; a bad token is still rejected so clients notice expiry.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := a.extractActor(r)
			if err == errNoToken {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

var errNoToken = internal_errors.Unauthorized("Authentication credentials were not provided")

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (a *Auth) extractActor(r *http.Request) (domain.Actor, error) {
	tokenString := bearerToken(r)
	if tokenString == "" {
		return domain.Actor{}, errNoToken
	}

	claims, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return domain.Actor{}, err
	}

	actor, err := claims.Actor()
	if err != nil {
		return domain.Actor{}, internal_errors.Unauthorized("Invalid token subject")
	}

	if a.resolver != nil {
		current, err := a.resolver.Actor(r.Context(), actor.Id)
		if err != nil {
			if internal_errors.IsNotFound(err) {
				return domain.Actor{}, internal_errors.Unauthorized("User not found")
			}
			return domain.Actor{}, err
		}
		return current, nil
	}

	if !actor.Role.Persisted() {
		logger.Log.Warn("token carries unknown role", "user_id", actor.Id, "role", actor.Role)
		return domain.Actor{}, internal_errors.Unauthorized("Invalid token")
	}
	return actor, nil
}

func (a *Auth) auth(check func(domain.Actor) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := a.extractActor(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if check != nil {
				if err := check(actor); err != nil {
					utils.WriteErrorAndStatusCode(w, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext returns the authenticated actor or an anonymous one
func GetActorFromContext(r *http.Request) domain.Actor {
	actor, ok := r.Context().Value(ActorKey).(domain.Actor)
	if !ok {
		return domain.Anonymous()
	}
	return actor
}
